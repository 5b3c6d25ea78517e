// internal/engine/actors/feed_actor.go
package actors

import (
	stdctx "context"
	"log"
	"strings"
	"time"

	"kisan-ai/internal/database"
	"kisan-ai/internal/models"
	"kisan-ai/internal/types"
	"kisan-ai/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for FeedActor
type (
	CreatePostMsg struct {
		Content  string    `json:"content"`
		ImageURL string    `json:"imageUrl,omitempty"`
		AuthorID uuid.UUID `json:"authorId"`
	}

	GetPostMsg struct {
		PostID uuid.UUID `json:"postId"`
	}

	GetFeedMsg struct {
		Limit int `json:"limit"`
	}

	GetFarmerPostsMsg struct {
		FarmerID uuid.UUID `json:"farmerId"`
	}

	ToggleLikeMsg struct {
		PostID   uuid.UUID `json:"postId"`
		FarmerID uuid.UUID `json:"farmerId"`
	}

	HasLikedMsg struct {
		PostID   uuid.UUID `json:"postId"`
		FarmerID uuid.UUID `json:"farmerId"`
	}

	GetCountsMsg struct{}

	loadPostsFromDBMsg struct{}
)

// FeedActor manages the community feed. It keeps a read cache of posts in
// actor state; counter updates go through the database transactionally and
// the cache is refreshed from the returned values.
type FeedActor struct {
	postsByID map[uuid.UUID]*models.Post
	db        database.DBAdapter
	metrics   *utils.MetricsCollector
	nameCache map[uuid.UUID]string
}

func NewFeedActor(db database.DBAdapter, metrics *utils.MetricsCollector) actor.Actor {
	return &FeedActor{
		postsByID: make(map[uuid.UUID]*models.Post),
		db:        db,
		metrics:   metrics,
		nameCache: make(map[uuid.UUID]string),
	}
}

func (a *FeedActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("FeedActor started with PID: %v", context.Self())
		context.Send(context.Self(), &loadPostsFromDBMsg{})

	case *loadPostsFromDBMsg:
		a.handleLoadPosts()

	case *CreatePostMsg:
		a.handleCreatePost(context, msg)

	case *GetPostMsg:
		a.handleGetPost(context, msg)

	case *GetFeedMsg:
		a.handleGetFeed(context, msg)

	case *GetFarmerPostsMsg:
		a.handleGetFarmerPosts(context, msg)

	case *ToggleLikeMsg:
		a.handleToggleLike(context, msg)

	case *HasLikedMsg:
		a.handleHasLiked(context, msg)

	case *GetCountsMsg:
		context.Respond(len(a.postsByID))

	default:
		log.Printf("FeedActor: Unknown message type %T", msg)
	}
}

// farmerName resolves the display name for an author, using cache first.
func (a *FeedActor) farmerName(ctx stdctx.Context, farmerID uuid.UUID) (string, error) {
	if name, ok := a.nameCache[farmerID]; ok {
		return name, nil
	}

	farmer, err := a.db.GetFarmer(ctx, farmerID)
	if err != nil {
		return "", err
	}

	a.nameCache[farmerID] = farmer.Name
	return farmer.Name, nil
}

func (a *FeedActor) handleLoadPosts() {
	ctx := stdctx.Background()

	posts, err := a.db.GetRecentPosts(ctx, 0)
	if err != nil {
		log.Printf("FeedActor: failed to load initial posts: %v", err)
		return
	}

	for _, post := range posts {
		a.postsByID[post.ID] = post
	}
	log.Printf("FeedActor: loaded %d posts into cache", len(posts))
}

func (a *FeedActor) handleCreatePost(context actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if strings.TrimSpace(msg.Content) == "" {
		context.Respond(utils.NewAppError(utils.ErrEmptyContent, "Post content cannot be empty", nil))
		return
	}

	authorName, err := a.farmerName(ctx, msg.AuthorID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrFarmerNotFound) {
			context.Respond(utils.NewFarmerNotFoundError(msg.AuthorID.String()))
		} else {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch author details", err))
		}
		return
	}

	newPost := &models.Post{
		ID:         uuid.New(),
		AuthorID:   msg.AuthorID,
		AuthorName: authorName,
		Content:    msg.Content,
		ImageURL:   msg.ImageURL,
		CreatedAt:  time.Now(),
	}

	if err := a.db.SavePost(ctx, newPost); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save post", err))
		return
	}

	a.postsByID[newPost.ID] = newPost

	a.metrics.AddOperationLatency("create_post", time.Since(startTime))
	context.Respond(newPost)
}

func (a *FeedActor) handleGetPost(context actor.Context, msg *GetPostMsg) {
	// Counters move under the cache, so always read through to the database.
	ctx := stdctx.Background()
	post, err := a.db.GetPost(ctx, msg.PostID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrPostNotFound) {
			context.Respond(utils.NewPostNotFoundError(msg.PostID.String()))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to get post", err))
		return
	}

	a.postsByID[post.ID] = post
	context.Respond(post)
}

func (a *FeedActor) handleGetFeed(context actor.Context, msg *GetFeedMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	posts, err := a.db.GetRecentPosts(ctx, msg.Limit)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch feed", err))
		return
	}

	for _, post := range posts {
		a.postsByID[post.ID] = post
	}

	a.metrics.AddOperationLatency("get_feed", time.Since(startTime))
	context.Respond(posts)
}

func (a *FeedActor) handleGetFarmerPosts(context actor.Context, msg *GetFarmerPostsMsg) {
	ctx := stdctx.Background()

	posts, err := a.db.GetFarmerPosts(ctx, msg.FarmerID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch farmer posts", err))
		return
	}
	context.Respond(posts)
}

func (a *FeedActor) handleToggleLike(context actor.Context, msg *ToggleLikeMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	result, err := a.db.ToggleLike(ctx, msg.PostID, msg.FarmerID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrPostNotFound) {
			context.Respond(utils.NewPostNotFoundError(msg.PostID.String()))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to toggle like", err))
		return
	}

	// Refresh the cached counter from the transaction result.
	if post, ok := a.postsByID[msg.PostID]; ok {
		post.LikeCount = result.LikeCount
	}

	a.metrics.AddOperationLatency("toggle_like", time.Since(startTime))
	context.Respond(&types.LikeResponse{
		PostID:    msg.PostID.String(),
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
	})
}

func (a *FeedActor) handleHasLiked(context actor.Context, msg *HasLikedMsg) {
	ctx := stdctx.Background()

	liked, err := a.db.HasLiked(ctx, msg.PostID, msg.FarmerID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to check like state", err))
		return
	}
	context.Respond(liked)
}
