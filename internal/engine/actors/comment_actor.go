// internal/engine/actors/comment_actor.go
package actors

import (
	stdctx "context"
	"log"
	"strings"
	"time"

	"kisan-ai/internal/database"
	"kisan-ai/internal/models"
	"kisan-ai/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for CommentActor
type (
	CreateCommentMsg struct {
		PostID   uuid.UUID `json:"postId"`
		AuthorID uuid.UUID `json:"authorId"`
		Content  string    `json:"content"`
	}

	GetCommentMsg struct {
		CommentID uuid.UUID `json:"commentId"`
	}

	GetCommentsForPostMsg struct {
		PostID uuid.UUID `json:"postId"`
	}

	loadCommentsFromDBMsg struct{}
)

// CreateCommentResult carries the stored comment together with the post's
// comment counter as updated by the same transaction.
type CreateCommentResult struct {
	Comment      *models.Comment `json:"comment"`
	CommentCount int             `json:"commentCount"`
}

// CommentActor manages comment operations against the feed.
type CommentActor struct {
	comments     map[uuid.UUID]*models.Comment
	postComments map[uuid.UUID][]uuid.UUID
	db           database.DBAdapter
	metrics      *utils.MetricsCollector
	nameCache    map[uuid.UUID]string
}

func NewCommentActor(db database.DBAdapter, metrics *utils.MetricsCollector) actor.Actor {
	return &CommentActor{
		comments:     make(map[uuid.UUID]*models.Comment),
		postComments: make(map[uuid.UUID][]uuid.UUID),
		db:           db,
		metrics:      metrics,
		nameCache:    make(map[uuid.UUID]string),
	}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("CommentActor started with PID: %v", context.Self())
		context.Send(context.Self(), &loadCommentsFromDBMsg{})

	case *loadCommentsFromDBMsg:
		a.handleLoadComments()

	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)

	case *GetCommentMsg:
		a.handleGetComment(context, msg)

	case *GetCommentsForPostMsg:
		a.handleGetPostComments(context, msg)

	default:
		log.Printf("CommentActor: Unknown message type %T", msg)
	}
}

func (a *CommentActor) farmerName(ctx stdctx.Context, farmerID uuid.UUID) (string, error) {
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

func (a *CommentActor) handleLoadComments() {
	ctx := stdctx.Background()

	comments, err := a.db.GetAllComments(ctx)
	if err != nil {
		log.Printf("CommentActor: failed to load initial comments: %v", err)
		return
	}

	for _, comment := range comments {
		a.comments[comment.ID] = comment
		a.postComments[comment.PostID] = append(a.postComments[comment.PostID], comment.ID)
	}
	log.Printf("CommentActor: loaded %d comments into cache", len(comments))
}

func (a *CommentActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if strings.TrimSpace(msg.Content) == "" {
		context.Respond(utils.NewAppError(utils.ErrEmptyContent, "Comment content cannot be empty", nil))
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

	newComment := &models.Comment{
		ID:         uuid.New(),
		PostID:     msg.PostID,
		AuthorID:   msg.AuthorID,
		AuthorName: authorName,
		Content:    msg.Content,
		CreatedAt:  time.Now(),
	}

	// The insert and the counter increment ride the same transaction, so the
	// returned count already includes this comment.
	count, err := a.db.AddComment(ctx, newComment)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrPostNotFound) {
			context.Respond(utils.NewPostNotFoundError(msg.PostID.String()))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save comment", err))
		return
	}

	a.comments[newComment.ID] = newComment
	a.postComments[msg.PostID] = append(a.postComments[msg.PostID], newComment.ID)

	a.metrics.AddOperationLatency("create_comment", time.Since(startTime))
	context.Respond(&CreateCommentResult{Comment: newComment, CommentCount: count})
}

func (a *CommentActor) handleGetComment(context actor.Context, msg *GetCommentMsg) {
	ctx := stdctx.Background()

	comment, err := a.db.GetComment(ctx, msg.CommentID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrCommentNotFound) {
			context.Respond(utils.NewAppError(utils.ErrCommentNotFound, "Comment not found", nil))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch comment", err))
		return
	}
	context.Respond(comment)
}

func (a *CommentActor) handleGetPostComments(context actor.Context, msg *GetCommentsForPostMsg) {
	ctx := stdctx.Background()

	comments, err := a.db.GetPostComments(ctx, msg.PostID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch comments", err))
		return
	}
	context.Respond(comments)
}
