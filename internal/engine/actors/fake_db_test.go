package actors

import (
	"context"
	"sort"
	"sync"
	"time"

	"kisan-ai/internal/database"
	"kisan-ai/internal/models"
	"kisan-ai/internal/utils"

	"github.com/google/uuid"
)

// fakeDB is an in-memory DBAdapter for actor tests.
type fakeDB struct {
	mu       sync.Mutex
	posts    map[uuid.UUID]*models.Post
	comments map[uuid.UUID]*models.Comment
	likes    map[uuid.UUID]map[uuid.UUID]bool // postID -> farmerID
	farmers  map[uuid.UUID]*models.Farmer
}

var _ database.DBAdapter = (*fakeDB)(nil)

func newFakeDB() *fakeDB {
	return &fakeDB{
		posts:    make(map[uuid.UUID]*models.Post),
		comments: make(map[uuid.UUID]*models.Comment),
		likes:    make(map[uuid.UUID]map[uuid.UUID]bool),
		farmers:  make(map[uuid.UUID]*models.Farmer),
	}
}

func copyPost(p *models.Post) *models.Post {
	cp := *p
	return &cp
}

func (f *fakeDB) SavePost(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[post.ID] = copyPost(post)
	return nil
}

func (f *fakeDB) GetPost(_ context.Context, id uuid.UUID) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, utils.NewPostNotFoundError(id.String())
	}
	return copyPost(post), nil
}

func (f *fakeDB) GetRecentPosts(_ context.Context, limit int) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts := make([]*models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		posts = append(posts, copyPost(p))
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *fakeDB) GetFarmerPosts(_ context.Context, farmerID uuid.UUID) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var posts []*models.Post
	for _, p := range f.posts {
		if p.AuthorID == farmerID {
			posts = append(posts, copyPost(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (f *fakeDB) ToggleLike(_ context.Context, postID, farmerID uuid.UUID) (*database.ToggleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return nil, utils.NewPostNotFoundError(postID.String())
	}
	if f.likes[postID] == nil {
		f.likes[postID] = make(map[uuid.UUID]bool)
	}
	if f.likes[postID][farmerID] {
		delete(f.likes[postID], farmerID)
		post.LikeCount--
		return &database.ToggleResult{Liked: false, LikeCount: post.LikeCount}, nil
	}
	f.likes[postID][farmerID] = true
	post.LikeCount++
	return &database.ToggleResult{Liked: true, LikeCount: post.LikeCount}, nil
}

func (f *fakeDB) HasLiked(_ context.Context, postID, farmerID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[postID][farmerID], nil
}

func (f *fakeDB) GetFarmerLikes(_ context.Context, farmerID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var postIDs []uuid.UUID
	for postID, byFarmer := range f.likes {
		if byFarmer[farmerID] {
			postIDs = append(postIDs, postID)
		}
	}
	return postIDs, nil
}

func (f *fakeDB) AddComment(_ context.Context, comment *models.Comment) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[comment.PostID]
	if !ok {
		return 0, utils.NewPostNotFoundError(comment.PostID.String())
	}
	cp := *comment
	f.comments[comment.ID] = &cp
	post.CommentCount++
	return post.CommentCount, nil
}

func (f *fakeDB) GetComment(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrCommentNotFound, "comment not found", nil)
	}
	cp := *comment
	return &cp, nil
}

func (f *fakeDB) GetPostComments(_ context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var comments []*models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			cp := *c
			comments = append(comments, &cp)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments, nil
}

func (f *fakeDB) GetAllComments(_ context.Context) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var comments []*models.Comment
	for _, c := range f.comments {
		cp := *c
		comments = append(comments, &cp)
	}
	return comments, nil
}

func (f *fakeDB) SaveFarmer(_ context.Context, farmer *models.Farmer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.farmers {
		if existing.Mobile == farmer.Mobile && existing.ID != farmer.ID {
			return utils.NewAppError(utils.ErrFarmerExists, "mobile already registered", nil)
		}
	}
	cp := *farmer
	f.farmers[farmer.ID] = &cp
	return nil
}

func (f *fakeDB) GetFarmer(_ context.Context, id uuid.UUID) (*models.Farmer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	farmer, ok := f.farmers[id]
	if !ok {
		return nil, utils.NewFarmerNotFoundError(id.String())
	}
	cp := *farmer
	return &cp, nil
}

func (f *fakeDB) GetFarmerByMobile(_ context.Context, mobile string) (*models.Farmer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, farmer := range f.farmers {
		if farmer.Mobile == mobile {
			cp := *farmer
			return &cp, nil
		}
	}
	return nil, utils.NewFarmerNotFoundError(mobile)
}

func (f *fakeDB) UpdateFarmerProfile(_ context.Context, id uuid.UUID, village, state, language string, crops []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	farmer, ok := f.farmers[id]
	if !ok {
		return utils.NewFarmerNotFoundError(id.String())
	}
	farmer.Village = village
	farmer.State = state
	farmer.PreferredLanguage = language
	farmer.Crops = crops
	return nil
}

func (f *fakeDB) UpdateFarmerActivity(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if farmer, ok := f.farmers[id]; ok {
		farmer.LastActive = time.Now()
	}
	return nil
}

// seedFarmer inserts a farmer directly, bypassing registration.
func (f *fakeDB) seedFarmer(name, mobile string) *models.Farmer {
	farmer := &models.Farmer{
		ID:         uuid.New(),
		Name:       name,
		Mobile:     mobile,
		CreatedAt:  time.Now(),
		LastActive: time.Now(),
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *farmer
	f.farmers[farmer.ID] = &cp
	return farmer
}
