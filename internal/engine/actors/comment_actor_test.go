package actors

import (
	"context"
	"sync"
	"testing"
	"time"

	"kisan-ai/internal/models"
	"kisan-ai/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func spawnCommentActor(t *testing.T, db *fakeDB) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewCommentActor(db, utils.NewMetricsCollector())
	})
	return system, system.Root.Spawn(props)
}

func seedPost(t *testing.T, db *fakeDB, author *models.Farmer) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:         uuid.New(),
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Content:    "How much urea per acre for wheat?",
		CreatedAt:  time.Now(),
	}
	if err := db.SavePost(context.Background(), post); err != nil {
		t.Fatalf("Seeding post failed: %v", err)
	}
	return post
}

func TestCreateCommentIncrementsCount(t *testing.T) {
	db := newFakeDB()
	author := db.seedFarmer("Ramesh", "9876543210")
	commenter := db.seedFarmer("Suresh", "9876543211")
	post := seedPost(t, db, author)
	system, pid := spawnCommentActor(t, db)

	future := system.Root.RequestFuture(pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: commenter.ID,
		Content:  "Use 50kg per acre in two splits",
	}, 5*time.Second)

	result, err := future.Result()
	if err != nil {
		t.Fatalf("Create comment failed: %v", err)
	}

	created, ok := result.(*CreateCommentResult)
	if !ok {
		t.Fatalf("Expected CreateCommentResult, got %T: %v", result, result)
	}
	assert.Equal(t, "Suresh", created.Comment.AuthorName)
	assert.Equal(t, 1, created.CommentCount)

	stored, err := db.GetPost(context.Background(), post.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, stored.CommentCount)
}

func TestCreateCommentRejectsEmptyContent(t *testing.T) {
	db := newFakeDB()
	author := db.seedFarmer("Ramesh", "9876543210")
	post := seedPost(t, db, author)
	system, pid := spawnCommentActor(t, db)

	future := system.Root.RequestFuture(pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: author.ID,
		Content:  "\n\t ",
	}, 5*time.Second)

	result, err := future.Result()
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T", result)
	}
	assert.Equal(t, utils.ErrEmptyContent, appErr.Code)
}

func TestCreateCommentUnknownPost(t *testing.T) {
	db := newFakeDB()
	commenter := db.seedFarmer("Suresh", "9876543211")
	system, pid := spawnCommentActor(t, db)

	future := system.Root.RequestFuture(pid, &CreateCommentMsg{
		PostID:   uuid.New(),
		AuthorID: commenter.ID,
		Content:  "Nice crop!",
	}, 5*time.Second)

	result, err := future.Result()
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T", result)
	}
	assert.Equal(t, utils.ErrPostNotFound, appErr.Code)
}

func TestConcurrentCommentsCountMonotonically(t *testing.T) {
	db := newFakeDB()
	author := db.seedFarmer("Ramesh", "9876543210")
	commenter := db.seedFarmer("Suresh", "9876543211")
	post := seedPost(t, db, author)
	system, pid := spawnCommentActor(t, db)

	const comments = 30
	counts := make(chan int, comments)
	var wg sync.WaitGroup
	for i := 0; i < comments; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			future := system.Root.RequestFuture(pid, &CreateCommentMsg{
				PostID:   post.ID,
				AuthorID: commenter.ID,
				Content:  "Good advice",
			}, 10*time.Second)
			result, err := future.Result()
			if err != nil {
				t.Errorf("Create comment failed: %v", err)
				return
			}
			created, ok := result.(*CreateCommentResult)
			if !ok {
				t.Errorf("Expected CreateCommentResult, got %T", result)
				return
			}
			counts <- created.CommentCount
		}()
	}
	wg.Wait()
	close(counts)

	seen := make(map[int]bool)
	for count := range counts {
		assert.False(t, seen[count], "counter value %d returned twice", count)
		seen[count] = true
	}

	stored, err := db.GetPost(context.Background(), post.ID)
	assert.NoError(t, err)
	assert.Equal(t, comments, stored.CommentCount)
}

func TestGetPostCommentsOldestFirst(t *testing.T) {
	db := newFakeDB()
	author := db.seedFarmer("Ramesh", "9876543210")
	post := seedPost(t, db, author)
	system, pid := spawnCommentActor(t, db)

	contents := []string{"first reply", "second reply", "third reply"}
	for _, content := range contents {
		future := system.Root.RequestFuture(pid, &CreateCommentMsg{
			PostID:   post.ID,
			AuthorID: author.ID,
			Content:  content,
		}, 5*time.Second)
		if _, err := future.Result(); err != nil {
			t.Fatalf("Create comment failed: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	future := system.Root.RequestFuture(pid, &GetCommentsForPostMsg{PostID: post.ID}, 5*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Get comments failed: %v", err)
	}

	fetched, ok := result.([]*models.Comment)
	if !ok {
		t.Fatalf("Expected comment slice, got %T", result)
	}
	assert.Len(t, fetched, 3)
	for i, content := range contents {
		assert.Equal(t, content, fetched[i].Content)
	}
}

func TestGetCommentByID(t *testing.T) {
	db := newFakeDB()
	author := db.seedFarmer("Ramesh", "9876543210")
	post := seedPost(t, db, author)
	system, pid := spawnCommentActor(t, db)

	future := system.Root.RequestFuture(pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: author.ID,
		Content:  "Spray in the evening, not at noon",
	}, 5*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Create comment failed: %v", err)
	}
	created := result.(*CreateCommentResult)

	future = system.Root.RequestFuture(pid, &GetCommentMsg{CommentID: created.Comment.ID}, 5*time.Second)
	result, err = future.Result()
	if err != nil {
		t.Fatalf("Get comment failed: %v", err)
	}

	fetched, ok := result.(*models.Comment)
	if !ok {
		t.Fatalf("Expected comment, got %T: %v", result, result)
	}
	assert.Equal(t, created.Comment.ID, fetched.ID)
	assert.Equal(t, "Spray in the evening, not at noon", fetched.Content)
}

func TestGetCommentUnknownID(t *testing.T) {
	db := newFakeDB()
	system, pid := spawnCommentActor(t, db)

	future := system.Root.RequestFuture(pid, &GetCommentMsg{CommentID: uuid.New()}, 5*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Get comment failed: %v", err)
	}

	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T: %v", result, result)
	}
	assert.Equal(t, utils.ErrCommentNotFound, appErr.Code)
}
