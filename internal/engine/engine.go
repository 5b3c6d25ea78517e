// internal/engine/engine.go
package engine

import (
	"kisan-ai/internal/database"
	"kisan-ai/internal/engine/actors"
	"kisan-ai/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine coordinates communication between actors
type Engine struct {
	feedActor    *actor.PID
	commentActor *actor.PID
	farmerActor  *actor.PID
}

func NewEngine(system *actor.ActorSystem, metrics *utils.MetricsCollector, db database.DBAdapter) *Engine {
	context := system.Root

	feedProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewFeedActor(db, metrics)
	})
	feedPID := context.Spawn(feedProps)

	commentProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(db, metrics)
	})
	commentPID := context.Spawn(commentProps)

	farmerProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewFarmerActor(db, metrics)
	})
	farmerPID := context.Spawn(farmerProps)

	return &Engine{
		feedActor:    feedPID,
		commentActor: commentPID,
		farmerActor:  farmerPID,
	}
}

// GetFeedActor returns the PID of the feed actor
func (e *Engine) GetFeedActor() *actor.PID {
	return e.feedActor
}

// GetCommentActor returns the PID of the comment actor
func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}

// GetFarmerActor returns the PID of the farmer actor
func (e *Engine) GetFarmerActor() *actor.PID {
	return e.farmerActor
}
