package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Set is one recorded attempt of an exercise during a live training session.
type Set struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExerciseID        primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Weight            float64            `bson:"weight" json:"weight"`
	Repetitions       int                `bson:"repetitions" json:"repetitions"`
	TrainingSessionID string             `bson:"trainingSessionId" json:"trainingSessionId"` // uuid grouping the sets of one session
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
