// internal/domain/training_program.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingProgram is a user's named collection of training days.
type TrainingProgram struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    int64              `bson:"userId" json:"userId"` // Owner (chat platform id)
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TrainingDay belongs to a program. Days are ordered by creation and are not
// user-reorderable.
type TrainingDay struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainingProgramID primitive.ObjectID `bson:"trainingProgramId" json:"trainingProgramId"`
	DayOfWeek         string             `bson:"dayOfWeek" json:"dayOfWeek"` // Free text, matched case-insensitively against weekday names
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
