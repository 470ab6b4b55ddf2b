// internal/domain/exercise.go
package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default planned targets for an exercise when its template carries none.
const (
	DefaultBaseSets = 3
	DefaultBaseReps = 10
)

// OriginKind tags which kind of template an exercise was instantiated from.
type OriginKind string

const (
	OriginAdmin OriginKind = "admin"
	OriginUser  OriginKind = "user"
)

var ErrInvalidOrigin = errors.New("exercise origin must reference exactly one admin or user template")

// Origin is the template an Exercise was created from: Admin(id) | User(id).
type Origin struct {
	Kind       OriginKind         `bson:"kind" json:"kind"`
	TemplateID primitive.ObjectID `bson:"templateId" json:"templateId"`
}

// AdminOrigin references an admin-authored template.
func AdminOrigin(id primitive.ObjectID) Origin {
	return Origin{Kind: OriginAdmin, TemplateID: id}
}

// UserOrigin references a user-authored template.
func UserOrigin(id primitive.ObjectID) Origin {
	return Origin{Kind: OriginUser, TemplateID: id}
}

// Validate checks the exclusive-origin invariant.
func (o Origin) Validate() error {
	if o.TemplateID == primitive.NilObjectID {
		return ErrInvalidOrigin
	}
	switch o.Kind {
	case OriginAdmin, OriginUser:
		return nil
	default:
		return ErrInvalidOrigin
	}
}

// Exercise is an instance of a template placed in a training day.
// Position is dense and zero-based within TrainingDayID; Version is bumped on
// every position write and guards concurrent reorders.
type Exercise struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainingDayID  primitive.ObjectID `bson:"trainingDayId" json:"trainingDayId"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	BaseSets       int                `bson:"baseSets" json:"baseSets"`
	BaseReps       int                `bson:"baseReps" json:"baseReps"`
	Position       int                `bson:"position" json:"position"`
	Version        int64              `bson:"version" json:"version"`
	CircleTraining bool               `bson:"circleTraining" json:"circleTraining"`
	Origin         Origin             `bson:"origin" json:"origin"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseSet is one planned set (rep target) of an exercise.
type ExerciseSet struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Reps       int                `bson:"reps" json:"reps"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
