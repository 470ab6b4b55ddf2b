package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups exercise templates (e.g. "Legs", "Back").
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// CategoryCount is a category with the number of templates visible to a user
// (all admin templates plus the user's own).
type CategoryCount struct {
	Category
	Count int `bson:"count" json:"count"`
}

// AdminExercise is an admin-authored exercise template.
type AdminExercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CategoryID  primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	DefaultSets int                `bson:"defaultSets,omitempty" json:"defaultSets,omitempty"`
	DefaultReps int                `bson:"defaultReps,omitempty" json:"defaultReps,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserExercise is a template authored by a user for their own use.
type UserExercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CategoryID  primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	UserID      int64              `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	DefaultSets int                `bson:"defaultSets,omitempty" json:"defaultSets,omitempty"`
	DefaultReps int                `bson:"defaultReps,omitempty" json:"defaultReps,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Template is the origin-independent view of an exercise template.
type Template struct {
	Origin      Origin
	Name        string
	Description string
	Sets        int
	Reps        int
}

// AsTemplate returns the template view with defaults applied.
func (e *AdminExercise) AsTemplate() Template {
	return newTemplate(AdminOrigin(e.ID), e.Name, e.Description, e.DefaultSets, e.DefaultReps)
}

// AsTemplate returns the template view with defaults applied.
func (e *UserExercise) AsTemplate() Template {
	return newTemplate(UserOrigin(e.ID), e.Name, e.Description, e.DefaultSets, e.DefaultReps)
}

func newTemplate(origin Origin, name, description string, sets, reps int) Template {
	if sets <= 0 {
		sets = DefaultBaseSets
	}
	if reps <= 0 {
		reps = DefaultBaseReps
	}
	return Template{Origin: origin, Name: name, Description: description, Sets: sets, Reps: reps}
}

// NewExercise instantiates the template for a training day. Position is
// assigned by the ordering service.
func (t Template) NewExercise(trainingDayID primitive.ObjectID) *Exercise {
	return &Exercise{
		TrainingDayID: trainingDayID,
		Name:          t.Name,
		Description:   t.Description,
		BaseSets:      t.Sets,
		BaseReps:      t.Reps,
		Origin:        t.Origin,
	}
}
