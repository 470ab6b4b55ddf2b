package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between caller roles on the transport.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a chat user of the bot, keyed by the chat platform's numeric id.
type User struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          int64               `bson:"userId" json:"userId"` // Chat platform id, unique
	Name            string              `bson:"name" json:"name"`
	Weight          float64             `bson:"weight" json:"weight"`
	ActiveProgramID *primitive.ObjectID `bson:"activeProgramId,omitempty" json:"activeProgramId,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsActiveProgram reports whether programID is the user's active program.
func (u *User) IsActiveProgram(programID primitive.ObjectID) bool {
	return u.ActiveProgramID != nil && *u.ActiveProgramID == programID
}
