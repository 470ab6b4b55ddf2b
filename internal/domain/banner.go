package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is static descriptive content for a page of the menu.
// Image is either an absolute URL or a storage object key.
type Banner struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"` // Page name, unique
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
