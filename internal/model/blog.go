package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Description string             `bson:"description" json:"description"`
	Author      string             `bson:"author,omitempty" json:"author,omitempty"`
	// Image is an opaque string: a URL or a base64 data URL from the admin editor.
	Image     string    `bson:"image" json:"image"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
