package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a public contact-form submission. It is append-only.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Project   string             `bson:"project,omitempty" json:"project,omitempty"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
