package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is the single administrative identity. PasswordHash is an argon2id PHC string.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Phone        string             `bson:"phone" json:"-"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
