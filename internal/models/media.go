package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media is an image attachment stored in MongoDB. Posts reference it
// by hex object id; the relational side never sees the bytes.
type Media struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Filename    string             `json:"filename" bson:"filename"`
	ContentType string             `json:"content_type" bson:"content_type"`
	Data        []byte             `json:"-" bson:"data"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
