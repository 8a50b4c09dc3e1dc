package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Draw is one execution of the allocation over an event's tickets and prizes.
// Winners are fixed once the document is written.
type Draw struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EventID   string             `bson:"eventId" json:"eventId"`
	Date      time.Time          `bson:"date" json:"date"`
	Winners   []Winner           `bson:"winners" json:"winners"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
