package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize is an awardable item of one veselica (event).
type Prize struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	EventID     string             `bson:"eventId" json:"eventId"`
	Probability float64            `bson:"probability" json:"probability"` // 0.1 = 10%
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreatePrizeRequest defines the payload for POST /prizes
type CreatePrizeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Probability float64 `json:"probability" binding:"required"`
	EventID     string  `json:"eventId" binding:"required"`
}

// UpdatePrizeRequest defines the payload for PUT /prizes/:id.
// EventID is only decoded so that an attempt to rebind the prize can be rejected.
type UpdatePrizeRequest struct {
	Name        *string  `json:"name"`
	Probability *float64 `json:"probability"`
	EventID     *string  `json:"eventId"`
}
