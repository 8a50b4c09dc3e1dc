package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ticket is one purchased entry into the draws of an event
type Ticket struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	EventID   string             `bson:"eventId" json:"eventId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateTicketRequest defines the payload for POST /tickets
type CreateTicketRequest struct {
	EventID string `json:"eventId" binding:"required"`
}

// UpdateTicketRequest defines the payload for PUT /tickets/:id
type UpdateTicketRequest struct {
	UserID *string `json:"userId"`
}

// TicketAndMusicRequest defines the payload for POST /ticketsAndMusicRequest
type TicketAndMusicRequest struct {
	EventID  string `json:"eventId" binding:"required"`
	SongName string `json:"songName" binding:"required"`
	Artist   string `json:"artist"`
}

// TicketWithMusicRequest is the outcome of the combined ticket + music request action.
// The ticket is always present; MusicRequestError is set when forwarding failed.
type TicketWithMusicRequest struct {
	Ticket               *Ticket     `json:"ticket"`
	MusicRequestResponse interface{} `json:"musicRequestResponse"`
	MusicRequestError    string      `json:"musicRequestError,omitempty"`
}
