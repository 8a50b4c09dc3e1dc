package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Winner pairs one ticket with one prize inside a draw.
// PrizeName is copied at draw time so the entry stays readable after the prize is deleted.
type Winner struct {
	TicketID  primitive.ObjectID `bson:"ticketId" json:"ticketId"`
	UserID    string             `bson:"userId" json:"userId"`
	PrizeID   primitive.ObjectID `bson:"prizeId" json:"prizeId"`
	PrizeName string             `bson:"prizeName,omitempty" json:"prizeName,omitempty"`
}

// ResolvedWinner is a Winner with its ticket and prize looked up for display.
// Ticket and Prize are nil when the referenced record no longer exists.
type ResolvedWinner struct {
	Winner
	Ticket *Ticket `json:"ticket,omitempty"`
	Prize  *Prize  `json:"prize,omitempty"`
}
