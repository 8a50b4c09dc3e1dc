package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names
const (
	PrizesCollection  = "prizes"
	TicketsCollection = "tickets"
	DrawsCollection   = "draws"
)

// EnsureIndexes creates the event-scoped indexes the draw queries rely on.
// CreateMany is idempotent for identical index specs.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		PrizesCollection: {
			{Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		TicketsCollection: {
			{Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "createdAt", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		DrawsCollection: {
			{Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "date", Value: -1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
