package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veselicnik/srecke-backend/internal/models"
	"github.com/veselicnik/srecke-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DrawRepository implements the repositories.DrawRepository interface
type DrawRepository struct {
	collection *mongo.Collection
}

// NewDrawRepository creates a new DrawRepository
func NewDrawRepository(db *mongo.Database) repositories.DrawRepository {
	return &DrawRepository{
		collection: db.Collection(DrawsCollection),
	}
}

// newestFirst orders draws by date, breaking ties on the insertion order of the id
var newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}

// Create inserts a new draw together with its winners in a single document write
func (r *DrawRepository) Create(ctx context.Context, draw *models.Draw) error {
	if draw.CreatedAt.IsZero() {
		draw.CreatedAt = time.Now()
	}
	if draw.Winners == nil {
		draw.Winners = []models.Winner{}
	}
	res, err := r.collection.InsertOne(ctx, draw)
	if err != nil {
		return fmt.Errorf("failed to insert draw: %w", err)
	}
	draw.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a draw by ID
func (r *DrawRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	var draw models.Draw
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&draw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	if draw.Winners == nil {
		draw.Winners = []models.Winner{}
	}
	return &draw, nil
}

// FindAll finds all draws
func (r *DrawRepository) FindAll(ctx context.Context) ([]*models.Draw, error) {
	return r.find(ctx, bson.M{})
}

// FindByEventID finds the draws of one event
func (r *DrawRepository) FindByEventID(ctx context.Context, eventID string) ([]*models.Draw, error) {
	return r.find(ctx, bson.M{"eventId": eventID})
}

func (r *DrawRepository) find(ctx context.Context, filter bson.M) ([]*models.Draw, error) {
	opts := options.Find().SetSort(newestFirst)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to execute find query: %w", err)
	}
	defer cursor.Close(ctx)

	var draws []*models.Draw
	if err := cursor.All(ctx, &draws); err != nil {
		return nil, fmt.Errorf("failed to decode draws: %w", err)
	}
	if draws == nil {
		draws = []*models.Draw{}
	}
	for _, d := range draws {
		if d.Winners == nil {
			d.Winners = []models.Winner{}
		}
	}
	return draws, nil
}

// Delete deletes a draw by ID
func (r *DrawRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
