package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/veselicnik/srecke-backend/internal/models"
	"github.com/veselicnik/srecke-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PrizeRepository implements the repositories.PrizeRepository interface
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) repositories.PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection(PrizesCollection),
	}
}

// insertionOrder keeps draws reproducible: prizes are always iterated in the order they were created
var insertionOrder = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

func (r *PrizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	now := time.Now()
	prize.CreatedAt = now
	prize.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, prize)
	if err != nil {
		return err
	}
	prize.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *PrizeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	var prize models.Prize
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&prize)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &prize, nil
}

func (r *PrizeRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Prize, error) {
	if len(ids) == 0 {
		return []*models.Prize{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *PrizeRepository) FindAll(ctx context.Context) ([]*models.Prize, error) {
	return r.find(ctx, bson.M{})
}

func (r *PrizeRepository) FindByEventID(ctx context.Context, eventID string) ([]*models.Prize, error) {
	return r.find(ctx, bson.M{"eventId": eventID})
}

func (r *PrizeRepository) find(ctx context.Context, filter bson.M) ([]*models.Prize, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prizes []*models.Prize
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	if prizes == nil {
		prizes = []*models.Prize{}
	}
	return prizes, nil
}

// Update writes the mutable fields of a prize; the event binding is never touched
func (r *PrizeRepository) Update(ctx context.Context, prize *models.Prize) error {
	prize.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        prize.Name,
		"probability": prize.Probability,
		"updatedAt":   prize.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": prize.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *PrizeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
