package waitlists

import (
	"context"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WaitlistMongoRepository struct {
	Collection *mongo.Collection
}

func NewWaitlistMongoRepository(db *mongo.Client, dbName string) contracts.WaitlistRepository {
	return &WaitlistMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionWaitlistEntries),
	}
}

func (r *WaitlistMongoRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (string, error) {
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	result, err := r.Collection.InsertOne(ctx, entry)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *WaitlistMongoRepository) FindPending(ctx context.Context, limit int64) ([]models.WaitlistEntry, error) {
	filter := bson.M{"status": constvars.WaitlistStatusPending}
	opts := options.Find().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "createdAt", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var entries []models.WaitlistEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return entries, nil
}

// MarkFulfilled only succeeds while the entry is still pending, so two
// monitor runs can never fulfill the same entry twice.
func (r *WaitlistMongoRepository) MarkFulfilled(ctx context.Context, entryID, admissionID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": constvars.WaitlistStatusPending,
	}
	update := bson.M{"$set": bson.M{
		"status":      constvars.WaitlistStatusFulfilled,
		"admissionId": admissionID,
		"updatedAt":   time.Now(),
	}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *WaitlistMongoRepository) MarkCancelled(ctx context.Context, entryID string) error {
	objectID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": constvars.WaitlistStatusPending,
	}
	update := bson.M{"$set": bson.M{
		"status":    constvars.WaitlistStatusCancelled,
		"updatedAt": time.Now(),
	}}
	_, err = r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
