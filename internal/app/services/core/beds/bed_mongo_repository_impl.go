package beds

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
	"go.uber.org/zap"
)

type BedMongoRepository struct {
	Collection *mongo.Collection
	Cache      contracts.RedisRepository
	Log        *zap.Logger
}

func NewBedMongoRepository(db *mongo.Client, dbName string, cache contracts.RedisRepository, logger *zap.Logger) contracts.BedRepository {
	return &BedMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBeds),
		Cache:      cache,
		Log:        logger,
	}
}

// invalidateAvailability drops the cached counts a status transition touched,
// both the ward-scoped key and the kind-wide key. Every caller that changes a
// bed's status goes through this, so a count read after the transition is
// recomputed rather than served stale for the cache TTL.
func (r *BedMongoRepository) invalidateAvailability(ctx context.Context, kind, wardID string) {
	keys := []string{availabilityCacheKey(kind, "")}
	if wardID != "" {
		keys = append(keys, availabilityCacheKey(kind, wardID))
	}
	for _, key := range keys {
		if err := r.Cache.Delete(ctx, key); err != nil {
			r.Log.Warn(constvars.ErrDevAvailabilityCacheUnhealthy,
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}
}

func (r *BedMongoRepository) FindByID(ctx context.Context, bedID string) (*models.Bed, error) {
	objectID, err := primitive.ObjectIDFromHex(bedID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var bed models.Bed
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&bed)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &bed, nil
}

// ReserveAvailable selects and claims one bed in a single conditional update.
// The status precondition lives inside the filter, so a concurrent caller
// that grabs the same bed first simply makes this filter match nothing;
// there is no window between reading a bed as available and claiming it.
func (r *BedMongoRepository) ReserveAvailable(ctx context.Context, kind, wardID string) (*models.Bed, error) {
	now := time.Now()
	filter := bson.M{
		"kind":   kind,
		"status": constvars.BedStatusAvailable,
	}
	if wardID != "" {
		filter["wardId"] = wardID
	}
	update := bson.M{"$set": bson.M{
		"status":     constvars.BedStatusReserved,
		"reservedAt": now,
		"updatedAt":  now,
	}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "bedNumber", Value: 1}}).
		SetReturnDocument(options.After)

	var bed models.Bed
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&bed)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	r.invalidateAvailability(ctx, bed.Kind, bed.WardID)
	return &bed, nil
}

func (r *BedMongoRepository) MarkOccupied(ctx context.Context, bedID, occupantID string) (*models.Bed, error) {
	objectID, err := primitive.ObjectIDFromHex(bedID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": constvars.BedStatusReserved,
	}
	update := bson.M{"$set": bson.M{
		"status":     constvars.BedStatusOccupied,
		"occupantId": occupantID,
		"updatedAt":  time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var bed models.Bed
	err = r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&bed)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	r.invalidateAvailability(ctx, bed.Kind, bed.WardID)
	return &bed, nil
}

// Release is idempotent: a bed that is already available matches the update
// with no effective change, and the occupant is cleared either way.
func (r *BedMongoRepository) Release(ctx context.Context, bedID string) (*models.Bed, error) {
	objectID, err := primitive.ObjectIDFromHex(bedID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$ne": constvars.BedStatusMaintenance},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    constvars.BedStatusAvailable,
			"updatedAt": time.Now(),
		},
		"$unset": bson.M{
			"occupantId": "",
			"reservedAt": "",
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var bed models.Bed
	err = r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&bed)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	r.invalidateAvailability(ctx, bed.Kind, bed.WardID)
	return &bed, nil
}

func (r *BedMongoRepository) CountAvailable(ctx context.Context, kind, wardID string) (int64, error) {
	filter := bson.M{
		"kind":   kind,
		"status": constvars.BedStatusAvailable,
	}
	if wardID != "" {
		filter["wardId"] = wardID
	}
	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}
