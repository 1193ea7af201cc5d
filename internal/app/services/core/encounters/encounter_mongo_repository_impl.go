package encounters

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

type EncounterMongoRepository struct {
	Collection *mongo.Collection
}

func NewEncounterMongoRepository(db *mongo.Client, dbName string) contracts.EncounterRepository {
	return &EncounterMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionEncounters),
	}
}

func (r *EncounterMongoRepository) FindByID(ctx context.Context, encounterID string) (*models.Encounter, error) {
	objectID, err := primitive.ObjectIDFromHex(encounterID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var encounter models.Encounter
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&encounter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &encounter, nil
}

// TransitionStatus applies the status change only while the current status is
// one of allowedFrom, as a single conditional update. A nil result with nil
// error means the precondition did not hold at commit time, so the caller
// lost the race or the encounter is already terminal.
func (r *EncounterMongoRepository) TransitionStatus(ctx context.Context, encounterID string, allowedFrom []string, to, outcome, notes string) (*models.Encounter, error) {
	objectID, err := primitive.ObjectIDFromHex(encounterID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$in": allowedFrom},
	}
	set := bson.M{
		"status":    to,
		"updatedAt": time.Now(),
	}
	if outcome != "" {
		set["dispositionOutcome"] = outcome
	}
	if notes != "" {
		set["dispositionNotes"] = notes
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var encounter models.Encounter
	err = r.Collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&encounter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &encounter, nil
}
