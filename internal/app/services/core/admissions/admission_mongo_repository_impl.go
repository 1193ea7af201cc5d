package admissions

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
)

type AdmissionMongoRepository struct {
	Collection *mongo.Collection
}

func NewAdmissionMongoRepository(db *mongo.Client, dbName string) contracts.AdmissionRepository {
	return &AdmissionMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAdmissions),
	}
}

func (r *AdmissionMongoRepository) CreateAdmission(ctx context.Context, admission *models.Admission) (string, error) {
	now := time.Now()
	admission.CreatedAt = now
	admission.UpdatedAt = now
	result, err := r.Collection.InsertOne(ctx, admission)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// MarkOrphaned flags the admission for manual reconciliation. Admissions are
// append-only; this status flip is the only permitted mutation.
func (r *AdmissionMongoRepository) MarkOrphaned(ctx context.Context, admissionID string) error {
	objectID, err := primitive.ObjectIDFromHex(admissionID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"status":    constvars.AdmissionStatusOrphaned,
		"updatedAt": time.Now(),
	}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
