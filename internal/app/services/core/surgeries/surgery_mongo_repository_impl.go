package surgeries

import (
	"context"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SurgeryMongoRepository struct {
	Collection *mongo.Collection
}

func NewSurgeryMongoRepository(db *mongo.Client, dbName string) contracts.SurgeryRepository {
	return &SurgeryMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSurgeries),
	}
}

func (r *SurgeryMongoRepository) CreateSurgery(ctx context.Context, surgery *models.SurgeryRecord) (string, error) {
	now := time.Now()
	surgery.CreatedAt = now
	surgery.UpdatedAt = now
	result, err := r.Collection.InsertOne(ctx, surgery)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}
