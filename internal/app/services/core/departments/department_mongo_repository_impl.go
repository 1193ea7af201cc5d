package departments

import (
	"context"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DepartmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewDepartmentMongoRepository(db *mongo.Client, dbName string) contracts.DepartmentRepository {
	return &DepartmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDepartments),
	}
}

func (r *DepartmentMongoRepository) FindByID(ctx context.Context, departmentID string) (*models.Department, error) {
	objectID, err := primitive.ObjectIDFromHex(departmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var department models.Department
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&department)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &department, nil
}

func (r *DepartmentMongoRepository) FindFirstActiveSurgical(ctx context.Context) (*models.Department, error) {
	filter := bson.M{"surgical": true, "active": true}
	opts := options.FindOne().SetSort(bson.D{{Key: "name", Value: 1}})

	var department models.Department
	err := r.Collection.FindOne(ctx, filter, opts).Decode(&department)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &department, nil
}
