package sequence

import (
	"context"
	"fmt"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	sequenceServiceInstance contracts.SequenceService
	onceSequenceService     sync.Once
)

type sequenceService struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewSequenceService(db *mongo.Client, dbName string, logger *zap.Logger) contracts.SequenceService {
	onceSequenceService.Do(func() {
		instance := &sequenceService{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionSequenceCounters),
			Log:        logger,
		}
		sequenceServiceInstance = instance
	})
	return sequenceServiceInstance
}

// Next is one indivisible increment-and-return against the counter document.
// The upsert covers the first call of a (kind, dateKey) pair. Two concurrent
// callers can never observe the same value; counting existing records and
// adding one would allow exactly that.
func (s *sequenceService) Next(ctx context.Context, kind, dateKey string) (int64, error) {
	filter := bson.M{"kind": kind, "dateKey": dateKey}
	update := bson.M{"$inc": bson.M{"lastValue": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.SequenceCounter
	err := s.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		s.Log.Error("sequenceService.Next atomic increment failed",
			zap.String(constvars.LoggingKindKey, kind),
			zap.String("date_key", dateKey),
			zap.Error(err),
		)
		return 0, exceptions.ErrSequenceUnavailable(err)
	}
	return counter.LastValue, nil
}

func (s *sequenceService) NextCode(ctx context.Context, kind string, at time.Time) (string, error) {
	dateKey := at.Format(constvars.SequenceDateKeyLayout)
	value, err := s.Next(ctx, kind, dateKey)
	if err != nil {
		return "", err
	}
	return FormatSequenceCode(kind, dateKey, value), nil
}

// FormatSequenceCode is the pure formatting layer over the counter value,
// e.g. ADM202401010007.
func FormatSequenceCode(kind, dateKey string, value int64) string {
	return fmt.Sprintf("%s%s%04d", kind, dateKey, value)
}
