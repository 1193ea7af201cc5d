package auditarchive

import (
	"bytes"
	"context"
	"fmt"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/pkg/constvars"
	"time"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Worker drains committed disposition events from the queue into object
// storage, one JSON object per event, keyed by day and event ID. The archive
// is append-only; an event that fails to store is requeued, never dropped.
type Worker struct {
	ch      *amqp.Channel
	minio   *minio.Client
	log     *zap.Logger
	cfg     *config.InternalConfig
	limiter *rate.Limiter
	stop    chan struct{}
}

func NewWorker(conn *amqp.Connection, minioClient *minio.Client, log *zap.Logger, cfg *config.InternalConfig) (*Worker, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	// Same durable queue the publisher declares; declaring twice is safe
	// and removes the startup-order dependency between the two.
	_, err = ch.QueueDeclare(
		cfg.Disposition.EventQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return nil, err
	}

	perSecond := cfg.Audit.ObjectsPerSecond
	if perSecond <= 0 {
		perSecond = 5
	}

	return &Worker{
		ch:      ch,
		minio:   minioClient,
		log:     log,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
		stop:    make(chan struct{}),
	}, nil
}

// Start ensures the bucket exists, begins consuming, and returns a stop
// function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func(), err error) {
	exists, err := w.minio.BucketExists(ctx, w.cfg.Audit.BucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := w.minio.MakeBucket(ctx, w.cfg.Audit.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	deliveries, err := w.ch.Consume(
		w.cfg.Disposition.EventQueueName,
		w.cfg.Audit.ConsumerName,
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	fmt.Println("Audit archive worker started")

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			case delivery, ok := <-deliveries:
				if !ok {
					w.log.Warn("audit archive delivery channel closed")
					return
				}
				w.handleDelivery(ctx, delivery)
			}
		}
	}()

	return func() {
		close(w.stop)
		if err := w.ch.Cancel(w.cfg.Audit.ConsumerName, false); err != nil {
			w.log.Error("audit archive consumer cancel failed", zap.Error(err))
		}
	}, nil
}

func (w *Worker) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	if err := w.limiter.Wait(ctx); err != nil {
		w.requeue(delivery)
		return
	}

	var event contracts.DispositionEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		// Malformed payloads can never succeed; ack them out of the queue
		// rather than looping forever.
		w.log.Error("audit archive discarding malformed event",
			zap.String("message_id", delivery.MessageId),
			zap.Error(err))
		if ackErr := delivery.Ack(false); ackErr != nil {
			w.log.Error("audit archive ack failed", zap.Error(ackErr))
		}
		return
	}

	objectName := w.objectName(&event)
	_, err := w.minio.PutObject(ctx,
		w.cfg.Audit.BucketName,
		objectName,
		bytes.NewReader(delivery.Body),
		int64(len(delivery.Body)),
		minio.PutObjectOptions{ContentType: w.cfg.Audit.ArchiveContentType},
	)
	if err != nil {
		w.log.Error("audit archive store failed",
			zap.String(constvars.LoggingEventIDKey, event.ID),
			zap.String("object_name", objectName),
			zap.Error(err))
		w.requeue(delivery)
		return
	}

	if err := delivery.Ack(false); err != nil {
		w.log.Error("audit archive ack failed",
			zap.String(constvars.LoggingEventIDKey, event.ID),
			zap.Error(err))
		return
	}

	w.log.Info("audit archive stored event",
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.String(constvars.LoggingTopicKey, event.Topic),
		zap.String("object_name", objectName))
}

func (w *Worker) objectName(event *contracts.DispositionEvent) string {
	day := event.OccurredAt
	if day.IsZero() {
		day = time.Now()
	}
	return fmt.Sprintf("%s/%s/%s.json",
		w.cfg.Audit.ArchiveObjectRoot,
		day.Format(time.DateOnly),
		event.ID,
	)
}

func (w *Worker) requeue(delivery amqp.Delivery) {
	if err := delivery.Nack(false, true); err != nil {
		w.log.Error("audit archive nack failed",
			zap.String("message_id", delivery.MessageId),
			zap.Error(err))
	}
}
