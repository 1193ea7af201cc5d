package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Client
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Logger         *zap.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// WaitlistMonitorStop if set will be called during Shutdown to stop the
	// waitlist fulfillment worker.
	WaitlistMonitorStop func()
	// AuditArchiveStop if set will be called during Shutdown to stop the
	// audit archive consumer.
	AuditArchiveStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.WaitlistMonitorStop != nil {
		b.WaitlistMonitorStop()
		log.Println("Successfully stopped waitlist monitor")
	}

	if b.AuditArchiveStop != nil {
		b.AuditArchiveStop()
		log.Println("Successfully stopped audit archive consumer")
	}

	err := b.Redis.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	err = b.RabbitMQ.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing RabbitMQ")

	err = b.MongoDB.Disconnect(ctx)
	if err != nil {
		return err
	}
	log.Println("Successfully closing MongoDB")

	err = b.Logger.Sync()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Logger")

	return nil
}
