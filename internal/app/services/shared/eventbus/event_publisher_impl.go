package eventbus

import (
	"context"
	"fmt"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher delivers disposition events to a durable RabbitMQ queue with
// publisher confirms. Publication always happens after the disposition
// committed; the orchestrator treats failures as log-and-continue.
type Publisher struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

func NewPublisher(conn *amqp.Connection, log *zap.Logger, queueName string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	// Enable publisher confirms for durability guarantees
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	publisher := &Publisher{
		ch:        ch,
		log:       log,
		queueName: queueName,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return publisher, nil
}

func (p *Publisher) PublishDispositionEvent(ctx context.Context, event *contracts.DispositionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrAMQPPublish(err)
	}

	// Publishing and waiting for the broker confirm must pair up per
	// message, so publishers are serialized.
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Type:         event.Topic,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return exceptions.ErrAMQPPublish(err)
	}

	select {
	case confirmation := <-p.confirms:
		if !confirmation.Ack {
			return exceptions.ErrAMQPNotConfirmed(fmt.Errorf("nack for delivery tag %d", confirmation.DeliveryTag))
		}
	case <-time.After(5 * time.Second):
		return exceptions.ErrAMQPNotConfirmed(fmt.Errorf("confirm timeout"))
	case <-ctx.Done():
		return exceptions.ErrAMQPNotConfirmed(ctx.Err())
	}

	p.log.Info("eventbus.Publisher published disposition event",
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.String(constvars.LoggingTopicKey, event.Topic),
		zap.String(constvars.LoggingEncounterIDKey, event.EncounterID),
	)
	return nil
}
