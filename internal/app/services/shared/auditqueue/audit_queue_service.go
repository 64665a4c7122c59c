package auditqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gandall-service/internal/app/models"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/exceptions"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	StandardQueueName   = "gandall_resource_audit_queue"
	DeadLetterQueueName = "gandall_resource_audit_dlq"
)

// AuditQueueMessage is the payload stored in RabbitMQ for one audit event.
type AuditQueueMessage struct {
	EventID      string    `json:"event_id"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Action       string    `json:"action"`
	Actor        string    `json:"actor,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
	FailedCount  int       `json:"failed_count"`
}

// Service manages interactions with the RabbitMQ audit queues.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	prefetch int
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService opens a channel, declares both durable queues, enables confirms, and sets QoS.
func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		StandardQueueName, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	)
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclareQueue(err)
	}

	_, err = ch.QueueDeclare(
		DeadLetterQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclareQueue(err)
	}

	// Limit unacked deliveries in-flight
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	// Publisher confirms for durability guarantees
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:       ch,
		log:      log,
		prefetch: prefetch,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

// EnqueueToAuditQueueInput defines input for enqueue operation.
type EnqueueToAuditQueueInput struct {
	Message AuditQueueMessage
}

// EnqueueToAuditQueueOutput defines output for enqueue.
type EnqueueToAuditQueueOutput struct{}

// EnqueueToDLQInput defines input for DLQ enqueue operation.
type EnqueueToDLQInput struct {
	Message AuditQueueMessage
}

// EnqueueToDLQOutput defines output for DLQ enqueue.
type EnqueueToDLQOutput struct{}

// ReenqueueInput defines input for reenqueueing a modified message back to the standard queue tail.
type ReenqueueInput struct {
	Message AuditQueueMessage
}

// ReenqueueOutput defines output for reenqueue.
type ReenqueueOutput struct{}

// FetchNInput specifies the maximum number of messages to fetch.
type FetchNInput struct {
	Max int
}

// QueuedItem represents a fetched delivery and its decoded payload.
type QueuedItem struct {
	DeliveryTag uint64
	Message     AuditQueueMessage
}

// FetchNOutput returns up to N messages.
type FetchNOutput struct {
	Items []QueuedItem
}

// AckMessageInput acknowledges a message so it is removed from the queue.
type AckMessageInput struct {
	DeliveryTag uint64
}

// AckMessageOutput is empty.
type AckMessageOutput struct{}

// PublishResourceAudit maps an audit model onto the queue payload and enqueues it.
// Satisfies contracts.AuditPublisher for the form usecases.
func (s *Service) PublishResourceAudit(ctx context.Context, event models.ResourceAudit) error {
	_, err := s.Enqueue(ctx, &EnqueueToAuditQueueInput{
		Message: AuditQueueMessage{
			EventID:      event.EventID,
			ResourceType: event.ResourceType,
			ResourceID:   event.ResourceID,
			Action:       event.Action,
			Actor:        event.Actor,
			RequestID:    event.RequestID,
			OccurredAt:   event.OccurredAt,
		},
	})
	return err
}

// Enqueue publishes a message to the standard queue with persistence and waits for confirm.
func (s *Service) Enqueue(ctx context.Context, in *EnqueueToAuditQueueInput) (*EnqueueToAuditQueueOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("AuditQueue.Enqueue called", zap.String(constvars.LoggingRequestIDKey, requestID))

	body, err := json.Marshal(in.Message)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	if err := s.publish(ctx, StandardQueueName, body); err != nil {
		return nil, err
	}
	return &EnqueueToAuditQueueOutput{}, nil
}

// Reenqueue publishes the (possibly modified) message to the tail of the standard queue and confirms.
func (s *Service) Reenqueue(ctx context.Context, in *ReenqueueInput) (*ReenqueueOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("AuditQueue.Reenqueue called", zap.String(constvars.LoggingRequestIDKey, requestID))

	body, err := json.Marshal(in.Message)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	if err := s.publish(ctx, StandardQueueName, body); err != nil {
		return nil, err
	}
	return &ReenqueueOutput{}, nil
}

// EnqueueToDeadQueue publishes the message to DLQ and confirms.
func (s *Service) EnqueueToDeadQueue(ctx context.Context, in *EnqueueToDLQInput) (*EnqueueToDLQOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("AuditQueue.EnqueueToDeadQueue called", zap.String(constvars.LoggingRequestIDKey, requestID))

	body, err := json.Marshal(in.Message)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	if err := s.publish(ctx, DeadLetterQueueName, body); err != nil {
		return nil, err
	}
	return &EnqueueToDLQOutput{}, nil
}

// FetchN retrieves up to N messages using basic.get without auto-ack.
func (s *Service) FetchN(ctx context.Context, in *FetchNInput) (*FetchNOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("AuditQueue.FetchN called", zap.String(constvars.LoggingRequestIDKey, requestID))

	n := in.Max
	if n <= 0 {
		n = 1
	}
	items := make([]QueuedItem, 0, n)

	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(StandardQueueName, false)
		if err != nil {
			return nil, exceptions.ErrRabbitMQConsume(err)
		}
		if !ok {
			break
		}
		var payload AuditQueueMessage
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			// Invalid JSON goes straight to DLQ to avoid a poison message loop
			_ = d.Ack(false)
			_ = s.publish(ctx, DeadLetterQueueName, d.Body)
			continue
		}
		items = append(items, QueuedItem{DeliveryTag: d.DeliveryTag, Message: payload})
	}

	return &FetchNOutput{Items: items}, nil
}

// AckMessage acknowledges a message by delivery tag.
func (s *Service) AckMessage(ctx context.Context, in *AckMessageInput) (*AckMessageOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("AuditQueue.AckMessage called", zap.String(constvars.LoggingRequestIDKey, requestID))
	if err := s.ch.Ack(in.DeliveryTag, false); err != nil {
		return nil, exceptions.ErrRabbitMQConsume(err)
	}
	return &AckMessageOutput{}, nil
}

// publish sends a persistent message to a queue and waits for broker confirm.
func (s *Service) publish(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublish(fmt.Errorf("message not confirmed"))
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublish(ctx.Err())
	}
	return nil
}
