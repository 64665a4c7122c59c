package audits

import (
	"context"
	"fmt"
	"time"

	"gandall-service/internal/app/config"
	"gandall-service/internal/app/contracts"
	"gandall-service/internal/app/models"
	"gandall-service/internal/app/services/shared/auditqueue"

	"go.uber.org/zap"
)

// Worker periodically drains the audit queue into MongoDB with at-least-once semantics.
type Worker struct {
	log        *zap.Logger
	cfg        *config.InternalConfig
	queue      *auditqueue.Service
	repository contracts.AuditRepository
	stop       chan struct{}
}

// NewWorker creates a new worker instance.
func NewWorker(log *zap.Logger, cfg *config.InternalConfig, queue *auditqueue.Service, repository contracts.AuditRepository) *Worker {
	return &Worker{
		log:        log,
		cfg:        cfg,
		queue:      queue,
		repository: repository,
		stop:       make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	interval := time.Duration(w.cfg.RabbitMQ.AuditWorkerIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	stopped := make(chan struct{})

	fmt.Println("Audit worker started")

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case now := <-ticker.C:
				w.runOnce(ctx, now)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

func (w *Worker) runOnce(ctx context.Context, now time.Time) {
	w.log.Info("audits.worker.runOnce tick",
		zap.Time("now", now))

	max := w.cfg.RabbitMQ.AuditWorkerMaxQueue
	if max <= 0 {
		max = 1
	}
	out, err := w.queue.FetchN(ctx, &auditqueue.FetchNInput{Max: max})
	if err != nil {
		w.log.Info("queue.FetchN error", zap.Error(err))
		return
	}

	w.log.Info("queue.FetchN success", zap.Int("fetched_count", len(out.Items)))

	for _, item := range out.Items {
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item auditqueue.QueuedItem) {
	msg := item.Message
	audit := &models.ResourceAudit{
		EventID:      msg.EventID,
		ResourceType: msg.ResourceType,
		ResourceID:   msg.ResourceID,
		Action:       msg.Action,
		Actor:        msg.Actor,
		RequestID:    msg.RequestID,
		OccurredAt:   msg.OccurredAt,
	}

	err := w.repository.InsertResourceAudit(ctx, audit)
	if err == nil {
		_, ackErr := w.queue.AckMessage(ctx, &auditqueue.AckMessageInput{DeliveryTag: item.DeliveryTag})
		if ackErr != nil {
			w.log.Info("ack failed after insert",
				zap.String("event_id", msg.EventID),
				zap.Error(ackErr))
		}
		w.log.Info("audit event persisted; removed from queue",
			zap.String("event_id", msg.EventID),
			zap.String("resource_type", msg.ResourceType),
			zap.String("resource_id", msg.ResourceID))
		return
	}

	w.log.Info("mongodb insert failed",
		zap.String("event_id", msg.EventID),
		zap.Error(err))

	msg.FailedCount++
	if msg.FailedCount >= w.cfg.RabbitMQ.AuditWorkerRetryThreshold {
		if _, e := w.queue.EnqueueToDeadQueue(ctx, &auditqueue.EnqueueToDLQInput{Message: msg}); e != nil {
			w.log.Info("enqueue to DLQ failed",
				zap.String("event_id", msg.EventID),
				zap.Error(e))
			return
		}
		_, _ = w.queue.AckMessage(ctx, &auditqueue.AckMessageInput{DeliveryTag: item.DeliveryTag})
		w.log.Info("moved audit event to DLQ",
			zap.String("event_id", msg.EventID),
			zap.Int("failed_count", msg.FailedCount))
		return
	}

	if _, e := w.queue.Reenqueue(ctx, &auditqueue.ReenqueueInput{Message: msg}); e != nil {
		w.log.Info("reenqueue failed",
			zap.String("event_id", msg.EventID),
			zap.Error(e))
		return
	}
	_, _ = w.queue.AckMessage(ctx, &auditqueue.AckMessageInput{DeliveryTag: item.DeliveryTag})
	w.log.Info("retryable failure; incremented failedCount and requeued",
		zap.String("event_id", msg.EventID),
		zap.Int("failed_count", msg.FailedCount))
}
