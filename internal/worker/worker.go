package worker

import (
	"context"
	"fmt"
	"log"

	"bookstore-service/internal/broker"
	"bookstore-service/internal/models"
	"bookstore-service/internal/store"
)

// AuditWorker consumes order lifecycle events and records them in the
// order_audit table. Already-processed event ids are skipped so
// redelivery cannot duplicate audit rows.
type AuditWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
}

// NewAuditWorker creates a new audit worker
func NewAuditWorker(consumer *broker.Consumer, store *store.Store) *AuditWorker {
	w := &AuditWorker{
		consumer: consumer,
		store:    store,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(w.handleOrderPlaced)
	eventHandler.OnOrderApproved(w.handleOrderApproved)
	eventHandler.OnOrderRejected(w.handleOrderRejected)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *AuditWorker) Start(ctx context.Context) error {
	log.Println("Starting order audit worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AuditWorker) Stop() error {
	log.Println("Stopping order audit worker...")
	return w.consumer.Close()
}

func (w *AuditWorker) record(ctx context.Context, base models.BaseEvent, orderID int64, detail string) error {
	processed, err := w.store.IsEventProcessed(ctx, base.EventID)
	if err != nil {
		return fmt.Errorf("failed to check event idempotency: %w", err)
	}
	if processed {
		log.Printf("Skipping already-processed event: %s", base.EventID)
		return nil
	}

	audit := &models.OrderAudit{
		OrderID:   orderID,
		EventID:   base.EventID,
		EventType: base.EventType,
		Detail:    detail,
	}
	if err := w.store.InsertOrderAudit(ctx, audit); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return w.store.MarkEventProcessed(ctx, base.EventID, base.EventType)
}

func (w *AuditWorker) handleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	detail := fmt.Sprintf("user=%d total=%d items=%d", event.UserID, event.TotalPrice, len(event.Items))
	return w.record(ctx, event.BaseEvent, event.OrderID, detail)
}

func (w *AuditWorker) handleOrderApproved(ctx context.Context, event *models.OrderApprovedEvent) error {
	detail := fmt.Sprintf("user=%d", event.UserID)
	return w.record(ctx, event.BaseEvent, event.OrderID, detail)
}

func (w *AuditWorker) handleOrderRejected(ctx context.Context, event *models.OrderRejectedEvent) error {
	detail := fmt.Sprintf("user=%d refunded=%d", event.UserID, event.Refunded)
	return w.record(ctx, event.BaseEvent, event.OrderID, detail)
}
