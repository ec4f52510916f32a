package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qcar/dispatch/internal/pkg/constants"
	"github.com/qcar/dispatch/internal/pkg/logger"
	"github.com/qcar/dispatch/internal/pkg/models"
	natspkg "github.com/qcar/dispatch/internal/pkg/nats"
	"github.com/qcar/dispatch/services/dispatch"
	"github.com/qcar/dispatch/services/orders"
)

const queueGroup = "dispatch"

// Handler consumes order lifecycle events and drives the dispatch
// coordinator off them
type Handler struct {
	dispatchUC dispatch.DispatchUC
	orderUC    orders.OrderUC
	consumers  []*natspkg.Consumer
}

// NewHandler creates the dispatch NATS handler
func NewHandler(dispatchUC dispatch.DispatchUC, orderUC orders.OrderUC) *Handler {
	return &Handler{dispatchUC: dispatchUC, orderUC: orderUC}
}

// Start subscribes to the order lifecycle subjects. Consumers share a
// queue group, so each event lands on exactly one instance.
func (h *Handler) Start(client *natspkg.Client) error {
	created, err := natspkg.NewConsumer(client, constants.SubjectOrderCreated, queueGroup, h.handleOrderCreated)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", constants.SubjectOrderCreated, err)
	}
	h.consumers = append(h.consumers, created)

	snapshots, err := natspkg.NewConsumer(client, fmt.Sprintf(constants.SubjectOrderSnapshot, "*"), queueGroup, h.handleOrderSnapshot)
	if err != nil {
		return fmt.Errorf("failed to subscribe to order snapshots: %w", err)
	}
	h.consumers = append(h.consumers, snapshots)
	return nil
}

// Stop unsubscribes all consumers
func (h *Handler) Stop() {
	for _, consumer := range h.consumers {
		if err := consumer.Stop(); err != nil {
			logger.Warn("failed to stop consumer", logger.Err(err))
		}
	}
}

// handleOrderCreated opens the first offer round for a new pending order
// and starts its re-offer worker. The event may be redelivered; both
// paths tolerate an order that is no longer pending.
func (h *Handler) handleOrderCreated(message []byte) error {
	var event models.OrderCreatedEvent
	if err := json.Unmarshal(message, &event); err != nil {
		return fmt.Errorf("malformed order created event: %w", err)
	}

	ctx := context.Background()
	order, err := h.orderUC.GetOrder(ctx, event.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load created order %s: %w", event.OrderID, err)
	}
	if order.Status != models.OrderStatusPending {
		return nil
	}

	if _, err := h.dispatchUC.OpenForOffers(ctx, order); err != nil {
		return fmt.Errorf("failed to open offers for order %s: %w", order.ID, err)
	}
	h.dispatchUC.StartReofferWorker(ctx, order.ID)
	return nil
}

// handleOrderSnapshot watches committed transitions for cancellations:
// a cancelled order's re-offer worker is stopped and its offer round
// bumped so leftover claims fail closed. Snapshots are at-least-once;
// handling a duplicate cancellation is harmless.
func (h *Handler) handleOrderSnapshot(message []byte) error {
	var snapshot models.OrderSnapshot
	if err := json.Unmarshal(message, &snapshot); err != nil {
		return fmt.Errorf("malformed order snapshot: %w", err)
	}
	if snapshot.Order.Status != models.OrderStatusCancelled {
		return nil
	}
	return h.dispatchUC.HandleOrderCancelled(context.Background(), snapshot.Order.ID)
}
