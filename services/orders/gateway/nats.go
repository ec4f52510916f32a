package gateway

import (
	"context"
	"fmt"

	"github.com/qcar/dispatch/internal/pkg/constants"
	"github.com/qcar/dispatch/internal/pkg/models"
	natspkg "github.com/qcar/dispatch/internal/pkg/nats"
	"github.com/qcar/dispatch/internal/pkg/retry"
)

// OrderGW publishes order lifecycle events over NATS
type OrderGW struct {
	producer *natspkg.Producer
	retrier  *retry.Retrier
}

// NewOrderGW creates the order gateway
func NewOrderGW(client *natspkg.Client) *OrderGW {
	return &OrderGW{
		producer: natspkg.NewProducer(client),
		retrier:  retry.New(retry.DefaultConfig()),
	}
}

// PublishOrderCreated announces a new pending order to the dispatch
// coordinator. The event kicks off the first offer round, so delivery
// is retried before falling back to the pending-orders pull path.
func (g *OrderGW) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	event := models.OrderCreatedEvent{
		OrderID:     order.ID,
		PassengerID: order.PassengerID,
		Pickup:      order.Pickup,
		CreatedAt:   order.CreatedAt,
	}
	return g.retrier.Execute(ctx, func(context.Context) error {
		return g.producer.Publish(constants.SubjectOrderCreated, event)
	})
}

// PublishOrderSnapshot broadcasts the post-transition order state on the
// order's snapshot subject. Delivery is at-least-once; consumers apply
// the newest UpdatedAt and drop the rest.
func (g *OrderGW) PublishOrderSnapshot(_ context.Context, snapshot models.OrderSnapshot) error {
	subject := fmt.Sprintf(constants.SubjectOrderSnapshot, snapshot.Order.ID)
	return g.producer.Publish(subject, snapshot)
}
