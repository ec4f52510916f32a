package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/qcar/dispatch/internal/pkg/models"
)

//go:generate mockgen -source=orders.go -destination=mocks/mock_orders.go -package=mocks

// OrderRepo is the durable store for orders. Every transition method is
// a conditional update: the write succeeds only if the stored status
// still matches the transition's source state, which is what linearizes
// concurrent writes per order.
type OrderRepo interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)

	// AcceptOrder is the accept-race CAS: set driver and accepted
	// status only while status is still pending. Returns
	// apperrors.ErrOrderTaken when the order exists but already left
	// pending, apperrors.ErrNotFound when it does not exist.
	AcceptOrder(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error)

	MarkArrived(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error)
	StartTrip(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error)
	CompleteOrder(ctx context.Context, orderID, driverID uuid.UUID, req models.CompleteOrderRequest) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID, cancelledBy uuid.UUID, reason string) (*models.Order, error)

	ListByPassenger(ctx context.Context, passengerID uuid.UUID, status *models.OrderStatus) ([]*models.Order, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID, status *models.OrderStatus) ([]*models.Order, error)
	ListPending(ctx context.Context) ([]*models.Order, error)
}

// OrderGW publishes committed order events to the pub/sub transport
type OrderGW interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderSnapshot(ctx context.Context, snapshot models.OrderSnapshot) error
}

// AvailabilityRepo is the slice of the driver availability store the
// state machine needs: clearing the busy flag when the order a driver
// is on reaches a terminal state. Implemented by the dispatch service's
// driver repository.
type AvailabilityRepo interface {
	ClearBusy(ctx context.Context, driverID uuid.UUID) error
}

// OrderUC is the order state machine: the sole owner of order status
// and timestamp writes.
type OrderUC interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	AcceptOrder(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error)
	MarkArrived(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error)
	StartTrip(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error)
	CompleteOrder(ctx context.Context, orderID, driverID uuid.UUID, req models.CompleteOrderRequest) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID, callerID uuid.UUID, reason string) (*models.Order, error)
	ListOrders(ctx context.Context, callerID uuid.UUID, role string, status *models.OrderStatus) ([]*models.Order, error)
}
