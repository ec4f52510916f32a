package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/qcar/dispatch/internal/pkg/apperrors"
	"github.com/qcar/dispatch/internal/pkg/fanout"
	"github.com/qcar/dispatch/internal/pkg/logger"
	"github.com/qcar/dispatch/internal/pkg/middleware"
	"github.com/qcar/dispatch/internal/pkg/models"
	"github.com/qcar/dispatch/internal/pkg/observability"
	"github.com/qcar/dispatch/services/orders"
)

// OrderUC owns the order lifecycle. All status writes go through the
// repository's conditional updates; after a committed transition the
// usecase fans the fresh snapshot out to in-process subscribers and to
// the message bus.
type OrderUC struct {
	cfg          *models.Config
	orderRepo    orders.OrderRepo
	orderGW      orders.OrderGW
	availability orders.AvailabilityRepo
	hub          *fanout.Hub
}

// NewOrderUC creates the order usecase
func NewOrderUC(
	cfg *models.Config,
	orderRepo orders.OrderRepo,
	orderGW orders.OrderGW,
	availability orders.AvailabilityRepo,
	hub *fanout.Hub,
) *OrderUC {
	return &OrderUC{
		cfg:          cfg,
		orderRepo:    orderRepo,
		orderGW:      orderGW,
		availability: availability,
		hub:          hub,
	}
}

// CreateOrder validates the request, persists a pending order and
// announces it to the dispatch coordinator.
func (uc *OrderUC) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	now := models.Now()
	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: newOrderNumber(now),
		PassengerID: req.PassengerID,
		OrderType:   req.OrderType,
		ServiceType: req.ServiceType,

		ScheduledTime: req.ScheduledTime,
		Pickup:        req.Pickup,
		Dropoff:       req.Dropoff,

		EstimatedDistanceKm:  req.EstimatedDistanceKm,
		EstimatedDurationMin: req.EstimatedDurationMin,
		EstimatedPrice:       req.EstimatedPrice,

		PassengerNote: req.PassengerNote,

		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	observability.OrdersCreatedTotal.Inc()

	if err := uc.orderGW.PublishOrderCreated(ctx, order); err != nil {
		// The order is committed; dispatch will still see it through the
		// pending-orders pull path.
		logger.Warn("failed to publish order created event",
			logger.String("order_id", order.ID.String()),
			logger.Err(err))
	}
	uc.publishSnapshot(ctx, order)

	logger.Info("order created",
		logger.String("order_id", order.ID.String()),
		logger.String("order_number", order.OrderNumber),
		logger.String("passenger_id", order.PassengerID.String()),
		logger.String("request_id", middleware.RequestIDFromContext(ctx)))
	return order, nil
}

// GetOrder fetches a single order by ID
func (uc *OrderUC) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return uc.orderRepo.GetOrder(ctx, orderID)
}

// AcceptOrder assigns a driver to a pending order. The repository CAS
// guarantees at most one driver wins; losers get ErrOrderTaken.
func (uc *OrderUC) AcceptOrder(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	order, err := uc.orderRepo.AcceptOrder(ctx, orderID, driverID)
	if err != nil {
		return nil, err
	}
	uc.publishSnapshot(ctx, order)

	logger.Info("order accepted",
		logger.String("order_id", orderID.String()),
		logger.String("driver_id", driverID.String()))
	return order, nil
}

// MarkArrived records the assigned driver's arrival at the pickup point
func (uc *OrderUC) MarkArrived(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	order, err := uc.orderRepo.MarkArrived(ctx, orderID, driverID)
	if err != nil {
		return nil, err
	}
	uc.publishSnapshot(ctx, order)
	return order, nil
}

// StartTrip moves an order from driver_arrived to in_progress
func (uc *OrderUC) StartTrip(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	order, err := uc.orderRepo.StartTrip(ctx, orderID, driverID)
	if err != nil {
		return nil, err
	}
	uc.publishSnapshot(ctx, order)
	return order, nil
}

// CompleteOrder records trip actuals and moves the order to its
// completed terminal state, releasing the driver back to the pool.
func (uc *OrderUC) CompleteOrder(ctx context.Context, orderID, driverID uuid.UUID, req models.CompleteOrderRequest) (*models.Order, error) {
	if req.FinalPrice < 0 || req.ActualDistanceKm < 0 || req.ActualDurationMin < 0 {
		return nil, fmt.Errorf("%w: negative completion actuals", apperrors.ErrInvalidInput)
	}

	order, err := uc.orderRepo.CompleteOrder(ctx, orderID, driverID, req)
	if err != nil {
		return nil, err
	}
	uc.releaseDriver(ctx, order)
	uc.publishSnapshot(ctx, order)

	logger.Info("order completed",
		logger.String("order_id", orderID.String()),
		logger.String("driver_id", driverID.String()),
		logger.Float64("final_price", req.FinalPrice))
	return order, nil
}

// CancelOrder cancels a pending or accepted order on behalf of the
// passenger or the assigned driver. Orders past driver_arrived can no
// longer be cancelled.
func (uc *OrderUC) CancelOrder(ctx context.Context, orderID, callerID uuid.UUID, reason string) (*models.Order, error) {
	current, err := uc.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if callerID != current.PassengerID && (current.DriverID == nil || *current.DriverID != callerID) {
		return nil, apperrors.ErrUnauthorized
	}
	if !current.CanBeCancelledBy(callerID) {
		return nil, fmt.Errorf("%w: order %s cannot be cancelled in status %s",
			apperrors.ErrPreconditionFailed, orderID, current.Status)
	}

	// The authorization check above raced nothing; the state guard is
	// re-checked inside the conditional update.
	order, err := uc.orderRepo.CancelOrder(ctx, orderID, callerID, reason)
	if err != nil {
		return nil, err
	}
	uc.releaseDriver(ctx, order)
	uc.publishSnapshot(ctx, order)

	logger.Info("order cancelled",
		logger.String("order_id", orderID.String()),
		logger.String("cancelled_by", callerID.String()),
		logger.String("reason", reason))
	return order, nil
}

// ListOrders returns the caller's orders, optionally filtered by status.
// Drivers see orders assigned to them, passengers the orders they placed.
func (uc *OrderUC) ListOrders(ctx context.Context, callerID uuid.UUID, role string, status *models.OrderStatus) ([]*models.Order, error) {
	if role == "driver" {
		return uc.orderRepo.ListByDriver(ctx, callerID, status)
	}
	return uc.orderRepo.ListByPassenger(ctx, callerID, status)
}

// releaseDriver clears the busy flag once the driver's order reached a
// terminal state. Best effort: a failure here leaves the driver busy
// until their next availability heartbeat.
func (uc *OrderUC) releaseDriver(ctx context.Context, order *models.Order) {
	if order.DriverID == nil {
		return
	}
	if err := uc.availability.ClearBusy(ctx, *order.DriverID); err != nil {
		logger.Warn("failed to release driver after terminal transition",
			logger.String("driver_id", order.DriverID.String()),
			logger.String("order_id", order.ID.String()),
			logger.Err(err))
	}
}

// publishSnapshot delivers the post-transition snapshot to in-process
// websocket subscribers and to the bus for other consumers. Delivery is
// at-least-once; subscribers dedupe on UpdatedAt.
func (uc *OrderUC) publishSnapshot(ctx context.Context, order *models.Order) {
	snapshot := order.Snapshot()
	uc.hub.Publish(snapshot)
	if err := uc.orderGW.PublishOrderSnapshot(ctx, snapshot); err != nil {
		logger.Warn("failed to publish order snapshot",
			logger.String("order_id", order.ID.String()),
			logger.Err(err))
	}
}

func validateCreateRequest(req models.CreateOrderRequest) error {
	if req.PassengerID == uuid.Nil {
		return fmt.Errorf("%w: passenger_id is required", apperrors.ErrInvalidInput)
	}
	if !validPoint(req.Pickup) || !validPoint(req.Dropoff) {
		return fmt.Errorf("%w: pickup and dropoff coordinates are required", apperrors.ErrInvalidInput)
	}
	switch req.OrderType {
	case models.OrderTypeImmediate:
	case models.OrderTypeScheduled:
		if req.ScheduledTime == nil {
			return fmt.Errorf("%w: scheduled orders require scheduled_time", apperrors.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown order_type %q", apperrors.ErrInvalidInput, req.OrderType)
	}
	switch req.ServiceType {
	case models.ServiceTypeStandard, models.ServiceTypeBusiness, models.ServiceTypeLongDistance:
	default:
		return fmt.Errorf("%w: unknown service_type %q", apperrors.ErrInvalidInput, req.ServiceType)
	}
	return nil
}

func validPoint(p models.OrderPoint) bool {
	if p.Latitude == 0 && p.Longitude == 0 {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// newOrderNumber builds a human-readable order number: QD prefix,
// creation timestamp, 4 random digits.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("QD%s%04d", now.Format("20060102150405"), rand.Intn(10000))
}
