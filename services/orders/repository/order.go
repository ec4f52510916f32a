package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qcar/dispatch/internal/pkg/apperrors"
	"github.com/qcar/dispatch/internal/pkg/models"
)

// OrderRepo persists orders in PostgreSQL. State transitions are single
// conditional UPDATE statements guarded on the current status, so two
// concurrent writers can never both succeed on the same transition.
type OrderRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewOrderRepo creates the order repository
func NewOrderRepo(cfg *models.Config, db *sqlx.DB) *OrderRepo {
	return &OrderRepo{cfg: cfg, db: db}
}

// orderRow is the flat scan target for the orders table
type orderRow struct {
	ID          uuid.UUID  `db:"id"`
	OrderNumber string     `db:"order_number"`
	PassengerID uuid.UUID  `db:"passenger_id"`
	DriverID    *uuid.UUID `db:"driver_id"`

	OrderType     string     `db:"order_type"`
	ServiceType   string     `db:"service_type"`
	ScheduledTime *time.Time `db:"scheduled_time"`

	PickupAddress string  `db:"pickup_address"`
	PickupLat     float64 `db:"pickup_lat"`
	PickupLng     float64 `db:"pickup_lng"`
	PickupPoiID   string  `db:"pickup_poi_id"`

	DropoffAddress string  `db:"dropoff_address"`
	DropoffLat     float64 `db:"dropoff_lat"`
	DropoffLng     float64 `db:"dropoff_lng"`
	DropoffPoiID   string  `db:"dropoff_poi_id"`

	EstimatedDistanceKm  float64 `db:"estimated_distance_km"`
	EstimatedDurationMin int     `db:"estimated_duration_min"`
	EstimatedPrice       float64 `db:"estimated_price"`

	ActualDistanceKm  *float64 `db:"actual_distance_km"`
	ActualDurationMin *int     `db:"actual_duration_min"`
	FinalPrice        *float64 `db:"final_price"`

	Status string `db:"status"`

	CancelledBy  *uuid.UUID     `db:"cancelled_by"`
	CancelReason sql.NullString `db:"cancel_reason"`

	PassengerNote sql.NullString `db:"passenger_note"`

	CreatedAt   time.Time  `db:"created_at"`
	AcceptedAt  *time.Time `db:"accepted_at"`
	ArrivedAt   *time.Time `db:"arrived_at"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	CancelledAt *time.Time `db:"cancelled_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r orderRow) toOrder() *models.Order {
	return &models.Order{
		ID:          r.ID,
		OrderNumber: r.OrderNumber,
		PassengerID: r.PassengerID,
		DriverID:    r.DriverID,

		OrderType:     models.OrderType(r.OrderType),
		ServiceType:   models.ServiceType(r.ServiceType),
		ScheduledTime: r.ScheduledTime,

		Pickup: models.OrderPoint{
			Address:   r.PickupAddress,
			Latitude:  r.PickupLat,
			Longitude: r.PickupLng,
			PoiID:     r.PickupPoiID,
		},
		Dropoff: models.OrderPoint{
			Address:   r.DropoffAddress,
			Latitude:  r.DropoffLat,
			Longitude: r.DropoffLng,
			PoiID:     r.DropoffPoiID,
		},

		EstimatedDistanceKm:  r.EstimatedDistanceKm,
		EstimatedDurationMin: r.EstimatedDurationMin,
		EstimatedPrice:       r.EstimatedPrice,

		ActualDistanceKm:  r.ActualDistanceKm,
		ActualDurationMin: r.ActualDurationMin,
		FinalPrice:        r.FinalPrice,

		Status: models.OrderStatus(r.Status),

		CancelledBy:  r.CancelledBy,
		CancelReason: r.CancelReason.String,

		PassengerNote: r.PassengerNote.String,

		CreatedAt:   r.CreatedAt,
		AcceptedAt:  r.AcceptedAt,
		ArrivedAt:   r.ArrivedAt,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
		CancelledAt: r.CancelledAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const orderColumns = `id, order_number, passenger_id, driver_id,
	order_type, service_type, scheduled_time,
	pickup_address, pickup_lat, pickup_lng, pickup_poi_id,
	dropoff_address, dropoff_lat, dropoff_lng, dropoff_poi_id,
	estimated_distance_km, estimated_duration_min, estimated_price,
	actual_distance_km, actual_duration_min, final_price,
	status, cancelled_by, cancel_reason, passenger_note,
	created_at, accepted_at, arrived_at, started_at, completed_at, cancelled_at, updated_at`

// CreateOrder inserts a new pending order
func (r *OrderRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, passenger_id,
			order_type, service_type, scheduled_time,
			pickup_address, pickup_lat, pickup_lng, pickup_poi_id,
			dropoff_address, dropoff_lat, dropoff_lng, dropoff_poi_id,
			estimated_distance_km, estimated_duration_min, estimated_price,
			status, passenger_note, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.OrderNumber, order.PassengerID,
		order.OrderType, order.ServiceType, order.ScheduledTime,
		order.Pickup.Address, order.Pickup.Latitude, order.Pickup.Longitude, order.Pickup.PoiID,
		order.Dropoff.Address, order.Dropoff.Latitude, order.Dropoff.Longitude, order.Dropoff.PoiID,
		order.EstimatedDistanceKm, order.EstimatedDurationMin, order.EstimatedPrice,
		order.Status, order.PassengerNote, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetOrder fetches a single order by ID
func (r *OrderRepo) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var row orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return row.toOrder(), nil
}

// AcceptOrder is the accept compare-and-swap: it assigns the driver only
// while the order is still pending. The follow-up read on a zero-row
// update distinguishes a lost race from a missing order.
func (r *OrderRepo) AcceptOrder(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	var row orderRow
	query := `
		UPDATE orders
		SET driver_id = $2, status = $3, accepted_at = $4, updated_at = $4
		WHERE id = $1 AND status = $5
		RETURNING ` + orderColumns

	now := models.Now()
	err := r.db.GetContext(ctx, &row, query,
		orderID, driverID, models.OrderStatusAccepted, now, models.OrderStatusPending)
	if err == nil {
		return row.toOrder(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to accept order: %w", err)
	}

	// Zero rows: either the order never existed or it already left
	// pending; tell the caller which.
	if _, err := r.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: order %s", apperrors.ErrOrderTaken, orderID)
}

// MarkArrived moves accepted -> driver_arrived for the assigned driver
func (r *OrderRepo) MarkArrived(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $3, arrived_at = $4, updated_at = $4
		WHERE id = $1 AND driver_id = $2 AND status = $5
		RETURNING ` + orderColumns
	return r.transition(ctx, query,
		orderID, driverID, models.OrderStatusDriverArrived, models.Now(), models.OrderStatusAccepted)
}

// StartTrip moves driver_arrived -> in_progress for the assigned driver
func (r *OrderRepo) StartTrip(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $3, started_at = $4, updated_at = $4
		WHERE id = $1 AND driver_id = $2 AND status = $5
		RETURNING ` + orderColumns
	return r.transition(ctx, query,
		orderID, driverID, models.OrderStatusInProgress, models.Now(), models.OrderStatusDriverArrived)
}

// CompleteOrder moves in_progress -> completed, recording trip actuals
func (r *OrderRepo) CompleteOrder(ctx context.Context, orderID, driverID uuid.UUID, req models.CompleteOrderRequest) (*models.Order, error) {
	var row orderRow
	query := `
		UPDATE orders
		SET status = $3, completed_at = $4, updated_at = $4,
			final_price = $5, actual_distance_km = $6, actual_duration_min = $7
		WHERE id = $1 AND driver_id = $2 AND status = $8
		RETURNING ` + orderColumns

	now := models.Now()
	err := r.db.GetContext(ctx, &row, query,
		orderID, driverID, models.OrderStatusCompleted, now,
		req.FinalPrice, req.ActualDistanceKm, req.ActualDurationMin,
		models.OrderStatusInProgress)
	if err == nil {
		return row.toOrder(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}
	return nil, r.explainFailedTransition(ctx, orderID, driverID)
}

// CancelOrder moves pending|accepted -> cancelled. The caller check
// happened in the usecase; the state guard is enforced here so a
// concurrent accept or arrival cannot be overwritten.
func (r *OrderRepo) CancelOrder(ctx context.Context, orderID, cancelledBy uuid.UUID, reason string) (*models.Order, error) {
	var row orderRow
	query := `
		UPDATE orders
		SET status = $2, cancelled_by = $3, cancel_reason = $4, cancelled_at = $5, updated_at = $5
		WHERE id = $1 AND status IN ($6, $7)
		RETURNING ` + orderColumns

	now := models.Now()
	err := r.db.GetContext(ctx, &row, query,
		orderID, models.OrderStatusCancelled, cancelledBy, reason, now,
		models.OrderStatusPending, models.OrderStatusAccepted)
	if err == nil {
		return row.toOrder(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	current, getErr := r.GetOrder(ctx, orderID)
	if getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: order %s is %s", apperrors.ErrPreconditionFailed, orderID, current.Status)
}

// ListByPassenger returns a passenger's orders, newest first
func (r *OrderRepo) ListByPassenger(ctx context.Context, passengerID uuid.UUID, status *models.OrderStatus) ([]*models.Order, error) {
	return r.list(ctx, "passenger_id", passengerID, status)
}

// ListByDriver returns a driver's assigned orders, newest first
func (r *OrderRepo) ListByDriver(ctx context.Context, driverID uuid.UUID, status *models.OrderStatus) ([]*models.Order, error) {
	return r.list(ctx, "driver_id", driverID, status)
}

// ListPending returns all currently pending orders, oldest first, so
// dispatch re-offers the longest-waiting passengers before newer ones.
func (r *OrderRepo) ListPending(ctx context.Context) ([]*models.Order, error) {
	var rows []orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &rows, query, models.OrderStatusPending); err != nil {
		return nil, fmt.Errorf("failed to list pending orders: %w", err)
	}
	return rowsToOrders(rows), nil
}

func (r *OrderRepo) list(ctx context.Context, column string, id uuid.UUID, status *models.OrderStatus) ([]*models.Order, error) {
	var rows []orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + column + ` = $1`
	args := []interface{}{id}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return rowsToOrders(rows), nil
}

func (r *OrderRepo) transition(ctx context.Context, query string, orderID, driverID uuid.UUID, args ...interface{}) (*models.Order, error) {
	var row orderRow
	all := append([]interface{}{orderID, driverID}, args...)
	err := r.db.GetContext(ctx, &row, query, all...)
	if err == nil {
		return row.toOrder(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return nil, r.explainFailedTransition(ctx, orderID, driverID)
}

// explainFailedTransition turns a zero-row conditional update into the
// precise error: missing order, wrong driver, or wrong state.
func (r *OrderRepo) explainFailedTransition(ctx context.Context, orderID, driverID uuid.UUID) error {
	current, err := r.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if current.DriverID == nil || *current.DriverID != driverID {
		return fmt.Errorf("%w: order %s is not assigned to driver %s", apperrors.ErrUnauthorized, orderID, driverID)
	}
	return fmt.Errorf("%w: order %s is %s", apperrors.ErrPreconditionFailed, orderID, current.Status)
}

func rowsToOrders(rows []orderRow) []*models.Order {
	out := make([]*models.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toOrder())
	}
	return out
}
