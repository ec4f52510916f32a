package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusAccepted      OrderStatus = "accepted"
	OrderStatusDriverArrived OrderStatus = "driver_arrived"
	OrderStatusInProgress    OrderStatus = "in_progress"
	OrderStatusCompleted     OrderStatus = "completed"
	OrderStatusCancelled     OrderStatus = "cancelled"
)

// OrderType distinguishes on-demand orders from scheduled ones
type OrderType string

const (
	OrderTypeImmediate OrderType = "immediate"
	OrderTypeScheduled OrderType = "scheduled"
)

// ServiceType is the service tier requested by the passenger
type ServiceType string

const (
	ServiceTypeStandard     ServiceType = "standard"
	ServiceTypeBusiness     ServiceType = "business"
	ServiceTypeLongDistance ServiceType = "long_distance"
)

// OrderPoint is a pickup or dropoff endpoint of an order
type OrderPoint struct {
	Address   string  `json:"address,omitempty" db:"address"`
	Latitude  float64 `json:"lat" db:"lat"`
	Longitude float64 `json:"lng" db:"lng"`
	PoiID     string  `json:"poi_id,omitempty" db:"poi_id"`
}

// Order represents a single trip request from pickup to dropoff
type Order struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	OrderNumber string     `json:"order_number" db:"order_number"`
	PassengerID uuid.UUID  `json:"passenger_id" db:"passenger_id"`
	DriverID    *uuid.UUID `json:"driver_id,omitempty" db:"driver_id"`

	OrderType     OrderType   `json:"order_type" db:"order_type"`
	ServiceType   ServiceType `json:"service_type" db:"service_type"`
	ScheduledTime *time.Time  `json:"scheduled_time,omitempty" db:"scheduled_time"`

	Pickup  OrderPoint `json:"pickup"`
	Dropoff OrderPoint `json:"dropoff"`

	EstimatedDistanceKm  float64 `json:"estimated_distance_km" db:"estimated_distance_km"`
	EstimatedDurationMin int     `json:"estimated_duration_min" db:"estimated_duration_min"`
	EstimatedPrice       float64 `json:"estimated_price" db:"estimated_price"`

	ActualDistanceKm  *float64 `json:"actual_distance_km,omitempty" db:"actual_distance_km"`
	ActualDurationMin *int     `json:"actual_duration_min,omitempty" db:"actual_duration_min"`
	FinalPrice        *float64 `json:"final_price,omitempty" db:"final_price"`

	Status OrderStatus `json:"status" db:"status"`

	CancelledBy  *uuid.UUID `json:"cancelled_by,omitempty" db:"cancelled_by"`
	CancelReason string     `json:"cancel_reason,omitempty" db:"cancel_reason"`

	PassengerNote string `json:"passenger_note,omitempty" db:"passenger_note"`

	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty" db:"accepted_at"`
	ArrivedAt   *time.Time `json:"arrived_at,omitempty" db:"arrived_at"`
	StartedAt   *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the order is still in a non-terminal state
func (o *Order) IsActive() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusDriverArrived, OrderStatusInProgress:
		return true
	}
	return false
}

// CanBeCancelledBy reports whether the given caller may cancel the order
// in its current state. Cancellation is only allowed before the driver
// has arrived, by the passenger or the assigned driver.
func (o *Order) CanBeCancelledBy(callerID uuid.UUID) bool {
	if o.Status != OrderStatusPending && o.Status != OrderStatusAccepted {
		return false
	}
	if callerID == o.PassengerID {
		return true
	}
	return o.DriverID != nil && *o.DriverID == callerID
}

// Snapshot returns the fan-out view of the order
func (o *Order) Snapshot() OrderSnapshot {
	return OrderSnapshot{Order: *o, UpdatedAt: o.UpdatedAt}
}

// OrderSnapshot is the full current state of an order as delivered to
// subscribers. Snapshots are idempotent full-state replacements keyed on
// UpdatedAt, not deltas.
type OrderSnapshot struct {
	Order     Order     `json:"order"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateOrderRequest carries the fields a passenger supplies at creation
type CreateOrderRequest struct {
	PassengerID   uuid.UUID   `json:"passenger_id"`
	OrderType     OrderType   `json:"order_type"`
	ServiceType   ServiceType `json:"service_type"`
	ScheduledTime *time.Time  `json:"scheduled_time,omitempty"`

	Pickup  OrderPoint `json:"pickup"`
	Dropoff OrderPoint `json:"dropoff"`

	EstimatedDistanceKm  float64 `json:"estimated_distance_km"`
	EstimatedDurationMin int     `json:"estimated_duration_min"`
	EstimatedPrice       float64 `json:"estimated_price"`

	PassengerNote string `json:"passenger_note,omitempty"`
}

// CompleteOrderRequest carries the actuals recorded at trip completion
type CompleteOrderRequest struct {
	FinalPrice        float64 `json:"final_price"`
	ActualDistanceKm  float64 `json:"actual_distance_km"`
	ActualDurationMin int     `json:"actual_duration_min"`
}

// CancelOrderRequest carries the cancellation metadata
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}
