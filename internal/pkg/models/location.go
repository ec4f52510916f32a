package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is a geographical position
type Location struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Fix is a single raw GPS reading from a driver device, before filtering
type Fix struct {
	DriverID  uuid.UUID `json:"driver_id"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Accuracy  float64   `json:"accuracy"`
	Speed     *float64  `json:"speed,omitempty"`
	Bearing   *float64  `json:"bearing,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackPoint is one accepted fix belonging to an (order, driver) pair.
// Track points are append-only and never mutated.
type TrackPoint struct {
	OrderID    uuid.UUID `json:"order_id" db:"order_id"`
	DriverID   uuid.UUID `json:"driver_id" db:"driver_id"`
	Latitude   float64   `json:"lat" db:"lat"`
	Longitude  float64   `json:"lng" db:"lng"`
	Accuracy   *float64  `json:"accuracy,omitempty" db:"accuracy"`
	Speed      *float64  `json:"speed,omitempty" db:"speed"`
	Bearing    *float64  `json:"bearing,omitempty" db:"bearing"`
	DeviceTime time.Time `json:"device_time" db:"device_time"`
	ReceivedAt time.Time `json:"received_at" db:"received_at"`
}

// LocationUpdate is the published form of an accepted fix
type LocationUpdate struct {
	DriverID  uuid.UUID  `json:"driver_id"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Location  Location   `json:"location"`
	CreatedAt time.Time  `json:"created_at"`
}
