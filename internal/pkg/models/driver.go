package models

import (
	"time"

	"github.com/google/uuid"
)

// DriverStatus is a driver's availability state
type DriverStatus string

const (
	DriverStatusOnline  DriverStatus = "online"
	DriverStatusOffline DriverStatus = "offline"
	DriverStatusBusy    DriverStatus = "busy"
)

// DriverAvailability is the mutable availability record for a driver.
// It is written only by the driver's own online/offline toggle, by the
// location filter's accepted fixes, and by the dispatch coordinator's
// busy flagging.
type DriverAvailability struct {
	DriverID  uuid.UUID    `json:"driver_id"`
	Status    DriverStatus `json:"status"`
	Latitude  float64      `json:"lat"`
	Longitude float64      `json:"lng"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// DriverProfile holds the durable driver attributes used to enrich
// nearby-driver results
type DriverProfile struct {
	DriverID    uuid.UUID `json:"driver_id" db:"driver_id"`
	Rating      float64   `json:"rating" db:"rating"`
	TotalOrders int       `json:"total_orders" db:"total_orders"`
}

// NearbyDriver is one ranked result of a nearby-driver lookup
type NearbyDriver struct {
	DriverID    uuid.UUID `json:"driver_id"`
	DistanceKm  float64   `json:"distance_km"`
	Rating      float64   `json:"rating"`
	TotalOrders int       `json:"total_orders"`
}

// AvailabilityRequest is the driver's online/offline toggle payload
type AvailabilityRequest struct {
	Online    bool    `json:"online"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}
