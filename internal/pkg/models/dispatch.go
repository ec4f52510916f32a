package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderOffer is one offer of a pending order to a candidate driver.
// Round stamps the offer so claims from a superseded round fail closed.
type OrderOffer struct {
	OrderID    uuid.UUID  `json:"order_id"`
	DriverID   uuid.UUID  `json:"driver_id"`
	Round      int64      `json:"round"`
	Pickup     OrderPoint `json:"pickup"`
	DistanceKm float64    `json:"distance_km"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// ClaimRequest is a driver's attempt to claim a pending order.
// Round 0 means the claim did not come from an offer (driver pulled the
// order from the pending list); such claims skip the round check but
// still face the accept compare-and-swap.
type ClaimRequest struct {
	Round int64 `json:"round"`
}

// OrderCreatedEvent announces a freshly created pending order to the
// dispatch coordinator
type OrderCreatedEvent struct {
	OrderID     uuid.UUID  `json:"order_id"`
	PassengerID uuid.UUID  `json:"passenger_id"`
	Pickup      OrderPoint `json:"pickup"`
	CreatedAt   time.Time  `json:"created_at"`
}
