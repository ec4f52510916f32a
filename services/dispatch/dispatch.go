package dispatch

import (
	"context"

	"github.com/google/uuid"
	"github.com/qcar/dispatch/internal/pkg/models"
)

//go:generate mockgen -source=dispatch.go -destination=mocks/mock_dispatch.go -package=mocks

// DriverRepo is the availability and geo store for drivers. Available
// (online, not busy) drivers live in a Redis GEO set keyed on driver id;
// the status hash holds the full availability record.
type DriverRepo interface {
	SetOnline(ctx context.Context, driverID uuid.UUID, lat, lng float64) error
	SetOffline(ctx context.Context, driverID uuid.UUID) error
	MarkBusy(ctx context.Context, driverID, orderID uuid.UUID) error
	ClearBusy(ctx context.Context, driverID uuid.UUID) error
	GetAvailability(ctx context.Context, driverID uuid.UUID) (*models.DriverAvailability, error)
	UpdatePosition(ctx context.Context, driverID uuid.UUID, lat, lng float64) error

	// FindNearby returns available drivers within radiusKm of the point,
	// nearest first, at most limit results.
	FindNearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]models.NearbyDriver, error)

	// ActiveOrder returns the order the driver is currently busy on, or
	// nil when the driver is free.
	ActiveOrder(ctx context.Context, driverID uuid.UUID) (*uuid.UUID, error)
}

// ProfileRepo reads durable driver attributes used to enrich
// nearby-driver results
type ProfileRepo interface {
	GetProfiles(ctx context.Context, driverIDs []uuid.UUID) (map[uuid.UUID]models.DriverProfile, error)
}

// OfferRepo tracks the current offer round per order. Rounds only move
// forward; a claim stamped with an older round is stale.
type OfferRepo interface {
	// BumpRound advances the order's offer round and returns the new one.
	BumpRound(ctx context.Context, orderID uuid.UUID) (int64, error)
	CurrentRound(ctx context.Context, orderID uuid.UUID) (int64, error)
	ClearRound(ctx context.Context, orderID uuid.UUID) error
}

// DispatchGW publishes offers to candidate drivers
type DispatchGW interface {
	PublishOffer(ctx context.Context, offer models.OrderOffer) error
}

// DispatchUC coordinates matching pending orders with nearby drivers
type DispatchUC interface {
	OpenForOffers(ctx context.Context, order *models.Order) ([]models.NearbyDriver, error)
	AttemptClaim(ctx context.Context, orderID, driverID uuid.UUID, round int64) (*models.Order, error)
	HandleOrderCancelled(ctx context.Context, orderID uuid.UUID) error

	// StartReofferWorker begins watching a pending order, re-opening
	// offer rounds until it is claimed, cancelled or rounds run out.
	StartReofferWorker(ctx context.Context, orderID uuid.UUID)

	SetAvailability(ctx context.Context, driverID uuid.UUID, req models.AvailabilityRequest) error
	FindNearbyDrivers(ctx context.Context, lat, lng float64) ([]models.NearbyDriver, error)
	ListPendingOrdersNearby(ctx context.Context, driverID uuid.UUID) ([]*models.Order, error)

	// Stop cancels all re-offer workers. Called on shutdown.
	Stop()
}
