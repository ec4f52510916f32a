package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/qcar/dispatch/internal/pkg/models"
)

//go:generate mockgen -source=location.go -destination=mocks/mock_location.go -package=mocks

// TrackRepo is the append-only store of accepted fixes for orders in
// progress. Track points are never mutated or deleted.
type TrackRepo interface {
	AppendTrackPoint(ctx context.Context, point models.TrackPoint) error
	GetOrderTrack(ctx context.Context, orderID uuid.UUID) ([]models.TrackPoint, error)
}

// LocationGW publishes accepted fixes to downstream consumers
type LocationGW interface {
	PublishLocationUpdate(ctx context.Context, update models.LocationUpdate) error
}

// LocationUC ingests raw GPS fixes, filters them and fans accepted
// positions out to the availability store, the track log and the bus
type LocationUC interface {
	ProcessFix(ctx context.Context, fix models.Fix) error
	GetOrderTrack(ctx context.Context, orderID uuid.UUID) ([]models.TrackPoint, error)
}
