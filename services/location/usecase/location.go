package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qcar/dispatch/internal/pkg/apperrors"
	"github.com/qcar/dispatch/internal/pkg/logger"
	"github.com/qcar/dispatch/internal/pkg/models"
	"github.com/qcar/dispatch/internal/pkg/observability"
	"github.com/qcar/dispatch/internal/utils"
	"github.com/qcar/dispatch/services/dispatch"
	"github.com/qcar/dispatch/services/location"
)

// lastFix is the per-driver suppression state. Kept in memory: losing it
// on restart only means the next fix publishes unconditionally, which is
// the correct first-fix behavior anyway.
type lastFix struct {
	lat, lng float64
	at       time.Time
}

// LocationUC is the location filter pipeline: validate, convert to
// GCJ-02, throttle, then fan the accepted position out.
type LocationUC struct {
	cfg        *models.Config
	trackRepo  location.TrackRepo
	driverRepo dispatch.DriverRepo
	gw         location.LocationGW

	mu   sync.Mutex
	last map[uuid.UUID]lastFix
}

// NewLocationUC creates the location usecase
func NewLocationUC(
	cfg *models.Config,
	trackRepo location.TrackRepo,
	driverRepo dispatch.DriverRepo,
	gw location.LocationGW,
) *LocationUC {
	return &LocationUC{
		cfg:        cfg,
		trackRepo:  trackRepo,
		driverRepo: driverRepo,
		gw:         gw,
		last:       make(map[uuid.UUID]lastFix),
	}
}

// ProcessFix runs one raw fix through the filter. Dropping a fix is
// normal operation, not an error: only malformed input surfaces to the
// caller, and a throttled fix returns nil.
func (uc *LocationUC) ProcessFix(ctx context.Context, fix models.Fix) error {
	if fix.DriverID == uuid.Nil ||
		fix.Latitude < -90 || fix.Latitude > 90 ||
		fix.Longitude < -180 || fix.Longitude > 180 {
		observability.FixesTotal.WithLabelValues("rejected_malformed").Inc()
		logger.Warn("malformed location fix",
			logger.String("driver_id", fix.DriverID.String()),
			logger.Float64("lat", fix.Latitude),
			logger.Float64("lng", fix.Longitude))
		return fmt.Errorf("%w: malformed location fix", apperrors.ErrInvalidInput)
	}
	if fix.Accuracy < 0 || fix.Accuracy > uc.cfg.Location.MaxAccuracyM {
		observability.FixesTotal.WithLabelValues("rejected_accuracy").Inc()
		return nil
	}

	// Devices report WGS-84; everything downstream works in GCJ-02.
	lat, lng := utils.WGS84ToGCJ02(fix.Latitude, fix.Longitude)

	if !uc.shouldPublish(fix.DriverID, lat, lng, fix.Timestamp) {
		observability.FixesTotal.WithLabelValues("suppressed").Inc()
		return nil
	}
	observability.FixesTotal.WithLabelValues("published").Inc()

	if err := uc.driverRepo.UpdatePosition(ctx, fix.DriverID, lat, lng); err != nil {
		logger.Warn("failed to update driver position",
			logger.String("driver_id", fix.DriverID.String()),
			logger.Err(err))
	}

	orderID, err := uc.driverRepo.ActiveOrder(ctx, fix.DriverID)
	if err != nil {
		logger.Warn("failed to look up active order",
			logger.String("driver_id", fix.DriverID.String()),
			logger.Err(err))
	}
	if orderID != nil {
		point := models.TrackPoint{
			OrderID:    *orderID,
			DriverID:   fix.DriverID,
			Latitude:   lat,
			Longitude:  lng,
			Accuracy:   &fix.Accuracy,
			Speed:      fix.Speed,
			Bearing:    fix.Bearing,
			DeviceTime: fix.Timestamp,
			ReceivedAt: models.Now(),
		}
		if err := uc.trackRepo.AppendTrackPoint(ctx, point); err != nil {
			logger.Warn("failed to append track point",
				logger.String("order_id", orderID.String()),
				logger.Err(err))
		}
	}

	update := models.LocationUpdate{
		DriverID: fix.DriverID,
		OrderID:  orderID,
		Location: models.Location{
			Latitude:  lat,
			Longitude: lng,
			Timestamp: fix.Timestamp,
		},
		CreatedAt: models.Now(),
	}
	if err := uc.gw.PublishLocationUpdate(ctx, update); err != nil {
		// Fire and forget; a lost update is replaced by the next one.
		logger.Warn("failed to publish location update",
			logger.String("driver_id", fix.DriverID.String()),
			logger.Err(err))
	}
	return nil
}

// GetOrderTrack returns an order's recorded route, oldest point first
func (uc *LocationUC) GetOrderTrack(ctx context.Context, orderID uuid.UUID) ([]models.TrackPoint, error) {
	return uc.trackRepo.GetOrderTrack(ctx, orderID)
}

// shouldPublish applies the throttle: the first fix for a driver always
// publishes; after that both the minimum interval and the minimum moved
// distance have to pass.
func (uc *LocationUC) shouldPublish(driverID uuid.UUID, lat, lng float64, at time.Time) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	prev, seen := uc.last[driverID]
	if seen {
		elapsed := at.Sub(prev.at)
		movedM := utils.DistanceMeters(
			utils.GeoPoint{Latitude: prev.lat, Longitude: prev.lng},
			utils.GeoPoint{Latitude: lat, Longitude: lng})
		if elapsed < time.Duration(uc.cfg.Location.MinPublishIntervalSec)*time.Second ||
			movedM < uc.cfg.Location.MinPublishDistanceM {
			return false
		}
	}
	uc.last[driverID] = lastFix{lat: lat, lng: lng, at: at}
	return true
}
