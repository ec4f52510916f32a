package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/qcar/dispatch/internal/pkg/apperrors"
	"github.com/qcar/dispatch/internal/pkg/constants"
	"github.com/qcar/dispatch/internal/pkg/database"
	"github.com/qcar/dispatch/internal/pkg/models"
)

// availabilityTTL bounds how long a stale availability record survives a
// driver that vanished without going offline.
const availabilityTTL = 24 * time.Hour

// DriverRepo keeps driver availability in Redis: a status hash per
// driver plus a GEO set holding only drivers that are online and not
// busy. Membership in the GEO set is what makes a driver offerable.
type DriverRepo struct {
	cfg   *models.Config
	redis *database.RedisClient
}

// NewDriverRepo creates the driver availability repository
func NewDriverRepo(cfg *models.Config, redis *database.RedisClient) *DriverRepo {
	return &DriverRepo{cfg: cfg, redis: redis}
}

// SetOnline puts the driver into the available pool at the given position
func (r *DriverRepo) SetOnline(ctx context.Context, driverID uuid.UUID, lat, lng float64) error {
	if err := r.writeStatus(ctx, driverID, models.DriverStatusOnline, lat, lng); err != nil {
		return err
	}
	if err := r.redis.GeoAdd(ctx, constants.KeyDriverGeo, lng, lat, driverID.String()); err != nil {
		return fmt.Errorf("%w: failed to add driver to geo set: %v", apperrors.ErrDependencyUnavailable, err)
	}
	return nil
}

// SetOffline removes the driver from the available pool
func (r *DriverRepo) SetOffline(ctx context.Context, driverID uuid.UUID) error {
	if err := r.writeStatus(ctx, driverID, models.DriverStatusOffline, 0, 0); err != nil {
		return err
	}
	return r.removeFromGeo(ctx, driverID)
}

// MarkBusy takes the driver out of the offerable pool and records the
// order they are serving
func (r *DriverRepo) MarkBusy(ctx context.Context, driverID, orderID uuid.UUID) error {
	statusKey := fmt.Sprintf(constants.KeyDriverStatus, driverID)
	if err := r.redis.HSet(ctx, statusKey, map[string]interface{}{
		constants.FieldStatus:    string(models.DriverStatusBusy),
		constants.FieldTimestamp: models.Now().Unix(),
	}); err != nil {
		return fmt.Errorf("%w: failed to mark driver busy: %v", apperrors.ErrDependencyUnavailable, err)
	}
	activeKey := fmt.Sprintf(constants.KeyDriverActiveOn, driverID)
	if err := r.redis.Set(ctx, activeKey, orderID.String(), availabilityTTL); err != nil {
		return fmt.Errorf("%w: failed to record active order: %v", apperrors.ErrDependencyUnavailable, err)
	}
	return r.removeFromGeo(ctx, driverID)
}

// ClearBusy returns a busy driver to the available pool at their last
// known position. A driver who went offline mid-trip stays offline.
func (r *DriverRepo) ClearBusy(ctx context.Context, driverID uuid.UUID) error {
	activeKey := fmt.Sprintf(constants.KeyDriverActiveOn, driverID)
	if err := r.redis.Delete(ctx, activeKey); err != nil {
		return fmt.Errorf("%w: failed to clear active order: %v", apperrors.ErrDependencyUnavailable, err)
	}

	avail, err := r.GetAvailability(ctx, driverID)
	if err != nil {
		return err
	}
	if avail == nil || avail.Status != models.DriverStatusBusy {
		return nil
	}
	return r.SetOnline(ctx, driverID, avail.Latitude, avail.Longitude)
}

// GetAvailability reads the driver's availability record. Returns nil
// when the driver has never been seen.
func (r *DriverRepo) GetAvailability(ctx context.Context, driverID uuid.UUID) (*models.DriverAvailability, error) {
	statusKey := fmt.Sprintf(constants.KeyDriverStatus, driverID)
	fields, err := r.redis.HGetAll(ctx, statusKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read driver status: %v", apperrors.ErrDependencyUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	avail := &models.DriverAvailability{
		DriverID: driverID,
		Status:   models.DriverStatus(fields[constants.FieldStatus]),
	}
	avail.Latitude, _ = strconv.ParseFloat(fields[constants.FieldLatitude], 64)
	avail.Longitude, _ = strconv.ParseFloat(fields[constants.FieldLongitude], 64)
	if ts, err := strconv.ParseInt(fields[constants.FieldTimestamp], 10, 64); err == nil {
		avail.UpdatedAt = time.Unix(ts, 0).UTC()
	}
	return avail, nil
}

// UpdatePosition moves the driver's recorded position. The GEO set is
// only refreshed for online drivers; busy and offline drivers are not
// offerable and stay out of it.
func (r *DriverRepo) UpdatePosition(ctx context.Context, driverID uuid.UUID, lat, lng float64) error {
	avail, err := r.GetAvailability(ctx, driverID)
	if err != nil {
		return err
	}
	if avail == nil || avail.Status == models.DriverStatusOffline {
		return nil
	}

	statusKey := fmt.Sprintf(constants.KeyDriverStatus, driverID)
	if err := r.redis.HSet(ctx, statusKey, map[string]interface{}{
		constants.FieldLatitude:  lat,
		constants.FieldLongitude: lng,
		constants.FieldTimestamp: models.Now().Unix(),
	}); err != nil {
		return fmt.Errorf("%w: failed to update driver position: %v", apperrors.ErrDependencyUnavailable, err)
	}

	if avail.Status == models.DriverStatusOnline {
		if err := r.redis.GeoAdd(ctx, constants.KeyDriverGeo, lng, lat, driverID.String()); err != nil {
			return fmt.Errorf("%w: failed to refresh driver geo position: %v", apperrors.ErrDependencyUnavailable, err)
		}
	}
	return nil
}

// FindNearby returns available drivers within radiusKm, nearest first
func (r *DriverRepo) FindNearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]models.NearbyDriver, error) {
	locations, err := r.redis.GeoRadius(ctx, constants.KeyDriverGeo, lng, lat, radiusKm, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: geo radius lookup failed: %v", apperrors.ErrDependencyUnavailable, err)
	}

	nearby := make([]models.NearbyDriver, 0, len(locations))
	for _, loc := range locations {
		driverID, err := uuid.Parse(loc.Name)
		if err != nil {
			continue
		}
		nearby = append(nearby, models.NearbyDriver{
			DriverID:   driverID,
			DistanceKm: loc.Dist,
		})
	}
	return nearby, nil
}

// ActiveOrder returns the order id the driver is busy on, nil when free
func (r *DriverRepo) ActiveOrder(ctx context.Context, driverID uuid.UUID) (*uuid.UUID, error) {
	activeKey := fmt.Sprintf(constants.KeyDriverActiveOn, driverID)
	val, err := r.redis.Get(ctx, activeKey)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read active order: %v", apperrors.ErrDependencyUnavailable, err)
	}
	orderID, err := uuid.Parse(val)
	if err != nil {
		return nil, fmt.Errorf("corrupt active order key for driver %s: %w", driverID, err)
	}
	return &orderID, nil
}

func (r *DriverRepo) writeStatus(ctx context.Context, driverID uuid.UUID, status models.DriverStatus, lat, lng float64) error {
	statusKey := fmt.Sprintf(constants.KeyDriverStatus, driverID)
	if err := r.redis.HSet(ctx, statusKey, map[string]interface{}{
		constants.FieldStatus:    string(status),
		constants.FieldLatitude:  lat,
		constants.FieldLongitude: lng,
		constants.FieldTimestamp: models.Now().Unix(),
	}); err != nil {
		return fmt.Errorf("%w: failed to write driver status: %v", apperrors.ErrDependencyUnavailable, err)
	}
	if err := r.redis.Expire(ctx, statusKey, availabilityTTL); err != nil {
		return fmt.Errorf("%w: failed to set status ttl: %v", apperrors.ErrDependencyUnavailable, err)
	}
	return nil
}

func (r *DriverRepo) removeFromGeo(ctx context.Context, driverID uuid.UUID) error {
	if err := r.redis.ZRem(ctx, constants.KeyDriverGeo, driverID.String()); err != nil {
		return fmt.Errorf("%w: failed to remove driver from geo set: %v", apperrors.ErrDependencyUnavailable, err)
	}
	return nil
}
