package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qcar/dispatch/internal/pkg/models"
)

// ProfileRepo reads driver profiles from PostgreSQL
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates the driver profile repository
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// GetProfiles returns profiles for the given drivers, keyed by driver
// id. Drivers without a profile row are simply absent from the map.
func (r *ProfileRepo) GetProfiles(ctx context.Context, driverIDs []uuid.UUID) (map[uuid.UUID]models.DriverProfile, error) {
	if len(driverIDs) == 0 {
		return map[uuid.UUID]models.DriverProfile{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT driver_id, rating, total_orders FROM driver_profiles WHERE driver_id IN (?)`,
		driverIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []models.DriverProfile
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load driver profiles: %w", err)
	}

	profiles := make(map[uuid.UUID]models.DriverProfile, len(rows))
	for _, p := range rows {
		profiles[p.DriverID] = p
	}
	return profiles, nil
}
