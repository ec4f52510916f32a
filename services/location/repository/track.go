package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qcar/dispatch/internal/pkg/models"
)

// TrackRepo stores accepted fixes in the append-only location_tracking
// table
type TrackRepo struct {
	db *sqlx.DB
}

// NewTrackRepo creates the track repository
func NewTrackRepo(db *sqlx.DB) *TrackRepo {
	return &TrackRepo{db: db}
}

// AppendTrackPoint inserts one accepted fix. Rows are never updated.
func (r *TrackRepo) AppendTrackPoint(ctx context.Context, point models.TrackPoint) error {
	query := `
		INSERT INTO location_tracking (
			order_id, driver_id, lat, lng, accuracy, speed, bearing, device_time, received_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		point.OrderID, point.DriverID, point.Latitude, point.Longitude,
		point.Accuracy, point.Speed, point.Bearing, point.DeviceTime, point.ReceivedAt)
	if err != nil {
		return fmt.Errorf("failed to append track point: %w", err)
	}
	return nil
}

// GetOrderTrack returns an order's track points in recording order
func (r *TrackRepo) GetOrderTrack(ctx context.Context, orderID uuid.UUID) ([]models.TrackPoint, error) {
	var points []models.TrackPoint
	query := `
		SELECT order_id, driver_id, lat, lng, accuracy, speed, bearing, device_time, received_at
		FROM location_tracking
		WHERE order_id = $1
		ORDER BY received_at ASC`

	if err := r.db.SelectContext(ctx, &points, query, orderID); err != nil {
		return nil, fmt.Errorf("failed to load order track: %w", err)
	}
	return points, nil
}
