package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcar/dispatch/internal/pkg/constants"
	"github.com/qcar/dispatch/internal/pkg/database"
	"github.com/qcar/dispatch/internal/pkg/models"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *database.RedisClient) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, &database.RedisClient{Client: client}
}

func setupDriverRepo(t *testing.T) (*DriverRepo, *miniredis.Miniredis) {
	mr, rc := setupMiniredis(t)
	return NewDriverRepo(&models.Config{}, rc), mr
}

func TestSetOnline_DriverBecomesOfferable(t *testing.T) {
	repo, mr := setupDriverRepo(t)
	ctx := context.Background()
	driverID := uuid.New()

	err := repo.SetOnline(ctx, driverID, 39.9042, 116.4074)
	require.NoError(t, err)

	avail, err := repo.GetAvailability(ctx, driverID)
	require.NoError(t, err)
	require.NotNil(t, avail)
	assert.Equal(t, models.DriverStatusOnline, avail.Status)
	assert.InDelta(t, 39.9042, avail.Latitude, 1e-6)
	assert.InDelta(t, 116.4074, avail.Longitude, 1e-6)

	nearby, err := repo.FindNearby(ctx, 39.9042, 116.4074, 5, 10)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, driverID, nearby[0].DriverID)

	// Stale availability self-expires.
	statusKey := fmt.Sprintf(constants.KeyDriverStatus, driverID)
	assert.Greater(t, mr.TTL(statusKey).Seconds(), 0.0)
}

func TestGetAvailability_UnknownDriver(t *testing.T) {
	repo, _ := setupDriverRepo(t)

	avail, err := repo.GetAvailability(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, avail)
}

func TestSetOffline_RemovedFromGeoSet(t *testing.T) {
	repo, _ := setupDriverRepo(t)
	ctx := context.Background()
	driverID := uuid.New()

	require.NoError(t, repo.SetOnline(ctx, driverID, 39.9042, 116.4074))
	require.NoError(t, repo.SetOffline(ctx, driverID))

	nearby, err := repo.FindNearby(ctx, 39.9042, 116.4074, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, nearby)

	avail, err := repo.GetAvailability(ctx, driverID)
	require.NoError(t, err)
	require.NotNil(t, avail)
	assert.Equal(t, models.DriverStatusOffline, avail.Status)
}

func TestFindNearby_RadiusAndOrdering(t *testing.T) {
	repo, _ := setupDriverRepo(t)
	ctx := context.Background()

	closest := uuid.New()
	farther := uuid.New()
	outside := uuid.New()

	require.NoError(t, repo.SetOnline(ctx, closest, 39.9042, 116.4074))
	require.NoError(t, repo.SetOnline(ctx, farther, 39.9200, 116.4074)) // ~1.8 km north
	require.NoError(t, repo.SetOnline(ctx, outside, 39.9897, 116.3353)) // ~11 km away

	nearby, err := repo.FindNearby(ctx, 39.9042, 116.4074, 5, 10)

	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, closest, nearby[0].DriverID)
	assert.Equal(t, farther, nearby[1].DriverID)
	assert.Less(t, nearby[0].DistanceKm, nearby[1].DistanceKm)
}

func TestMarkBusy_DriverLeavesPoolAndRecordsOrder(t *testing.T) {
	repo, _ := setupDriverRepo(t)
	ctx := context.Background()
	driverID := uuid.New()
	orderID := uuid.New()

	require.NoError(t, repo.SetOnline(ctx, driverID, 39.9042, 116.4074))
	require.NoError(t, repo.MarkBusy(ctx, driverID, orderID))

	nearby, err := repo.FindNearby(ctx, 39.9042, 116.4074, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, nearby)

	active, err := repo.ActiveOrder(ctx, driverID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, orderID, *active)

	avail, err := repo.GetAvailability(ctx, driverID)
	require.NoError(t, err)
	assert.Equal(t, models.DriverStatusBusy, avail.Status)
}

func TestClearBusy_DriverRestoredAtLastPosition(t *testing.T) {
	repo, _ := setupDriverRepo(t)
	ctx := context.Background()
	driverID := uuid.New()

	require.NoError(t, repo.SetOnline(ctx, driverID, 39.9042, 116.4074))
	require.NoError(t, repo.MarkBusy(ctx, driverID, uuid.New()))
	require.NoError(t, repo.ClearBusy(ctx, driverID))

	active, err := repo.ActiveOrder(ctx, driverID)
	require.NoError(t, err)
	assert.Nil(t, active)

	avail, err := repo.GetAvailability(ctx, driverID)
	require.NoError(t, err)
	assert.Equal(t, models.DriverStatusOnline, avail.Status)

	nearby, err := repo.FindNearby(ctx, 39.9042, 116.4074, 5, 10)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
}

func TestClearBusy_OfflineDriverStaysOffline(t *testing.T) {
	repo, _ := setupDriverRepo(t)
	ctx := context.Background()
	driverID := uuid.New()

	require.NoError(t, repo.SetOnline(ctx, driverID, 39.9042, 116.4074))
	require.NoError(t, repo.MarkBusy(ctx, driverID, uuid.New()))
	require.NoError(t, repo.SetOffline(ctx, driverID))
	require.NoError(t, repo.ClearBusy(ctx, driverID))

	avail, err := repo.GetAvailability(ctx, driverID)
	require.NoError(t, err)
	assert.Equal(t, models.DriverStatusOffline, avail.Status)

	nearby, err := repo.FindNearby(ctx, 39.9042, 116.4074, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, nearby)
}

func TestActiveOrder_FreeDriver(t *testing.T) {
	repo, _ := setupDriverRepo(t)

	active, err := repo.ActiveOrder(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestUpdatePosition_RefreshesOnlineDriverOnly(t *testing.T) {
	repo, _ := setupDriverRepo(t)
	ctx := context.Background()
	online := uuid.New()
	busy := uuid.New()

	require.NoError(t, repo.SetOnline(ctx, online, 39.9042, 116.4074))
	require.NoError(t, repo.SetOnline(ctx, busy, 39.9042, 116.4074))
	require.NoError(t, repo.MarkBusy(ctx, busy, uuid.New()))

	require.NoError(t, repo.UpdatePosition(ctx, online, 39.9200, 116.4074))
	require.NoError(t, repo.UpdatePosition(ctx, busy, 39.9200, 116.4074))

	avail, err := repo.GetAvailability(ctx, online)
	require.NoError(t, err)
	assert.InDelta(t, 39.9200, avail.Latitude, 1e-6)

	// The busy driver's position moves but they stay out of the pool.
	nearby, err := repo.FindNearby(ctx, 39.9200, 116.4074, 5, 10)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, online, nearby[0].DriverID)
}

func TestUpdatePosition_UnknownDriverNoop(t *testing.T) {
	repo, _ := setupDriverRepo(t)

	err := repo.UpdatePosition(context.Background(), uuid.New(), 39.9, 116.4)
	assert.NoError(t, err)
}

func TestOfferRounds_BumpReadClear(t *testing.T) {
	_, rc := setupMiniredis(t)
	repo := NewOfferRepo(rc)
	ctx := context.Background()
	orderID := uuid.New()

	round, err := repo.CurrentRound(ctx, orderID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, round)

	round, err = repo.BumpRound(ctx, orderID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, round)

	round, err = repo.BumpRound(ctx, orderID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, round)

	current, err := repo.CurrentRound(ctx, orderID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, current)

	require.NoError(t, repo.ClearRound(ctx, orderID))

	current, err = repo.CurrentRound(ctx, orderID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, current)
}
