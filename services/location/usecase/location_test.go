package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcar/dispatch/internal/pkg/apperrors"
	"github.com/qcar/dispatch/internal/pkg/models"
	dispatchmocks "github.com/qcar/dispatch/services/dispatch/mocks"
	locationmocks "github.com/qcar/dispatch/services/location/mocks"
)

type locationMocks struct {
	trackRepo  *locationmocks.MockTrackRepo
	driverRepo *dispatchmocks.MockDriverRepo
	gw         *locationmocks.MockLocationGW
}

func newLocationUC(ctrl *gomock.Controller) (*LocationUC, locationMocks) {
	m := locationMocks{
		trackRepo:  locationmocks.NewMockTrackRepo(ctrl),
		driverRepo: dispatchmocks.NewMockDriverRepo(ctrl),
		gw:         locationmocks.NewMockLocationGW(ctrl),
	}
	cfg := &models.Config{
		Location: models.LocationConfig{
			MinPublishIntervalSec: 5,
			MinPublishDistanceM:   30,
			MaxAccuracyM:          100,
		},
	}
	return NewLocationUC(cfg, m.trackRepo, m.driverRepo, m.gw), m
}

func validFix(driverID uuid.UUID, at time.Time) models.Fix {
	return models.Fix{
		DriverID:  driverID,
		Latitude:  39.9042,
		Longitude: 116.4074,
		Accuracy:  10,
		Timestamp: at,
	}
}

// expectPublish wires the happy-path expectations for one accepted fix
// from a driver without an active order.
func expectPublish(m locationMocks, driverID uuid.UUID) {
	m.driverRepo.EXPECT().UpdatePosition(gomock.Any(), driverID, gomock.Any(), gomock.Any()).Return(nil)
	m.driverRepo.EXPECT().ActiveOrder(gomock.Any(), driverID).Return(nil, nil)
	m.gw.EXPECT().PublishLocationUpdate(gomock.Any(), gomock.Any()).Return(nil)
}

func TestProcessFix_MalformedRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _ := newLocationUC(ctrl)
	now := time.Now()

	cases := []struct {
		name string
		fix  models.Fix
	}{
		{"missing driver", models.Fix{Latitude: 39.9, Longitude: 116.4, Timestamp: now}},
		{"latitude out of range", models.Fix{DriverID: uuid.New(), Latitude: 91, Longitude: 116.4, Timestamp: now}},
		{"longitude out of range", models.Fix{DriverID: uuid.New(), Latitude: 39.9, Longitude: 181, Timestamp: now}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := uc.ProcessFix(context.Background(), tc.fix)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestProcessFix_PoorAccuracySilentlyDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _ := newLocationUC(ctrl)

	fix := validFix(uuid.New(), time.Now())
	fix.Accuracy = 250 // beyond MaxAccuracyM

	// No repo or gateway expectations: the fix must go nowhere.
	err := uc.ProcessFix(context.Background(), fix)
	assert.NoError(t, err)
}

func TestProcessFix_FirstFixAlwaysPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newLocationUC(ctrl)
	driverID := uuid.New()

	m.driverRepo.EXPECT().
		UpdatePosition(gomock.Any(), driverID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, lat, lng float64) error {
			// Position is converted before it leaves the filter.
			assert.NotEqual(t, 39.9042, lat)
			assert.NotEqual(t, 116.4074, lng)
			return nil
		})
	m.driverRepo.EXPECT().ActiveOrder(gomock.Any(), driverID).Return(nil, nil)
	m.gw.EXPECT().
		PublishLocationUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update models.LocationUpdate) error {
			assert.Equal(t, driverID, update.DriverID)
			assert.Nil(t, update.OrderID)
			return nil
		})

	err := uc.ProcessFix(context.Background(), validFix(driverID, time.Now()))
	assert.NoError(t, err)
}

func TestProcessFix_ThrottleSuppression(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newLocationUC(ctrl)
	driverID := uuid.New()
	base := time.Now()

	expectPublish(m, driverID)
	require.NoError(t, uc.ProcessFix(context.Background(), validFix(driverID, base)))

	// Moved far enough but too soon.
	tooSoon := validFix(driverID, base.Add(2*time.Second))
	tooSoon.Latitude += 0.01
	require.NoError(t, uc.ProcessFix(context.Background(), tooSoon))

	// Waited long enough but barely moved.
	tooNear := validFix(driverID, base.Add(10*time.Second))
	tooNear.Latitude += 0.00001 // ~1 m
	require.NoError(t, uc.ProcessFix(context.Background(), tooNear))

	// Both thresholds passed: publishes again.
	expectPublish(m, driverID)
	moved := validFix(driverID, base.Add(10*time.Second))
	moved.Latitude += 0.01 // ~1.1 km
	require.NoError(t, uc.ProcessFix(context.Background(), moved))
}

func TestProcessFix_SuppressionIsPerDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newLocationUC(ctrl)
	driverA := uuid.New()
	driverB := uuid.New()
	now := time.Now()

	expectPublish(m, driverA)
	require.NoError(t, uc.ProcessFix(context.Background(), validFix(driverA, now)))

	// A second driver at the same spot and time is not throttled by the
	// first driver's state.
	expectPublish(m, driverB)
	require.NoError(t, uc.ProcessFix(context.Background(), validFix(driverB, now)))
}

func TestProcessFix_TrackPointAppendedForActiveOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newLocationUC(ctrl)
	driverID := uuid.New()
	orderID := uuid.New()

	m.driverRepo.EXPECT().UpdatePosition(gomock.Any(), driverID, gomock.Any(), gomock.Any()).Return(nil)
	m.driverRepo.EXPECT().ActiveOrder(gomock.Any(), driverID).Return(&orderID, nil)
	m.trackRepo.EXPECT().
		AppendTrackPoint(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, point models.TrackPoint) error {
			assert.Equal(t, orderID, point.OrderID)
			assert.Equal(t, driverID, point.DriverID)
			assert.False(t, point.ReceivedAt.IsZero())
			return nil
		})
	m.gw.EXPECT().
		PublishLocationUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update models.LocationUpdate) error {
			require.NotNil(t, update.OrderID)
			assert.Equal(t, orderID, *update.OrderID)
			return nil
		})

	err := uc.ProcessFix(context.Background(), validFix(driverID, time.Now()))
	assert.NoError(t, err)
}

func TestProcessFix_PublishFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newLocationUC(ctrl)
	driverID := uuid.New()

	m.driverRepo.EXPECT().UpdatePosition(gomock.Any(), driverID, gomock.Any(), gomock.Any()).Return(nil)
	m.driverRepo.EXPECT().ActiveOrder(gomock.Any(), driverID).Return(nil, nil)
	m.gw.EXPECT().PublishLocationUpdate(gomock.Any(), gomock.Any()).Return(assert.AnError)

	err := uc.ProcessFix(context.Background(), validFix(driverID, time.Now()))
	assert.NoError(t, err)
}

func TestGetOrderTrack_Passthrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newLocationUC(ctrl)
	orderID := uuid.New()
	points := []models.TrackPoint{{OrderID: orderID, DriverID: uuid.New()}}

	m.trackRepo.EXPECT().GetOrderTrack(gomock.Any(), orderID).Return(points, nil)

	got, err := uc.GetOrderTrack(context.Background(), orderID)

	require.NoError(t, err)
	assert.Equal(t, points, got)
}
