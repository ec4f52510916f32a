package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcar/dispatch/internal/pkg/apperrors"
	"github.com/qcar/dispatch/internal/pkg/models"
	dispatchmocks "github.com/qcar/dispatch/services/dispatch/mocks"
	ordermocks "github.com/qcar/dispatch/services/orders/mocks"
)

type dispatchMocks struct {
	driverRepo  *dispatchmocks.MockDriverRepo
	profileRepo *dispatchmocks.MockProfileRepo
	offerRepo   *dispatchmocks.MockOfferRepo
	gw          *dispatchmocks.MockDispatchGW
	orderUC     *ordermocks.MockOrderUC
	orderRepo   *ordermocks.MockOrderRepo
}

func newDispatchUC(ctrl *gomock.Controller) (*DispatchUC, dispatchMocks) {
	m := dispatchMocks{
		driverRepo:  dispatchmocks.NewMockDriverRepo(ctrl),
		profileRepo: dispatchmocks.NewMockProfileRepo(ctrl),
		offerRepo:   dispatchmocks.NewMockOfferRepo(ctrl),
		gw:          dispatchmocks.NewMockDispatchGW(ctrl),
		orderUC:     ordermocks.NewMockOrderUC(ctrl),
		orderRepo:   ordermocks.NewMockOrderRepo(ctrl),
	}
	cfg := &models.Config{
		Dispatch: models.DispatchConfig{
			SearchRadiusKm: 5,
			CandidateLimit: 10,
			OfferWindowSec: 30,
			MaxOfferRounds: 3,
		},
	}
	uc := NewDispatchUC(cfg, m.driverRepo, m.profileRepo, m.offerRepo, m.gw, m.orderUC, m.orderRepo)
	return uc, m
}

func pendingOrder() *models.Order {
	return &models.Order{
		ID:          uuid.New(),
		PassengerID: uuid.New(),
		Status:      models.OrderStatusPending,
		Pickup:      models.OrderPoint{Latitude: 39.9042, Longitude: 116.4074},
	}
}

func TestOpenForOffers_PublishesPerCandidateWithRound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	order := pendingOrder()

	driverA := uuid.New()
	driverB := uuid.New()
	candidates := []models.NearbyDriver{
		{DriverID: driverA, DistanceKm: 0.8},
		{DriverID: driverB, DistanceKm: 2.3},
	}

	m.driverRepo.EXPECT().
		FindNearby(gomock.Any(), order.Pickup.Latitude, order.Pickup.Longitude, 5.0, 10).
		Return(candidates, nil)
	m.profileRepo.EXPECT().
		GetProfiles(gomock.Any(), []uuid.UUID{driverA, driverB}).
		Return(map[uuid.UUID]models.DriverProfile{
			driverA: {DriverID: driverA, Rating: 4.9, TotalOrders: 312},
		}, nil)
	m.offerRepo.EXPECT().BumpRound(gomock.Any(), order.ID).Return(int64(3), nil)

	var published []models.OrderOffer
	m.gw.EXPECT().
		PublishOffer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, offer models.OrderOffer) error {
			published = append(published, offer)
			return nil
		}).
		Times(2)

	got, err := uc.OpenForOffers(context.Background(), order)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4.9, got[0].Rating)
	assert.Equal(t, 0.0, got[1].Rating)

	require.Len(t, published, 2)
	for _, offer := range published {
		assert.Equal(t, order.ID, offer.OrderID)
		assert.Equal(t, int64(3), offer.Round)
		assert.False(t, offer.ExpiresAt.IsZero())
	}
}

func TestOpenForOffers_NonPendingRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _ := newDispatchUC(ctrl)
	order := pendingOrder()
	order.Status = models.OrderStatusAccepted

	_, err := uc.OpenForOffers(context.Background(), order)
	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}

func TestOpenForOffers_NoCandidatesStillBumpsRound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	order := pendingOrder()

	m.driverRepo.EXPECT().
		FindNearby(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.NearbyDriver{}, nil)
	m.offerRepo.EXPECT().BumpRound(gomock.Any(), order.ID).Return(int64(1), nil)

	got, err := uc.OpenForOffers(context.Background(), order)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAttemptClaim_StaleRoundSuperseded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	orderID := uuid.New()

	m.offerRepo.EXPECT().CurrentRound(gomock.Any(), orderID).Return(int64(4), nil)

	_, err := uc.AttemptClaim(context.Background(), orderID, uuid.New(), 3)
	assert.ErrorIs(t, err, apperrors.ErrOfferSuperseded)
}

func TestAttemptClaim_WonMarksBusyAndClearsRound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	orderID := uuid.New()
	driverID := uuid.New()
	accepted := &models.Order{ID: orderID, DriverID: &driverID, Status: models.OrderStatusAccepted}

	m.offerRepo.EXPECT().CurrentRound(gomock.Any(), orderID).Return(int64(2), nil)
	m.orderUC.EXPECT().AcceptOrder(gomock.Any(), orderID, driverID).Return(accepted, nil)
	m.driverRepo.EXPECT().MarkBusy(gomock.Any(), driverID, orderID).Return(nil)
	m.offerRepo.EXPECT().ClearRound(gomock.Any(), orderID).Return(nil)

	order, err := uc.AttemptClaim(context.Background(), orderID, driverID, 2)

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, order.Status)
}

func TestAttemptClaim_LostRacePassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	orderID := uuid.New()
	driverID := uuid.New()

	m.offerRepo.EXPECT().CurrentRound(gomock.Any(), orderID).Return(int64(1), nil)
	m.orderUC.EXPECT().AcceptOrder(gomock.Any(), orderID, driverID).Return(nil, apperrors.ErrOrderTaken)

	_, err := uc.AttemptClaim(context.Background(), orderID, driverID, 1)
	assert.ErrorIs(t, err, apperrors.ErrOrderTaken)
}

func TestAttemptClaim_DirectGrabSkipsRoundCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	orderID := uuid.New()
	driverID := uuid.New()
	accepted := &models.Order{ID: orderID, DriverID: &driverID, Status: models.OrderStatusAccepted}

	// No CurrentRound expectation: round 0 goes straight to the CAS.
	m.orderUC.EXPECT().AcceptOrder(gomock.Any(), orderID, driverID).Return(accepted, nil)
	m.driverRepo.EXPECT().MarkBusy(gomock.Any(), driverID, orderID).Return(nil)
	m.offerRepo.EXPECT().ClearRound(gomock.Any(), orderID).Return(nil)

	_, err := uc.AttemptClaim(context.Background(), orderID, driverID, 0)
	assert.NoError(t, err)
}

func TestHandleOrderCancelled_InvalidatesOutstandingOffers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	orderID := uuid.New()

	m.offerRepo.EXPECT().BumpRound(gomock.Any(), orderID).Return(int64(5), nil)
	m.offerRepo.EXPECT().ClearRound(gomock.Any(), orderID).Return(nil)

	err := uc.HandleOrderCancelled(context.Background(), orderID)
	assert.NoError(t, err)
}

func TestSetAvailability_BusyDriverRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	driverID := uuid.New()
	activeOrder := uuid.New()

	m.driverRepo.EXPECT().ActiveOrder(gomock.Any(), driverID).Return(&activeOrder, nil)

	err := uc.SetAvailability(context.Background(), driverID, models.AvailabilityRequest{Online: false})
	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}

func TestSetAvailability_Online(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	driverID := uuid.New()

	m.driverRepo.EXPECT().ActiveOrder(gomock.Any(), driverID).Return(nil, nil)
	m.driverRepo.EXPECT().SetOnline(gomock.Any(), driverID, 39.9, 116.4).Return(nil)

	err := uc.SetAvailability(context.Background(), driverID,
		models.AvailabilityRequest{Online: true, Latitude: 39.9, Longitude: 116.4})
	assert.NoError(t, err)
}

func TestSetAvailability_InvalidCoordinates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	driverID := uuid.New()

	m.driverRepo.EXPECT().ActiveOrder(gomock.Any(), driverID).Return(nil, nil)

	err := uc.SetAvailability(context.Background(), driverID,
		models.AvailabilityRequest{Online: true, Latitude: 95, Longitude: 116.4})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSetAvailability_Offline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	driverID := uuid.New()

	m.driverRepo.EXPECT().ActiveOrder(gomock.Any(), driverID).Return(nil, nil)
	m.driverRepo.EXPECT().SetOffline(gomock.Any(), driverID).Return(nil)

	err := uc.SetAvailability(context.Background(), driverID, models.AvailabilityRequest{Online: false})
	assert.NoError(t, err)
}

func TestListPendingOrdersNearby_RadiusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	driverID := uuid.New()

	m.driverRepo.EXPECT().GetAvailability(gomock.Any(), driverID).Return(&models.DriverAvailability{
		DriverID:  driverID,
		Status:    models.DriverStatusOnline,
		Latitude:  39.9042,
		Longitude: 116.4074,
	}, nil)

	near := pendingOrder() // pickup at the driver's position
	far := pendingOrder()
	far.Pickup = models.OrderPoint{Latitude: 31.2304, Longitude: 121.4737} // Shanghai

	m.orderRepo.EXPECT().ListPending(gomock.Any()).Return([]*models.Order{near, far}, nil)

	orders, err := uc.ListPendingOrdersNearby(context.Background(), driverID)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, near.ID, orders[0].ID)
}

func TestListPendingOrdersNearby_CellBoundaryDoesNotHideOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	driverID := uuid.New()

	// The driver sits just south of a coarse-cell latitude boundary, so
	// a pickup a few hundred meters north lands in the neighboring cell.
	m.driverRepo.EXPECT().GetAvailability(gomock.Any(), driverID).Return(&models.DriverAvailability{
		DriverID:  driverID,
		Status:    models.DriverStatusOnline,
		Latitude:  40.0780,
		Longitude: 116.4074,
	}, nil)

	acrossBoundary := pendingOrder()
	acrossBoundary.Pickup = models.OrderPoint{Latitude: 40.0790, Longitude: 116.4074}

	sameCellTooFar := pendingOrder()
	sameCellTooFar.Pickup = models.OrderPoint{Latitude: 40.0780, Longitude: 116.4774}

	m.orderRepo.EXPECT().ListPending(gomock.Any()).Return([]*models.Order{acrossBoundary, sameCellTooFar}, nil)

	orders, err := uc.ListPendingOrdersNearby(context.Background(), driverID)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, acrossBoundary.ID, orders[0].ID)
}

func TestListPendingOrdersNearby_OfflineDriverRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newDispatchUC(ctrl)
	driverID := uuid.New()

	m.driverRepo.EXPECT().GetAvailability(gomock.Any(), driverID).Return(nil, nil)

	_, err := uc.ListPendingOrdersNearby(context.Background(), driverID)
	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}

func TestStartReofferWorker_IdempotentAndStoppable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _ := newDispatchUC(ctrl)
	orderID := uuid.New()

	uc.StartReofferWorker(context.Background(), orderID)
	uc.StartReofferWorker(context.Background(), orderID)

	uc.mu.Lock()
	assert.Len(t, uc.workers, 1)
	uc.mu.Unlock()

	// Stop must cancel the worker before its first window elapses, so no
	// order lookup ever fires.
	uc.Stop()

	uc.mu.Lock()
	assert.Empty(t, uc.workers)
	uc.mu.Unlock()
}
