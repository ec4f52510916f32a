package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcar/dispatch/internal/pkg/apperrors"
	"github.com/qcar/dispatch/internal/pkg/fanout"
	"github.com/qcar/dispatch/internal/pkg/models"
	"github.com/qcar/dispatch/services/orders/mocks"
)

func testConfig() *models.Config {
	return &models.Config{}
}

func createRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		PassengerID: uuid.New(),
		OrderType:   models.OrderTypeImmediate,
		ServiceType: models.ServiceTypeStandard,
		Pickup:      models.OrderPoint{Latitude: 39.9042, Longitude: 116.4074, Address: "Chaoyang"},
		Dropoff:     models.OrderPoint{Latitude: 39.9897, Longitude: 116.3353, Address: "Haidian"},

		EstimatedDistanceKm:  12.5,
		EstimatedDurationMin: 35,
		EstimatedPrice:       89.0,
	}
}

func TestCreateOrder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepo(ctrl)
	mockGW := mocks.NewMockOrderGW(ctrl)
	mockAvail := mocks.NewMockAvailabilityRepo(ctrl)
	hub := fanout.NewHub()

	uc := NewOrderUC(testConfig(), mockRepo, mockGW, mockAvail, hub)
	req := createRequest()

	mockRepo.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order *models.Order) error {
			assert.Equal(t, req.PassengerID, order.PassengerID)
			assert.Equal(t, models.OrderStatusPending, order.Status)
			assert.NotEqual(t, uuid.Nil, order.ID)
			assert.Regexp(t, `^QD\d{18}$`, order.OrderNumber)
			return nil
		})
	mockGW.EXPECT().PublishOrderCreated(gomock.Any(), gomock.Any()).Return(nil)
	mockGW.EXPECT().PublishOrderSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	order, err := uc.CreateOrder(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.DriverID)
}

func TestCreateOrder_PublishFailureDoesNotFailCreation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepo(ctrl)
	mockGW := mocks.NewMockOrderGW(ctrl)
	mockAvail := mocks.NewMockAvailabilityRepo(ctrl)

	uc := NewOrderUC(testConfig(), mockRepo, mockGW, mockAvail, fanout.NewHub())

	mockRepo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil)
	mockGW.EXPECT().PublishOrderCreated(gomock.Any(), gomock.Any()).Return(errors.New("nats down"))
	mockGW.EXPECT().PublishOrderSnapshot(gomock.Any(), gomock.Any()).Return(errors.New("nats down"))

	order, err := uc.CreateOrder(context.Background(), createRequest())

	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestCreateOrder_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewOrderUC(testConfig(),
		mocks.NewMockOrderRepo(ctrl),
		mocks.NewMockOrderGW(ctrl),
		mocks.NewMockAvailabilityRepo(ctrl),
		fanout.NewHub())

	cases := []struct {
		name   string
		mutate func(*models.CreateOrderRequest)
	}{
		{"missing passenger", func(r *models.CreateOrderRequest) { r.PassengerID = uuid.Nil }},
		{"zero pickup", func(r *models.CreateOrderRequest) { r.Pickup = models.OrderPoint{} }},
		{"latitude out of range", func(r *models.CreateOrderRequest) { r.Dropoff.Latitude = 91 }},
		{"unknown order type", func(r *models.CreateOrderRequest) { r.OrderType = "teleport" }},
		{"unknown service type", func(r *models.CreateOrderRequest) { r.ServiceType = "luxury" }},
		{"scheduled without time", func(r *models.CreateOrderRequest) { r.OrderType = models.OrderTypeScheduled }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := createRequest()
			tc.mutate(&req)

			_, err := uc.CreateOrder(context.Background(), req)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestAcceptOrder_PublishesSnapshotToHub(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepo(ctrl)
	mockGW := mocks.NewMockOrderGW(ctrl)
	hub := fanout.NewHub()

	uc := NewOrderUC(testConfig(), mockRepo, mockGW, mocks.NewMockAvailabilityRepo(ctrl), hub)

	orderID := uuid.New()
	driverID := uuid.New()
	accepted := &models.Order{
		ID:        orderID,
		DriverID:  &driverID,
		Status:    models.OrderStatusAccepted,
		UpdatedAt: models.Now(),
	}

	sub := hub.Subscribe(orderID)
	defer sub.Close()

	mockRepo.EXPECT().AcceptOrder(gomock.Any(), orderID, driverID).Return(accepted, nil)
	mockGW.EXPECT().PublishOrderSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	order, err := uc.AcceptOrder(context.Background(), orderID, driverID)

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, order.Status)

	select {
	case got := <-sub.C:
		assert.Equal(t, models.OrderStatusAccepted, got.Order.Status)
	case <-time.After(time.Second):
		t.Fatal("hub subscriber did not receive the accepted snapshot")
	}
}

func TestAcceptOrder_RepoErrorPassedThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepo(ctrl)
	uc := NewOrderUC(testConfig(), mockRepo,
		mocks.NewMockOrderGW(ctrl),
		mocks.NewMockAvailabilityRepo(ctrl),
		fanout.NewHub())

	orderID := uuid.New()
	mockRepo.EXPECT().
		AcceptOrder(gomock.Any(), orderID, gomock.Any()).
		Return(nil, apperrors.ErrOrderTaken)

	_, err := uc.AcceptOrder(context.Background(), orderID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrOrderTaken)
}

func TestCompleteOrder_ClearsDriverBusy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepo(ctrl)
	mockGW := mocks.NewMockOrderGW(ctrl)
	mockAvail := mocks.NewMockAvailabilityRepo(ctrl)

	uc := NewOrderUC(testConfig(), mockRepo, mockGW, mockAvail, fanout.NewHub())

	orderID := uuid.New()
	driverID := uuid.New()
	req := models.CompleteOrderRequest{FinalPrice: 95.5, ActualDistanceKm: 13.1, ActualDurationMin: 41}
	completed := &models.Order{
		ID:       orderID,
		DriverID: &driverID,
		Status:   models.OrderStatusCompleted,
	}

	mockRepo.EXPECT().CompleteOrder(gomock.Any(), orderID, driverID, req).Return(completed, nil)
	mockAvail.EXPECT().ClearBusy(gomock.Any(), driverID).Return(nil)
	mockGW.EXPECT().PublishOrderSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	order, err := uc.CompleteOrder(context.Background(), orderID, driverID, req)

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
}

func TestCompleteOrder_NegativeActualsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewOrderUC(testConfig(),
		mocks.NewMockOrderRepo(ctrl),
		mocks.NewMockOrderGW(ctrl),
		mocks.NewMockAvailabilityRepo(ctrl),
		fanout.NewHub())

	_, err := uc.CompleteOrder(context.Background(), uuid.New(), uuid.New(),
		models.CompleteOrderRequest{FinalPrice: -1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCancelOrder_ByPassenger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepo(ctrl)
	mockGW := mocks.NewMockOrderGW(ctrl)
	mockAvail := mocks.NewMockAvailabilityRepo(ctrl)

	uc := NewOrderUC(testConfig(), mockRepo, mockGW, mockAvail, fanout.NewHub())

	orderID := uuid.New()
	passengerID := uuid.New()
	driverID := uuid.New()
	current := &models.Order{
		ID:          orderID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.OrderStatusAccepted,
	}
	cancelled := &models.Order{
		ID:          orderID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.OrderStatusCancelled,
	}

	mockRepo.EXPECT().GetOrder(gomock.Any(), orderID).Return(current, nil)
	mockRepo.EXPECT().CancelOrder(gomock.Any(), orderID, passengerID, "changed plans").Return(cancelled, nil)
	mockAvail.EXPECT().ClearBusy(gomock.Any(), driverID).Return(nil)
	mockGW.EXPECT().PublishOrderSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	order, err := uc.CancelOrder(context.Background(), orderID, passengerID, "changed plans")

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
}

func TestCancelOrder_StrangerRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepo(ctrl)
	uc := NewOrderUC(testConfig(), mockRepo,
		mocks.NewMockOrderGW(ctrl),
		mocks.NewMockAvailabilityRepo(ctrl),
		fanout.NewHub())

	orderID := uuid.New()
	mockRepo.EXPECT().GetOrder(gomock.Any(), orderID).Return(&models.Order{
		ID:          orderID,
		PassengerID: uuid.New(),
		Status:      models.OrderStatusPending,
	}, nil)

	_, err := uc.CancelOrder(context.Background(), orderID, uuid.New(), "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestCancelOrder_InProgressRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepo(ctrl)
	uc := NewOrderUC(testConfig(), mockRepo,
		mocks.NewMockOrderGW(ctrl),
		mocks.NewMockAvailabilityRepo(ctrl),
		fanout.NewHub())

	orderID := uuid.New()
	passengerID := uuid.New()
	mockRepo.EXPECT().GetOrder(gomock.Any(), orderID).Return(&models.Order{
		ID:          orderID,
		PassengerID: passengerID,
		Status:      models.OrderStatusInProgress,
	}, nil)

	_, err := uc.CancelOrder(context.Background(), orderID, passengerID, "")
	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}

func TestListOrders_RoleScoped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepo(ctrl)
	uc := NewOrderUC(testConfig(), mockRepo,
		mocks.NewMockOrderGW(ctrl),
		mocks.NewMockAvailabilityRepo(ctrl),
		fanout.NewHub())

	callerID := uuid.New()

	mockRepo.EXPECT().ListByDriver(gomock.Any(), callerID, nil).Return([]*models.Order{}, nil)
	_, err := uc.ListOrders(context.Background(), callerID, "driver", nil)
	require.NoError(t, err)

	mockRepo.EXPECT().ListByPassenger(gomock.Any(), callerID, nil).Return([]*models.Order{}, nil)
	_, err = uc.ListOrders(context.Background(), callerID, "passenger", nil)
	require.NoError(t, err)
}

// raceOrderRepo is an in-memory OrderRepo whose transitions take a
// mutex, mirroring the linearization the real conditional updates
// provide. It backs the concurrency properties below.
type raceOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*models.Order
}

func newRaceOrderRepo() *raceOrderRepo {
	return &raceOrderRepo{orders: make(map[uuid.UUID]*models.Order)}
}

func (r *raceOrderRepo) CreateOrder(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *raceOrderRepo) GetOrder(_ context.Context, orderID uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (r *raceOrderRepo) AcceptOrder(_ context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperrors.ErrOrderTaken
	}
	now := models.Now()
	order.DriverID = &driverID
	order.Status = models.OrderStatusAccepted
	order.AcceptedAt = &now
	order.UpdatedAt = now
	cp := *order
	return &cp, nil
}

func (r *raceOrderRepo) transition(orderID, driverID uuid.UUID, from, to models.OrderStatus) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if order.DriverID == nil || *order.DriverID != driverID {
		return nil, apperrors.ErrUnauthorized
	}
	if order.Status != from {
		return nil, fmt.Errorf("%w: order is %s", apperrors.ErrPreconditionFailed, order.Status)
	}
	order.Status = to
	order.UpdatedAt = models.Now()
	cp := *order
	return &cp, nil
}

func (r *raceOrderRepo) MarkArrived(_ context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	return r.transition(orderID, driverID, models.OrderStatusAccepted, models.OrderStatusDriverArrived)
}

func (r *raceOrderRepo) StartTrip(_ context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	return r.transition(orderID, driverID, models.OrderStatusDriverArrived, models.OrderStatusInProgress)
}

func (r *raceOrderRepo) CompleteOrder(_ context.Context, orderID, driverID uuid.UUID, req models.CompleteOrderRequest) (*models.Order, error) {
	if _, err := r.transition(orderID, driverID, models.OrderStatusInProgress, models.OrderStatusCompleted); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.orders[orderID]
	stored.FinalPrice = &req.FinalPrice
	stored.ActualDistanceKm = &req.ActualDistanceKm
	stored.ActualDurationMin = &req.ActualDurationMin
	cp := *stored
	return &cp, nil
}

func (r *raceOrderRepo) CancelOrder(_ context.Context, orderID, cancelledBy uuid.UUID, reason string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusAccepted {
		return nil, fmt.Errorf("%w: order is %s", apperrors.ErrPreconditionFailed, order.Status)
	}
	now := models.Now()
	order.Status = models.OrderStatusCancelled
	order.CancelledBy = &cancelledBy
	order.CancelReason = reason
	order.CancelledAt = &now
	order.UpdatedAt = now
	cp := *order
	return &cp, nil
}

func (r *raceOrderRepo) ListByPassenger(context.Context, uuid.UUID, *models.OrderStatus) ([]*models.Order, error) {
	return nil, nil
}

func (r *raceOrderRepo) ListByDriver(context.Context, uuid.UUID, *models.OrderStatus) ([]*models.Order, error) {
	return nil, nil
}

func (r *raceOrderRepo) ListPending(context.Context) ([]*models.Order, error) {
	return nil, nil
}

type nopGateway struct{}

func (nopGateway) PublishOrderCreated(context.Context, *models.Order) error         { return nil }
func (nopGateway) PublishOrderSnapshot(context.Context, models.OrderSnapshot) error { return nil }

type nopAvailability struct{}

func (nopAvailability) ClearBusy(context.Context, uuid.UUID) error { return nil }

func TestAcceptOrder_ConcurrentClaimsExactlyOneWinner(t *testing.T) {
	repo := newRaceOrderRepo()
	uc := NewOrderUC(testConfig(), repo, nopGateway{}, nopAvailability{}, fanout.NewHub())

	order, err := uc.CreateOrder(context.Background(), createRequest())
	require.NoError(t, err)

	const drivers = 20
	var wg sync.WaitGroup
	var winners int32
	var winnersMu sync.Mutex
	var winnerIDs []uuid.UUID

	for i := 0; i < drivers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			driverID := uuid.New()
			_, err := uc.AcceptOrder(context.Background(), order.ID, driverID)
			if err == nil {
				winnersMu.Lock()
				winners++
				winnerIDs = append(winnerIDs, driverID)
				winnersMu.Unlock()
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrOrderTaken)
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, winners, "exactly one claim must win")

	final, err := uc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, final.Status)
	require.NotNil(t, final.DriverID)
	assert.Equal(t, winnerIDs[0], *final.DriverID)
}

func TestAcceptOrder_LoserClaimsNextOrder(t *testing.T) {
	repo := newRaceOrderRepo()
	uc := NewOrderUC(testConfig(), repo, nopGateway{}, nopAvailability{}, fanout.NewHub())
	ctx := context.Background()

	first, err := uc.CreateOrder(ctx, createRequest())
	require.NoError(t, err)

	winner := uuid.New()
	loser := uuid.New()

	_, err = uc.AcceptOrder(ctx, first.ID, winner)
	require.NoError(t, err)
	_, err = uc.AcceptOrder(ctx, first.ID, loser)
	require.ErrorIs(t, err, apperrors.ErrOrderTaken)

	// Losing the race does not taint the driver: the next order is fair
	// game.
	second, err := uc.CreateOrder(ctx, createRequest())
	require.NoError(t, err)

	accepted, err := uc.AcceptOrder(ctx, second.ID, loser)
	require.NoError(t, err)
	require.NotNil(t, accepted.DriverID)
	assert.Equal(t, loser, *accepted.DriverID)
}

func TestOrderLifecycle_NoResurrectionAndMonotonicTimestamps(t *testing.T) {
	repo := newRaceOrderRepo()
	uc := NewOrderUC(testConfig(), repo, nopGateway{}, nopAvailability{}, fanout.NewHub())
	ctx := context.Background()

	order, err := uc.CreateOrder(ctx, createRequest())
	require.NoError(t, err)
	driverID := uuid.New()

	updatedAts := []time.Time{order.UpdatedAt}
	step := func(o *models.Order, err error) *models.Order {
		t.Helper()
		require.NoError(t, err)
		assert.False(t, o.UpdatedAt.Before(updatedAts[len(updatedAts)-1]),
			"updated_at must never move backwards")
		updatedAts = append(updatedAts, o.UpdatedAt)
		return o
	}

	step(uc.AcceptOrder(ctx, order.ID, driverID))
	step(uc.MarkArrived(ctx, order.ID, driverID))
	step(uc.StartTrip(ctx, order.ID, driverID))
	final := step(uc.CompleteOrder(ctx, order.ID, driverID,
		models.CompleteOrderRequest{FinalPrice: 80, ActualDistanceKm: 11, ActualDurationMin: 30}))
	assert.Equal(t, models.OrderStatusCompleted, final.Status)

	// A completed order is terminal: no transition resurrects it.
	_, err = uc.AcceptOrder(ctx, order.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrOrderTaken)
	_, err = uc.CancelOrder(ctx, order.ID, order.PassengerID, "late cancel")
	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
	_, err = uc.StartTrip(ctx, order.ID, driverID)
	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)

	got, err := uc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)
}

func TestTransitions_SkippingStatesRejected(t *testing.T) {
	repo := newRaceOrderRepo()
	uc := NewOrderUC(testConfig(), repo, nopGateway{}, nopAvailability{}, fanout.NewHub())
	ctx := context.Background()

	order, err := uc.CreateOrder(ctx, createRequest())
	require.NoError(t, err)
	driverID := uuid.New()

	// pending -> in_progress is not a legal edge.
	_, err = uc.StartTrip(ctx, order.ID, driverID)
	assert.Error(t, err)

	_, err = uc.AcceptOrder(ctx, order.ID, driverID)
	require.NoError(t, err)

	// accepted -> completed skips driver_arrived and in_progress.
	_, err = uc.CompleteOrder(ctx, order.ID, driverID,
		models.CompleteOrderRequest{FinalPrice: 10})
	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}
