package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qcar/dispatch/internal/pkg/apperrors"
	"github.com/qcar/dispatch/internal/pkg/circuitbreaker"
	"github.com/qcar/dispatch/internal/pkg/logger"
	"github.com/qcar/dispatch/internal/pkg/models"
	"github.com/qcar/dispatch/internal/pkg/observability"
	"github.com/qcar/dispatch/internal/utils"
	"github.com/qcar/dispatch/services/dispatch"
	"github.com/qcar/dispatch/services/orders"
)

// DispatchUC matches pending orders with nearby available drivers. Each
// pending order gets a sequence of offer rounds; a claim must carry the
// current round (or round 0 for a direct grab) and then win the accept
// CAS in the order state machine.
type DispatchUC struct {
	cfg         *models.Config
	driverRepo  dispatch.DriverRepo
	profileRepo dispatch.ProfileRepo
	offerRepo   dispatch.OfferRepo
	gw          dispatch.DispatchGW
	orderUC     orders.OrderUC
	orderRepo   orders.OrderRepo

	// geoBreaker fails candidate lookups fast while Redis is down
	// instead of stalling every offer round and claim.
	geoBreaker *circuitbreaker.CircuitBreaker

	mu      sync.Mutex
	workers map[uuid.UUID]context.CancelFunc
	wg      sync.WaitGroup
}

// NewDispatchUC creates the dispatch coordinator
func NewDispatchUC(
	cfg *models.Config,
	driverRepo dispatch.DriverRepo,
	profileRepo dispatch.ProfileRepo,
	offerRepo dispatch.OfferRepo,
	gw dispatch.DispatchGW,
	orderUC orders.OrderUC,
	orderRepo orders.OrderRepo,
) *DispatchUC {
	return &DispatchUC{
		cfg:         cfg,
		driverRepo:  driverRepo,
		profileRepo: profileRepo,
		offerRepo:   offerRepo,
		gw:          gw,
		orderUC:     orderUC,
		orderRepo:   orderRepo,
		geoBreaker:  circuitbreaker.New(circuitbreaker.DefaultConfig("driver-geo")),
		workers:     make(map[uuid.UUID]context.CancelFunc),
	}
}

// OpenForOffers opens a new offer round for a pending order: find
// available drivers near the pickup, rank them by distance, enrich with
// profile data and publish one offer per candidate stamped with the new
// round. An empty candidate list still bumps the round so stale claims
// from the previous round fail closed.
func (uc *DispatchUC) OpenForOffers(ctx context.Context, order *models.Order) ([]models.NearbyDriver, error) {
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("%w: order %s is %s", apperrors.ErrPreconditionFailed, order.ID, order.Status)
	}

	candidates, err := uc.findCandidates(ctx, order.Pickup.Latitude, order.Pickup.Longitude)
	if err != nil {
		return nil, err
	}

	round, err := uc.offerRepo.BumpRound(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	observability.OfferRoundsTotal.Inc()

	expiresAt := models.Now().Add(uc.offerWindow())
	for _, candidate := range candidates {
		offer := models.OrderOffer{
			OrderID:    order.ID,
			DriverID:   candidate.DriverID,
			Round:      round,
			Pickup:     order.Pickup,
			DistanceKm: candidate.DistanceKm,
			ExpiresAt:  expiresAt,
		}
		if err := uc.gw.PublishOffer(ctx, offer); err != nil {
			logger.Warn("failed to publish offer",
				logger.String("order_id", order.ID.String()),
				logger.String("driver_id", candidate.DriverID.String()),
				logger.Err(err))
			continue
		}
		observability.OffersPublishedTotal.Inc()
	}

	logger.Info("offer round opened",
		logger.String("order_id", order.ID.String()),
		logger.String("pickup_cell", utils.EncodeLocation(
			utils.GeoPoint{Latitude: order.Pickup.Latitude, Longitude: order.Pickup.Longitude}, 6)),
		logger.Int64("round", round),
		logger.Int("candidates", len(candidates)))
	return candidates, nil
}

// AttemptClaim is a driver's attempt to win a pending order. Stale
// rounds are rejected before the state machine is touched; the CAS in
// AcceptOrder decides the race between claims of the same round. Round 0
// marks a direct grab from the pending list and skips the round check.
func (uc *DispatchUC) AttemptClaim(ctx context.Context, orderID, driverID uuid.UUID, round int64) (*models.Order, error) {
	if round != 0 {
		current, err := uc.offerRepo.CurrentRound(ctx, orderID)
		if err != nil {
			observability.ClaimsTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		if round != current {
			observability.ClaimsTotal.WithLabelValues("superseded").Inc()
			return nil, fmt.Errorf("%w: claim round %d, current %d", apperrors.ErrOfferSuperseded, round, current)
		}
	}

	order, err := uc.orderUC.AcceptOrder(ctx, orderID, driverID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrOrderTaken):
			observability.ClaimsTotal.WithLabelValues("lost").Inc()
		case errors.Is(err, apperrors.ErrNotFound):
			observability.ClaimsTotal.WithLabelValues("not_found").Inc()
		default:
			observability.ClaimsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	observability.ClaimsTotal.WithLabelValues("won").Inc()

	// The order is committed to this driver; the bookkeeping below is
	// best effort and self-heals on the next availability write.
	if err := uc.driverRepo.MarkBusy(ctx, driverID, orderID); err != nil {
		logger.Warn("failed to mark winning driver busy",
			logger.String("driver_id", driverID.String()),
			logger.Err(err))
	}
	if err := uc.offerRepo.ClearRound(ctx, orderID); err != nil {
		logger.Warn("failed to clear offer round",
			logger.String("order_id", orderID.String()),
			logger.Err(err))
	}
	uc.stopWorker(orderID)

	logger.Info("claim won",
		logger.String("order_id", orderID.String()),
		logger.String("driver_id", driverID.String()),
		logger.Int64("round", round))
	return order, nil
}

// HandleOrderCancelled stops the re-offer worker and bumps the round so
// any in-flight claim from a previous round fails closed.
func (uc *DispatchUC) HandleOrderCancelled(ctx context.Context, orderID uuid.UUID) error {
	uc.stopWorker(orderID)
	if _, err := uc.offerRepo.BumpRound(ctx, orderID); err != nil {
		return err
	}
	return uc.offerRepo.ClearRound(ctx, orderID)
}

// SetAvailability handles the driver's online/offline toggle. The
// toggle is rejected while the driver is busy on an order; the busy flag
// is owned by the claim and terminal-transition paths.
func (uc *DispatchUC) SetAvailability(ctx context.Context, driverID uuid.UUID, req models.AvailabilityRequest) error {
	activeOrder, err := uc.driverRepo.ActiveOrder(ctx, driverID)
	if err != nil {
		return err
	}
	if activeOrder != nil {
		return fmt.Errorf("%w: driver %s is serving order %s", apperrors.ErrPreconditionFailed, driverID, *activeOrder)
	}

	if !req.Online {
		if err := uc.driverRepo.SetOffline(ctx, driverID); err != nil {
			return err
		}
		observability.DriversOnline.Dec()
		logger.Info("driver offline", logger.String("driver_id", driverID.String()))
		return nil
	}

	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("%w: invalid coordinates", apperrors.ErrInvalidInput)
	}
	if err := uc.driverRepo.SetOnline(ctx, driverID, req.Latitude, req.Longitude); err != nil {
		return err
	}
	observability.DriversOnline.Inc()
	logger.Info("driver online", logger.String("driver_id", driverID.String()))
	return nil
}

// FindNearbyDrivers returns ranked available drivers around a point
func (uc *DispatchUC) FindNearbyDrivers(ctx context.Context, lat, lng float64) ([]models.NearbyDriver, error) {
	return uc.findCandidates(ctx, lat, lng)
}

// pickupCellPrecision is the geohash precision of the coarse pending-
// order prefilter. The cell edge at this precision is roughly 20km, so
// the driver's 3x3 cell neighborhood always covers the search radius.
const pickupCellPrecision = 4

// ListPendingOrdersNearby is the driver pull flow: pending orders whose
// pickup is within the search radius of the driver's last known
// position, longest waiting first.
func (uc *DispatchUC) ListPendingOrdersNearby(ctx context.Context, driverID uuid.UUID) ([]*models.Order, error) {
	avail, err := uc.driverRepo.GetAvailability(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if avail == nil || avail.Status != models.DriverStatusOnline {
		return nil, fmt.Errorf("%w: driver %s is not online", apperrors.ErrPreconditionFailed, driverID)
	}

	pending, err := uc.orderRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	driverPos := utils.GeoPoint{Latitude: avail.Latitude, Longitude: avail.Longitude}
	cell := utils.EncodeLocation(driverPos, pickupCellPrecision)
	neighborhood := map[string]struct{}{cell: {}}
	for _, n := range utils.GetNeighbors(cell) {
		neighborhood[n] = struct{}{}
	}

	radius := uc.cfg.Dispatch.SearchRadiusKm
	nearby := make([]*models.Order, 0, len(pending))
	for _, order := range pending {
		pickup := utils.GeoPoint{Latitude: order.Pickup.Latitude, Longitude: order.Pickup.Longitude}
		// Coarse cell check first; haversine only for pickups inside
		// the driver's neighborhood.
		if _, ok := neighborhood[utils.EncodeLocation(pickup, pickupCellPrecision)]; !ok {
			continue
		}
		if utils.CalculateDistance(driverPos, pickup) <= radius {
			nearby = append(nearby, order)
		}
	}
	return nearby, nil
}

// StartReofferWorker watches a pending order and re-opens offer rounds
// while it stays unclaimed, up to the configured maximum. Idempotent per
// order: a second start for the same order is a no-op.
func (uc *DispatchUC) StartReofferWorker(ctx context.Context, orderID uuid.UUID) {
	uc.mu.Lock()
	if _, running := uc.workers[orderID]; running {
		uc.mu.Unlock()
		return
	}
	workerCtx, cancel := context.WithCancel(context.Background())
	uc.workers[orderID] = cancel
	uc.wg.Add(1)
	uc.mu.Unlock()

	go uc.reofferLoop(workerCtx, orderID)
}

func (uc *DispatchUC) reofferLoop(ctx context.Context, orderID uuid.UUID) {
	defer uc.wg.Done()
	defer uc.stopWorker(orderID)

	window := uc.offerWindow()
	maxRounds := uc.cfg.Dispatch.MaxOfferRounds

	for round := 0; round < maxRounds; round++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(window):
		}

		order, err := uc.orderUC.GetOrder(ctx, orderID)
		if err != nil {
			logger.Warn("reoffer worker failed to load order",
				logger.String("order_id", orderID.String()),
				logger.Err(err))
			return
		}
		if order.Status != models.OrderStatusPending {
			return
		}
		if _, err := uc.OpenForOffers(ctx, order); err != nil {
			logger.Warn("reoffer round failed",
				logger.String("order_id", orderID.String()),
				logger.Err(err))
		}
	}

	logger.Info("order exhausted offer rounds",
		logger.String("order_id", orderID.String()),
		logger.Int("max_rounds", maxRounds))
}

// Stop cancels all re-offer workers and waits for them to exit
func (uc *DispatchUC) Stop() {
	uc.mu.Lock()
	for orderID, cancel := range uc.workers {
		cancel()
		delete(uc.workers, orderID)
	}
	uc.mu.Unlock()
	uc.wg.Wait()
}

func (uc *DispatchUC) stopWorker(orderID uuid.UUID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if cancel, ok := uc.workers[orderID]; ok {
		cancel()
		delete(uc.workers, orderID)
	}
}

func (uc *DispatchUC) findCandidates(ctx context.Context, lat, lng float64) ([]models.NearbyDriver, error) {
	var candidates []models.NearbyDriver
	err := uc.geoBreaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		candidates, err = uc.driverRepo.FindNearby(ctx, lat, lng,
			uc.cfg.Dispatch.SearchRadiusKm, uc.cfg.Dispatch.CandidateLimit)
		return err
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return nil, fmt.Errorf("%w: driver lookup unavailable", apperrors.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.DriverID
	}
	profiles, err := uc.profileRepo.GetProfiles(ctx, ids)
	if err != nil {
		// Ranking survives without profile data.
		logger.Warn("failed to load driver profiles", logger.Err(err))
		return candidates, nil
	}
	for i := range candidates {
		if p, ok := profiles[candidates[i].DriverID]; ok {
			candidates[i].Rating = p.Rating
			candidates[i].TotalOrders = p.TotalOrders
		}
	}
	return candidates, nil
}

func (uc *DispatchUC) offerWindow() time.Duration {
	return time.Duration(uc.cfg.Dispatch.OfferWindowSec) * time.Second
}
