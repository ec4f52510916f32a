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
)

// offerRoundTTL outlives any plausible offer sequence; the key is
// deleted explicitly once the order leaves pending.
const offerRoundTTL = 2 * time.Hour

// OfferRepo tracks the per-order offer round in Redis. INCR gives the
// round a total order, so every bump strictly invalidates all claims
// stamped with earlier rounds.
type OfferRepo struct {
	redis *database.RedisClient
}

// NewOfferRepo creates the offer round repository
func NewOfferRepo(redis *database.RedisClient) *OfferRepo {
	return &OfferRepo{redis: redis}
}

// BumpRound advances the order's offer round and returns the new round
func (r *OfferRepo) BumpRound(ctx context.Context, orderID uuid.UUID) (int64, error) {
	key := fmt.Sprintf(constants.KeyOrderOffer, orderID)
	round, err := r.redis.Incr(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to bump offer round: %v", apperrors.ErrDependencyUnavailable, err)
	}
	if err := r.redis.Expire(ctx, key, offerRoundTTL); err != nil {
		return 0, fmt.Errorf("%w: failed to set offer round ttl: %v", apperrors.ErrDependencyUnavailable, err)
	}
	return round, nil
}

// CurrentRound returns the order's current offer round, 0 when no offer
// round was ever opened
func (r *OfferRepo) CurrentRound(ctx context.Context, orderID uuid.UUID) (int64, error) {
	key := fmt.Sprintf(constants.KeyOrderOffer, orderID)
	val, err := r.redis.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read offer round: %v", apperrors.ErrDependencyUnavailable, err)
	}
	round, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt offer round for order %s: %w", orderID, err)
	}
	return round, nil
}

// ClearRound discards the order's offer round key
func (r *OfferRepo) ClearRound(ctx context.Context, orderID uuid.UUID) error {
	key := fmt.Sprintf(constants.KeyOrderOffer, orderID)
	if err := r.redis.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: failed to clear offer round: %v", apperrors.ErrDependencyUnavailable, err)
	}
	return nil
}
