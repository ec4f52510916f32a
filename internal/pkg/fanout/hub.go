// Package fanout delivers committed order snapshots to in-process
// subscribers. Delivery is at-least-once per subscription; snapshots
// are full-state replacements, so subscribers apply them with
// ApplySnapshot and redelivery is harmless.
package fanout

import (
	"sync"

	"github.com/google/uuid"
	"github.com/qcar/dispatch/internal/pkg/models"
	"github.com/qcar/dispatch/internal/pkg/observability"
)

// DefaultBufferSize is the per-subscription channel capacity. When a
// subscriber falls behind, the oldest buffered snapshot is dropped so a
// slow consumer can never stall a publisher.
const DefaultBufferSize = 16

// Subscription is one subscriber's snapshot stream
type Subscription struct {
	C <-chan models.OrderSnapshot

	hub     *Hub
	orderID uuid.UUID
	ch      chan models.OrderSnapshot
	once    sync.Once
}

// Close stops delivery and releases the subscription's resources. It
// does not affect the underlying order.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.ch)
	})
}

// Hub is the per-order snapshot fan-out registry
type Hub struct {
	mu         sync.RWMutex
	subs       map[uuid.UUID]map[*Subscription]struct{}
	bufferSize int
}

// NewHub creates a fan-out hub
func NewHub() *Hub {
	return &Hub{
		subs:       make(map[uuid.UUID]map[*Subscription]struct{}),
		bufferSize: DefaultBufferSize,
	}
}

// Subscribe registers a new subscriber for an order's snapshots
func (h *Hub) Subscribe(orderID uuid.UUID) *Subscription {
	sub := &Subscription{
		hub:     h,
		orderID: orderID,
		ch:      make(chan models.OrderSnapshot, h.bufferSize),
	}
	sub.C = sub.ch

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[orderID] == nil {
		h.subs[orderID] = make(map[*Subscription]struct{})
	}
	h.subs[orderID][sub] = struct{}{}
	return sub
}

// Publish delivers a snapshot to every subscriber of the order. A full
// subscriber buffer drops its oldest snapshot; publishing never blocks
// and a failing subscriber cannot affect delivery to others.
func (h *Hub) Publish(snapshot models.OrderSnapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[snapshot.Order.ID] {
		for {
			select {
			case sub.ch <- snapshot:
			default:
				select {
				case <-sub.ch:
					observability.SnapshotsDroppedTotal.Inc()
				default:
				}
				continue
			}
			break
		}
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sub.orderID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.orderID)
		}
	}
}

// SubscriberCount reports the number of active subscriptions for an order
func (h *Hub) SubscriberCount(orderID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[orderID])
}

// ApplySnapshot merges an incoming snapshot into the locally held state:
// the incoming one wins only if strictly newer. Applying a duplicate or
// out-of-order redelivery leaves current unchanged.
func ApplySnapshot(current *models.OrderSnapshot, incoming models.OrderSnapshot) models.OrderSnapshot {
	if current == nil {
		return incoming
	}
	if incoming.UpdatedAt.After(current.UpdatedAt) {
		return incoming
	}
	return *current
}
