package gateway

import (
	"context"
	"fmt"

	"github.com/qcar/dispatch/internal/pkg/constants"
	"github.com/qcar/dispatch/internal/pkg/models"
	natspkg "github.com/qcar/dispatch/internal/pkg/nats"
	"github.com/qcar/dispatch/internal/pkg/retry"
)

// DispatchGW publishes order offers to candidate drivers over NATS. An
// undelivered offer silently shrinks the candidate pool, so publishes
// are retried with backoff.
type DispatchGW struct {
	producer *natspkg.Producer
	retrier  *retry.Retrier
}

// NewDispatchGW creates the dispatch gateway
func NewDispatchGW(client *natspkg.Client) *DispatchGW {
	return &DispatchGW{
		producer: natspkg.NewProducer(client),
		retrier:  retry.New(retry.DefaultConfig()),
	}
}

// PublishOffer delivers one offer on the candidate driver's subject
func (g *DispatchGW) PublishOffer(ctx context.Context, offer models.OrderOffer) error {
	subject := fmt.Sprintf(constants.SubjectDriverOffer, offer.DriverID)
	return g.retrier.Execute(ctx, func(context.Context) error {
		return g.producer.Publish(subject, offer)
	})
}
