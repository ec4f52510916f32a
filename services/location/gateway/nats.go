package gateway

import (
	"context"

	"github.com/qcar/dispatch/internal/pkg/constants"
	"github.com/qcar/dispatch/internal/pkg/models"
	natspkg "github.com/qcar/dispatch/internal/pkg/nats"
)

// LocationGW publishes accepted location updates over NATS
type LocationGW struct {
	producer *natspkg.Producer
}

// NewLocationGW creates the location gateway
func NewLocationGW(client *natspkg.Client) *LocationGW {
	return &LocationGW{producer: natspkg.NewProducer(client)}
}

// PublishLocationUpdate broadcasts one accepted fix
func (g *LocationGW) PublishLocationUpdate(_ context.Context, update models.LocationUpdate) error {
	return g.producer.Publish(constants.SubjectLocationUpdate, update)
}
