package constants

// NATS subjects
const (
	// Order lifecycle
	SubjectOrderCreated  = "order.created"
	SubjectOrderSnapshot = "order.snapshot.%s" // Format: order.snapshot.{order_id}

	// Dispatch
	SubjectDriverOffer = "driver.offer.%s" // Format: driver.offer.{driver_id}

	// Location
	SubjectLocationUpdate = "location.update"
)
