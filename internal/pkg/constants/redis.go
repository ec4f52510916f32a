package constants

// Redis key formats
const (
	KeyDriverStatus   = "driver:status:%s" // Format: driver:status:{driver_id}
	KeyDriverGeo      = "drivers:geo"      // GEO set of available (online, not busy) drivers
	KeyOrderOffer     = "order:offer:%s"   // Format: order:offer:{order_id}, current offer round
	KeyDriverActiveOn = "driver:order:%s"  // Format: driver:order:{driver_id}, active order id
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldTimestamp = "ts"
	FieldStatus    = "status"
)
