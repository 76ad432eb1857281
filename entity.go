package citybike

import "time"

// Bike types.
const (
	BikeClassic  = "classic"
	BikeElectric = "electric"
)

// Bike statuses.
const (
	BikeAvailable   = "available"
	BikeMaintenance = "maintenance"
	BikeRetired     = "retired"
)

// User categories.
const (
	UserCasual = "casual"
	UserMember = "member"
)

// Trip statuses.
const (
	TripCompleted = "completed"
	TripCancelled = "cancelled"
)

// Maintenance event types accepted by the factory.
var MaintenanceTypes = []string{
	"tire_repair",
	"brake_adjustment",
	"battery_replacement",
	"chain_lubrication",
	"general_inspection",
}

// Station is a dock location. Immutable once constructed; trips reference
// stations by ID only.
type Station struct {
	ID       string
	Name     string
	Capacity int
	Lat      float64
	Lon      float64
}

// Bike is one vehicle of the fleet. Status is the only mutable field, it is
// updated while maintenance events are processed.
type Bike struct {
	ID     string
	Type   string
	Status string
}

// User is a rider. The category selects the pricing strategy applied to the
// user's trips.
type User struct {
	ID       string
	Category string
}

// Trip is one rental event from a start station/time to an end station/time
// by one user on one bike. DurationMinutes, DistanceKM, Revenue and Outlier
// start unset and are populated by the compute pass; a Trip is otherwise
// immutable.
type Trip struct {
	ID             string
	UserID         string
	BikeID         string
	StartStationID string
	EndStationID   string
	StartTime      time.Time
	EndTime        time.Time
	Status         string

	DurationMinutes float64
	DistanceKM      float64
	Revenue         float64
	Outlier         bool
}

// MaintenanceRecord is one maintenance event, joined to a Bike by ID for
// the cost rollups.
type MaintenanceRecord struct {
	ID          string
	BikeID      string
	Date        time.Time
	Type        string
	Cost        float64
	Description string
}
