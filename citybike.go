/*
	Package citybike implements the analytics engine of a municipal bike-share
	operator. It accepts raw tabular records of trips, stations and maintenance
	events, cleans and validates them into domain entities, computes per-trip
	distance, revenue and outlier flags, and answers business queries such as
	peak usage windows, popular routes and maintenance cost rollups.
*/
package citybike

// Record is one raw row of named fields, as supplied by the loader.
type Record map[string]string

// Dataset groups the raw record sets accepted by a System. Bikes and users
// are not separate sets: the trip feed embeds them.
type Dataset struct {
	Stations    []Record
	Trips       []Record
	Maintenance []Record
}

// Kind identifies which entity a raw record describes.
type Kind string

const (
	KindStation     Kind = "station"
	KindBike        Kind = "bike"
	KindUser        Kind = "user"
	KindTrip        Kind = "trip"
	KindMaintenance Kind = "maintenance"
)

// Field names of the raw record sets.
const (
	FieldStationID   = "station_id"
	FieldStationName = "station_name"
	FieldCapacity    = "capacity"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"

	FieldTripID         = "trip_id"
	FieldUserID         = "user_id"
	FieldUserType       = "user_type"
	FieldBikeID         = "bike_id"
	FieldBikeType       = "bike_type"
	FieldBikeStatus     = "bike_status"
	FieldStartStationID = "start_station_id"
	FieldEndStationID   = "end_station_id"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldTripStatus     = "status"

	FieldRecordID        = "record_id"
	FieldDate            = "date"
	FieldMaintenanceType = "maintenance_type"
	FieldCost            = "cost"
	FieldDescription     = "description"
)
