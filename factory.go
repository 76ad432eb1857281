package citybike

import (
	"fmt"
	"strings"

	"github.com/rowaidaawad07-sudo/citybike-project/internal/validate"
)

// builderFunc turns one defaulted record into an entity.
type builderFunc func(rec Record) (interface{}, error)

// kindSpec describes how records of one entity kind are validated and
// defaulted. Adding an entity kind means adding one table entry.
type kindSpec struct {
	required []string
	defaults map[string]string
	build    builderFunc
}

// Factory constructs domain entities from raw records. Which validators and
// defaults apply is driven by a kind lookup table, not by per-call-site
// branching.
type Factory struct {
	kinds map[Kind]kindSpec
}

func NewFactory() *Factory {
	return &Factory{kinds: map[Kind]kindSpec{
		KindStation: {
			required: []string{FieldStationID, FieldCapacity, FieldLatitude, FieldLongitude},
			build:    buildStation,
		},
		KindBike: {
			required: []string{FieldBikeID},
			defaults: map[string]string{
				FieldBikeType:   BikeClassic,
				FieldBikeStatus: BikeAvailable,
			},
			build: buildBike,
		},
		KindUser: {
			required: []string{FieldUserID, FieldUserType},
			build:    buildUser,
		},
		KindTrip: {
			required: []string{
				FieldTripID, FieldUserID, FieldBikeID,
				FieldStartStationID, FieldEndStationID,
				FieldStartTime, FieldEndTime,
			},
			defaults: map[string]string{FieldTripStatus: TripCompleted},
			build:    buildTrip,
		},
		KindMaintenance: {
			required: []string{FieldRecordID, FieldBikeID, FieldDate, FieldMaintenanceType, FieldCost},
			defaults: map[string]string{FieldDescription: ""},
			build:    buildMaintenance,
		},
	}}
}

// Required returns the required field names of a kind.
func (f *Factory) Required(kind Kind) ([]string, error) {
	spec, ok := f.kinds[kind]
	if !ok {
		return nil, &ConfigurationError{Key: "kind", Reason: fmt.Sprintf("unknown entity kind %q", kind)}
	}
	return spec.required, nil
}

// Create validates rec, applies the kind's defaulting policy, and builds the
// entity. A missing required field or a field failing validation yields a
// *ValidationError, so the caller can reject the record and continue over
// the rest of the dataset.
func (f *Factory) Create(rec Record, kind Kind) (interface{}, error) {
	spec, ok := f.kinds[kind]
	if !ok {
		return nil, &ConfigurationError{Key: "kind", Reason: fmt.Sprintf("unknown entity kind %q", kind)}
	}

	for _, field := range spec.required {
		if strings.TrimSpace(rec[field]) == "" {
			return nil, &ValidationError{Field: field, Value: rec[field], Reason: "required field is missing"}
		}
	}

	if len(spec.defaults) > 0 {
		filled := make(Record, len(rec)+len(spec.defaults))
		for k, v := range rec {
			filled[k] = v
		}
		for k, v := range spec.defaults {
			if strings.TrimSpace(filled[k]) == "" {
				filled[k] = v
			}
		}
		rec = filled
	}

	return spec.build(rec)
}

func buildStation(rec Record) (interface{}, error) {
	id, err := validate.ID(FieldStationID, rec[FieldStationID])
	if err != nil {
		return nil, err
	}
	capacity, err := validate.PositiveInt(FieldCapacity, rec[FieldCapacity])
	if err != nil {
		return nil, err
	}
	lat, err := validate.Latitude(FieldLatitude, rec[FieldLatitude])
	if err != nil {
		return nil, err
	}
	lon, err := validate.Longitude(FieldLongitude, rec[FieldLongitude])
	if err != nil {
		return nil, err
	}

	return &Station{
		ID:       id,
		Name:     strings.TrimSpace(rec[FieldStationName]),
		Capacity: capacity,
		Lat:      lat,
		Lon:      lon,
	}, nil
}

func buildBike(rec Record) (interface{}, error) {
	id, err := validate.ID(FieldBikeID, rec[FieldBikeID])
	if err != nil {
		return nil, err
	}
	typ, err := validate.OneOf(FieldBikeType, rec[FieldBikeType], BikeClassic, BikeElectric)
	if err != nil {
		return nil, err
	}
	status, err := validate.OneOf(FieldBikeStatus, rec[FieldBikeStatus], BikeAvailable, BikeMaintenance, BikeRetired)
	if err != nil {
		return nil, err
	}

	return &Bike{ID: id, Type: typ, Status: status}, nil
}

func buildUser(rec Record) (interface{}, error) {
	id, err := validate.ID(FieldUserID, rec[FieldUserID])
	if err != nil {
		return nil, err
	}
	category, err := validate.OneOf(FieldUserType, rec[FieldUserType], UserCasual, UserMember)
	if err != nil {
		return nil, err
	}

	return &User{ID: id, Category: category}, nil
}

func buildTrip(rec Record) (interface{}, error) {
	id, err := validate.ID(FieldTripID, rec[FieldTripID])
	if err != nil {
		return nil, err
	}
	start, err := validate.Timestamp(FieldStartTime, rec[FieldStartTime])
	if err != nil {
		return nil, err
	}
	end, err := validate.Timestamp(FieldEndTime, rec[FieldEndTime])
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, &ValidationError{Field: FieldEndTime, Value: rec[FieldEndTime], Reason: "end time precedes start time"}
	}
	status, err := validate.OneOf(FieldTripStatus, rec[FieldTripStatus], TripCompleted, TripCancelled)
	if err != nil {
		return nil, err
	}

	return &Trip{
		ID:             id,
		UserID:         strings.TrimSpace(rec[FieldUserID]),
		BikeID:         strings.TrimSpace(rec[FieldBikeID]),
		StartStationID: strings.TrimSpace(rec[FieldStartStationID]),
		EndStationID:   strings.TrimSpace(rec[FieldEndStationID]),
		StartTime:      start,
		EndTime:        end,
		Status:         status,
	}, nil
}

func buildMaintenance(rec Record) (interface{}, error) {
	id, err := validate.ID(FieldRecordID, rec[FieldRecordID])
	if err != nil {
		return nil, err
	}
	bikeID, err := validate.ID(FieldBikeID, rec[FieldBikeID])
	if err != nil {
		return nil, err
	}
	date, err := validate.Date(FieldDate, rec[FieldDate])
	if err != nil {
		return nil, err
	}
	typ, err := validate.OneOf(FieldMaintenanceType, rec[FieldMaintenanceType], MaintenanceTypes...)
	if err != nil {
		return nil, err
	}
	cost, err := validate.NonNegativeFloat(FieldCost, rec[FieldCost])
	if err != nil {
		return nil, err
	}

	return &MaintenanceRecord{
		ID:          id,
		BikeID:      bikeID,
		Date:        date,
		Type:        typ,
		Cost:        cost,
		Description: strings.TrimSpace(rec[FieldDescription]),
	}, nil
}
