package citybike

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_CreateStation(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		name     string
		rec      Record
		hasError bool
		check    func(st *Station)
	}{
		{
			name: "ok",
			rec: Record{
				FieldStationID:   "ST100",
				FieldStationName: "Central Station",
				FieldCapacity:    "20",
				FieldLatitude:    "48.75",
				FieldLongitude:   "9.15",
			},
			check: func(st *Station) {
				assert.Equal(t, "ST100", st.ID)
				assert.Equal(t, "Central Station", st.Name)
				assert.Equal(t, 20, st.Capacity)
			},
		},
		{
			name: "missing name defaults to blank",
			rec: Record{
				FieldStationID: "ST101",
				FieldCapacity:  "10",
				FieldLatitude:  "48.75",
				FieldLongitude: "9.15",
			},
			check: func(st *Station) {
				assert.Equal(t, "", st.Name)
			},
		},
		{
			name: "missing id - error",
			rec: Record{
				FieldCapacity:  "10",
				FieldLatitude:  "48.75",
				FieldLongitude: "9.15",
			},
			hasError: true,
		},
		{
			name: "zero capacity - error",
			rec: Record{
				FieldStationID: "ST102",
				FieldCapacity:  "0",
				FieldLatitude:  "48.75",
				FieldLongitude: "9.15",
			},
			hasError: true,
		},
		{
			name: "latitude out of range - error",
			rec: Record{
				FieldStationID: "ST103",
				FieldCapacity:  "10",
				FieldLatitude:  "95.0",
				FieldLongitude: "9.15",
			},
			hasError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ent, err := factory.Create(test.rec, KindStation)
			if test.hasError {
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
				return
			}
			require.Nil(t, err)
			test.check(ent.(*Station))
		})
	}
}

func TestFactory_CreateBike(t *testing.T) {
	factory := NewFactory()

	t.Run("defaults apply for optional fields", func(t *testing.T) {
		ent, err := factory.Create(Record{FieldBikeID: "BK200"}, KindBike)
		require.Nil(t, err)
		bike := ent.(*Bike)
		assert.Equal(t, BikeClassic, bike.Type)
		assert.Equal(t, BikeAvailable, bike.Status)
	})

	t.Run("explicit type survives", func(t *testing.T) {
		ent, err := factory.Create(Record{FieldBikeID: "BK201", FieldBikeType: "electric"}, KindBike)
		require.Nil(t, err)
		assert.Equal(t, BikeElectric, ent.(*Bike).Type)
	})

	t.Run("unknown type - error", func(t *testing.T) {
		_, err := factory.Create(Record{FieldBikeID: "BK202", FieldBikeType: "cargo"}, KindBike)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, FieldBikeType, ve.Field)
	})
}

func TestFactory_CreateUser(t *testing.T) {
	factory := NewFactory()

	ent, err := factory.Create(Record{FieldUserID: "USR1000", FieldUserType: "member"}, KindUser)
	require.Nil(t, err)
	assert.Equal(t, UserMember, ent.(*User).Category)

	_, err = factory.Create(Record{FieldUserID: "USR1001", FieldUserType: "vip"}, KindUser)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestFactory_CreateTrip(t *testing.T) {
	factory := NewFactory()

	base := Record{
		FieldTripID:         "TR10000",
		FieldUserID:         "USR1000",
		FieldUserType:       "member",
		FieldBikeID:         "BK200",
		FieldStartStationID: "ST100",
		FieldEndStationID:   "ST101",
		FieldStartTime:      "2024-06-03 08:00:00",
		FieldEndTime:        "2024-06-03 08:20:00",
	}

	t.Run("ok with defaulted status", func(t *testing.T) {
		ent, err := factory.Create(base, KindTrip)
		require.Nil(t, err)
		trip := ent.(*Trip)
		assert.Equal(t, TripCompleted, trip.Status)
		assert.Equal(t, time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC), trip.StartTime)
	})

	t.Run("end before start - error", func(t *testing.T) {
		rec := make(Record, len(base))
		for k, v := range base {
			rec[k] = v
		}
		rec[FieldEndTime] = "2024-06-03 07:00:00"
		_, err := factory.Create(rec, KindTrip)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, FieldEndTime, ve.Field)
	})

	t.Run("missing end time - error", func(t *testing.T) {
		rec := make(Record, len(base))
		for k, v := range base {
			rec[k] = v
		}
		delete(rec, FieldEndTime)
		_, err := factory.Create(rec, KindTrip)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "required field is missing", ve.Reason)
	})
}

func TestFactory_CreateMaintenance(t *testing.T) {
	factory := NewFactory()

	base := Record{
		FieldRecordID:        "MR5000",
		FieldBikeID:          "BK200",
		FieldDate:            "2024-06-10",
		FieldMaintenanceType: "tire_repair",
		FieldCost:            "25.50",
	}

	t.Run("ok", func(t *testing.T) {
		ent, err := factory.Create(base, KindMaintenance)
		require.Nil(t, err)
		rec := ent.(*MaintenanceRecord)
		assert.Equal(t, 25.50, rec.Cost)
		assert.Equal(t, "", rec.Description)
	})

	t.Run("missing cost - error", func(t *testing.T) {
		rec := make(Record, len(base))
		for k, v := range base {
			rec[k] = v
		}
		delete(rec, FieldCost)
		_, err := factory.Create(rec, KindMaintenance)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, FieldCost, ve.Field)
	})

	t.Run("negative cost - error", func(t *testing.T) {
		rec := make(Record, len(base))
		for k, v := range base {
			rec[k] = v
		}
		rec[FieldCost] = "-10"
		_, err := factory.Create(rec, KindMaintenance)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("unknown maintenance type - error", func(t *testing.T) {
		rec := make(Record, len(base))
		for k, v := range base {
			rec[k] = v
		}
		rec[FieldMaintenanceType] = "paint_job"
		_, err := factory.Create(rec, KindMaintenance)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestFactory_UnknownKind(t *testing.T) {
	factory := NewFactory()
	_, err := factory.Create(Record{}, Kind("scooter"))
	var ce *ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestFactory_Required(t *testing.T) {
	factory := NewFactory()

	required, err := factory.Required(KindStation)
	require.Nil(t, err)
	assert.Contains(t, required, FieldStationID)

	_, err = factory.Required(Kind("scooter"))
	var ce *ConfigurationError
	assert.ErrorAs(t, err, &ce)
}
