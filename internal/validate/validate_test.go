package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		hasError bool
	}{
		{name: "ok", raw: "ST100", want: "ST100"},
		{name: "trimmed", raw: "  BK205 ", want: "BK205"},
		{name: "empty - error", raw: "", hasError: true},
		{name: "blank - error", raw: "   ", hasError: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ID("station_id", test.raw)
			assert.Equal(t, test.hasError, err != nil)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestTimestamp(t *testing.T) {
	ts, err := Timestamp("start_time", "2024-06-03 08:15:00")
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 8, 15, 0, 0, time.UTC), ts)

	_, err = Timestamp("start_time", "03/06/2024 08:15")
	assert.NotNil(t, err)
}

func TestDate(t *testing.T) {
	d, err := Date("date", "2024-06-03")
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), d)

	_, err = Date("date", "June 3rd")
	assert.NotNil(t, err)
}

func TestNonNegativeFloat(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     float64
		hasError bool
	}{
		{name: "ok", raw: "12.5", want: 12.5},
		{name: "zero ok", raw: "0", want: 0},
		{name: "negative - error", raw: "-1", hasError: true},
		{name: "not a number - error", raw: "abc", hasError: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := NonNegativeFloat("cost", test.raw)
			assert.Equal(t, test.hasError, err != nil)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     int
		hasError bool
	}{
		{name: "ok", raw: "20", want: 20},
		{name: "zero - error", raw: "0", hasError: true},
		{name: "negative - error", raw: "-5", hasError: true},
		{name: "float - error", raw: "2.5", hasError: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := PositiveInt("capacity", test.raw)
			assert.Equal(t, test.hasError, err != nil)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestLatitudeLongitude(t *testing.T) {
	_, err := Latitude("latitude", "48.75")
	assert.Nil(t, err)
	_, err = Latitude("latitude", "91")
	assert.NotNil(t, err)
	_, err = Longitude("longitude", "-179.9")
	assert.Nil(t, err)
	_, err = Longitude("longitude", "181")
	assert.NotNil(t, err)
}

func TestOneOf(t *testing.T) {
	got, err := OneOf("user_type", " Member ", "casual", "member")
	assert.Nil(t, err)
	assert.Equal(t, "member", got)

	_, err = OneOf("user_type", "vip", "casual", "member")
	assert.NotNil(t, err)

	var ve *Error
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "user_type", ve.Field)
}
