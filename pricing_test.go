package citybike

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberPricing_Fare(t *testing.T) {
	pricing := MemberPricing{FreeMinutes: 15, RatePerMinute: 0.20}

	tests := []struct {
		name     string
		duration float64
		want     float64
	}{
		{name: "inside free window", duration: 10, want: 0},
		{name: "exactly the free window", duration: 15, want: 0},
		{name: "five billable minutes", duration: 20, want: 1.00},
		{name: "zero duration", duration: 0, want: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.want, pricing.Fare(test.duration), 0.000001)
		})
	}
}

func TestCasualPricing_Fare(t *testing.T) {
	pricing := CasualPricing{UnlockFee: 1.00, RatePerMinute: 0.30}

	tests := []struct {
		name     string
		duration float64
		want     float64
	}{
		{name: "zero duration pays the unlock fee", duration: 0, want: 1.00},
		{name: "ten minutes", duration: 10, want: 4.00},
		{name: "one hour", duration: 60, want: 19.00},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.want, pricing.Fare(test.duration), 0.000001)
		})
	}
}

func TestStrategyFor(t *testing.T) {
	conf := DefaultConfig()

	member, err := StrategyFor(UserMember, conf)
	assert.Nil(t, err)
	assert.IsType(t, MemberPricing{}, member)

	casual, err := StrategyFor(UserCasual, conf)
	assert.Nil(t, err)
	assert.IsType(t, CasualPricing{}, casual)

	_, err = StrategyFor("vip", conf)
	assert.NotNil(t, err)
	var ce *ConfigurationError
	assert.ErrorAs(t, err, &ce)
}
