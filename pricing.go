package citybike

import "fmt"

// Strategy computes the fare of a trip from its duration. Implementations
// are pure: they never mutate the Trip, the compute pass assigns the result.
type Strategy interface {
	Fare(durationMinutes float64) float64
}

// MemberPricing bills a flat per-minute rate beyond a free initial window.
type MemberPricing struct {
	FreeMinutes   float64
	RatePerMinute float64
}

// Fare floors at zero for trips inside the free window.
func (p MemberPricing) Fare(durationMinutes float64) float64 {
	billable := durationMinutes - p.FreeMinutes
	if billable < 0 {
		billable = 0
	}
	return billable * p.RatePerMinute
}

// CasualPricing bills a fixed unlock fee plus a per-minute rate from the
// first minute.
type CasualPricing struct {
	UnlockFee     float64
	RatePerMinute float64
}

func (p CasualPricing) Fare(durationMinutes float64) float64 {
	return p.UnlockFee + durationMinutes*p.RatePerMinute
}

// StrategyFor selects the pricing strategy of a user category. An unknown
// category is a configuration error, not a silent default: it means the
// data model drifted and the pipeline must not mask it.
func StrategyFor(category string, conf *Config) (Strategy, error) {
	switch category {
	case UserMember:
		return MemberPricing{
			FreeMinutes:   conf.FreeMinutes,
			RatePerMinute: conf.MemberRatePerMinute,
		}, nil
	case UserCasual:
		return CasualPricing{
			UnlockFee:     conf.CasualUnlockFee,
			RatePerMinute: conf.CasualRatePerMinute,
		}, nil
	default:
		return nil, &ConfigurationError{Key: "userCategory", Reason: fmt.Sprintf("no pricing strategy for category %q", category)}
	}
}
