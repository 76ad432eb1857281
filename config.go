package citybike

import "runtime"

// Series the outlier pass can run on.
const (
	SeriesDuration = "duration"
	SeriesDistance = "distance"
)

// Config holds the tunables of the analytics engine.
type Config struct {
	// FreeMinutes is the initial window members ride without charge.
	FreeMinutes float64
	// MemberRatePerMinute is billed to members beyond the free window.
	MemberRatePerMinute float64
	// CasualRatePerMinute is billed to casual users from the first minute.
	CasualRatePerMinute float64
	// CasualUnlockFee is the fixed fee casual users pay per trip.
	CasualUnlockFee float64
	// ZScoreThreshold flags a trip as an outlier when |z| exceeds it.
	ZScoreThreshold float64
	// OutlierSeries selects the series the z-score pass runs on,
	// SeriesDuration or SeriesDistance.
	OutlierSeries string
	// Concurrency is the number of compute workers.
	Concurrency int
}

// DefaultConfig returns a Config with the operator's standard tariff.
func DefaultConfig() *Config {
	return &Config{
		FreeMinutes:         15,
		MemberRatePerMinute: 0.20,
		CasualRatePerMinute: 0.30,
		CasualUnlockFee:     1.00,
		ZScoreThreshold:     3.0,
		OutlierSeries:       SeriesDuration,
		Concurrency:         runtime.NumCPU(),
	}
}

func (c *Config) Validate() error {
	switch {
	case c.FreeMinutes < 0:
		return &ConfigurationError{Key: "freeMinutes", Reason: "must not be negative"}
	case c.MemberRatePerMinute < 0:
		return &ConfigurationError{Key: "memberRatePerMinute", Reason: "must not be negative"}
	case c.CasualRatePerMinute < 0:
		return &ConfigurationError{Key: "casualRatePerMinute", Reason: "must not be negative"}
	case c.CasualUnlockFee < 0:
		return &ConfigurationError{Key: "casualUnlockFee", Reason: "must not be negative"}
	case c.ZScoreThreshold <= 0:
		return &ConfigurationError{Key: "zScoreThreshold", Reason: "must be greater than 0"}
	case c.OutlierSeries != SeriesDuration && c.OutlierSeries != SeriesDistance:
		return &ConfigurationError{Key: "outlierSeries", Reason: "must be duration or distance"}
	case c.Concurrency <= 0:
		return &ConfigurationError{Key: "concurrency", Reason: "must be greater than 0"}
	}

	return nil
}
