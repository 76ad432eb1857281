package citybike

import (
	"context"
	"errors"
	"math"

	"github.com/rowaidaawad07-sudo/citybike-project/internal/haversine"
	"github.com/rowaidaawad07-sudo/citybike-project/internal/pipeline"
	"github.com/rowaidaawad07-sudo/citybike-project/internal/stats"
)

// errTripsDrained signals that the generator has streamed every trip.
var errTripsDrained = errors.New("trips drained")

// Compute runs the numerical pass over every trip: duration in minutes,
// haversine distance between the resolved stations, revenue under the
// user's pricing strategy, and a z-score outlier flag over the configured
// series. The per-trip work fans out over Config.Concurrency workers; each
// trip is touched by exactly one worker. Recomputation simply overwrites
// the computed fields.
func (s *System) Compute(ctx context.Context) error {
	if s.stage != StageBuilt && s.stage != StageComputed {
		return &StageOrderError{Op: "Compute", Stage: s.stage, Required: StageBuilt}
	}

	tripc, errc := pipeline.Generate(ctx, s.nextTrip())
	outc, errc1 := pipeline.WorkerPool(ctx, s.conf.Concurrency, tripc, s.computeTrip)
	if err := pipeline.Sink(ctx, outc, func(interface{}) error { return nil }); err != nil {
		return err
	}

	errm := pipeline.MergeErrors(ctx, errc, errc1)
	for err := range errm {
		switch {
		case errors.Is(err, errTripsDrained):
		case err != nil:
			return err
		}
	}

	if err := s.flagOutliers(); err != nil {
		return err
	}

	s.stage = StageComputed
	// cached query results are stale once the trips are recomputed
	s.cache.Flush()
	return nil
}

// nextTrip is a pipeline.generateFunc streaming the trip collection.
func (s *System) nextTrip() func() (interface{}, error) {
	i := 0
	return func() (interface{}, error) {
		if i >= len(s.trips) {
			return nil, errTripsDrained
		}
		trip := s.trips[i]
		i++
		return trip, nil
	}
}

// computeTrip is a pipeline.workerFunc filling one trip's computed fields.
// References were resolved during Build, so the lookups cannot miss.
func (s *System) computeTrip(ctx context.Context, item interface{}, outc chan<- pipeline.Event) error {
	trip := item.(*Trip)

	trip.DurationMinutes = trip.EndTime.Sub(trip.StartTime).Minutes()
	if trip.DurationMinutes < 0 {
		trip.DurationMinutes = 0
	}

	if trip.StartStationID == trip.EndStationID {
		trip.DistanceKM = 0
	} else {
		start := s.stations[trip.StartStationID]
		end := s.stations[trip.EndStationID]
		trip.DistanceKM = haversine.Distance(
			haversine.Coordinate{Lat: start.Lat, Lon: start.Lon},
			haversine.Coordinate{Lat: end.Lat, Lon: end.Lon},
		)
	}

	strategy, err := StrategyFor(s.users[trip.UserID].Category, s.conf)
	if err != nil {
		return err
	}
	trip.Revenue = stats.Round2(strategy.Fare(trip.DurationMinutes))

	select {
	case <-ctx.Done():
	case outc <- trip:
	}
	return nil
}

// flagOutliers standardizes the configured series and flags trips whose
// |z| exceeds the threshold. A constant series flags nothing.
func (s *System) flagOutliers() error {
	series := make([]float64, len(s.trips))
	switch s.conf.OutlierSeries {
	case SeriesDuration:
		for i, t := range s.trips {
			series[i] = t.DurationMinutes
		}
	case SeriesDistance:
		for i, t := range s.trips {
			series[i] = t.DistanceKM
		}
	default:
		return &ConfigurationError{Key: "outlierSeries", Reason: "must be duration or distance"}
	}

	scores := stats.ZScores(series)
	for i, t := range s.trips {
		t.Outlier = math.Abs(scores[i]) > s.conf.ZScoreThreshold
	}
	return nil
}
