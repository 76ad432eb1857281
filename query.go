package citybike

import (
	"fmt"
	"sort"
	"time"

	"github.com/rowaidaawad07-sudo/citybike-project/internal/stats"
)

// Grouping keys accepted by PeakWindows.
const (
	GroupHour        = "hour"
	GroupWeekdayHour = "weekday-hour"
)

// PeakWindow is one usage bucket of the peak-windows query. Weekday is only
// meaningful for the weekday-hour grouping.
type PeakWindow struct {
	Weekday time.Weekday
	Hour    int
	Count   int
}

// RouteCount is one (start station, end station) pair with its trip count.
type RouteCount struct {
	StartStationID string
	EndStationID   string
	Count          int
}

// StationCount is one station with its trip count.
type StationCount struct {
	StationID string
	Name      string
	Count     int
}

// LabelCount is a generic labeled count used by the ranking queries.
type LabelCount struct {
	Label string
	Count int
}

// Summary holds the headline statistics of a run.
type Summary struct {
	TotalTrips      int
	TotalDistanceKM float64
	AvgDurationMin  float64
}

// Utilization is one bike's usage minutes as a share of the observed span.
type Utilization struct {
	BikeID  string
	Percent float64
}

// SeriesStats describes the distribution of one computed trip series.
type SeriesStats struct {
	Mean   float64
	Median float64
	StdDev float64
	P25    float64
	P75    float64
	P90    float64
}

// PeakWindows buckets trips by start hour of day, or by weekday and hour,
// and returns the bucket(s) holding the maximum trip count ordered by
// earliest bucket index. An unknown grouping key is a configuration error.
func (s *System) PeakWindows(grouping string) ([]PeakWindow, error) {
	if err := s.queryable("PeakWindows"); err != nil {
		return nil, err
	}
	v, err := s.cached("peak-windows:"+grouping, func() (interface{}, error) {
		switch grouping {
		case GroupHour:
			var counts [24]int
			for _, t := range s.trips {
				counts[t.StartTime.Hour()]++
			}
			return maxBuckets(counts[:], func(i int) PeakWindow {
				return PeakWindow{Hour: i}
			}), nil
		case GroupWeekdayHour:
			counts := make([]int, 7*24)
			for _, t := range s.trips {
				counts[int(t.StartTime.Weekday())*24+t.StartTime.Hour()]++
			}
			return maxBuckets(counts, func(i int) PeakWindow {
				return PeakWindow{Weekday: time.Weekday(i / 24), Hour: i % 24}
			}), nil
		default:
			return nil, &ConfigurationError{Key: "grouping", Reason: fmt.Sprintf("unknown grouping key %q", grouping)}
		}
	})
	if err != nil {
		return nil, err
	}
	return copySlice(v.([]PeakWindow)), nil
}

// maxBuckets keeps every bucket tied at the maximum count, in index order.
// No trips means no peak.
func maxBuckets(counts []int, window func(i int) PeakWindow) []PeakWindow {
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return nil
	}

	var wins []PeakWindow
	for i, c := range counts {
		if c == max {
			w := window(i)
			w.Count = c
			wins = append(wins, w)
		}
	}
	return wins
}

// PopularRoutes groups trips by (start station, end station) pair and ranks
// them by count descending; ties are broken by the lexical order of the
// station identifier pair. A non-positive limit returns every route.
func (s *System) PopularRoutes(limit int) ([]RouteCount, error) {
	if err := s.queryable("PopularRoutes"); err != nil {
		return nil, err
	}
	v, err := s.cached(fmt.Sprintf("popular-routes:%d", limit), func() (interface{}, error) {
		byPair := make(map[[2]string]int)
		for _, t := range s.trips {
			byPair[[2]string{t.StartStationID, t.EndStationID}]++
		}

		routes := make([]RouteCount, 0, len(byPair))
		for pair, count := range byPair {
			routes = append(routes, RouteCount{StartStationID: pair[0], EndStationID: pair[1], Count: count})
		}
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Count != routes[j].Count {
				return routes[i].Count > routes[j].Count
			}
			if routes[i].StartStationID != routes[j].StartStationID {
				return routes[i].StartStationID < routes[j].StartStationID
			}
			return routes[i].EndStationID < routes[j].EndStationID
		})
		return head(routes, limit), nil
	})
	if err != nil {
		return nil, err
	}
	return copySlice(v.([]RouteCount)), nil
}

// MaintenanceCostByBike sums maintenance costs grouped by bike identifier.
// Bikes without records report zero; records for bikes outside the fleet
// are still rolled up under their identifier.
func (s *System) MaintenanceCostByBike() (map[string]float64, error) {
	if err := s.queryable("MaintenanceCostByBike"); err != nil {
		return nil, err
	}
	v, err := s.cached("maintenance-cost-by-bike", func() (interface{}, error) {
		costs := make(map[string]float64, len(s.bikes))
		for id := range s.bikes {
			costs[id] = 0
		}
		for _, rec := range s.maintenance {
			costs[rec.BikeID] = stats.Round2(costs[rec.BikeID] + rec.Cost)
		}
		return costs, nil
	})
	if err != nil {
		return nil, err
	}
	return copyMap(v.(map[string]float64)), nil
}

// MaintenanceCostByType sums maintenance costs grouped by event type.
func (s *System) MaintenanceCostByType() (map[string]float64, error) {
	if err := s.queryable("MaintenanceCostByType"); err != nil {
		return nil, err
	}
	v, err := s.cached("maintenance-cost-by-type", func() (interface{}, error) {
		costs := make(map[string]float64)
		for _, rec := range s.maintenance {
			costs[rec.Type] = stats.Round2(costs[rec.Type] + rec.Cost)
		}
		return costs, nil
	})
	if err != nil {
		return nil, err
	}
	return copyMap(v.(map[string]float64)), nil
}

// MaintenanceFrequency ranks bikes by maintenance-event count descending,
// ties broken by bike identifier.
func (s *System) MaintenanceFrequency(limit int) ([]LabelCount, error) {
	if err := s.queryable("MaintenanceFrequency"); err != nil {
		return nil, err
	}
	v, err := s.cached(fmt.Sprintf("maintenance-frequency:%d", limit), func() (interface{}, error) {
		counts := make(map[string]int)
		for _, rec := range s.maintenance {
			counts[rec.BikeID]++
		}
		return head(rankCounts(counts), limit), nil
	})
	if err != nil {
		return nil, err
	}
	return copySlice(v.([]LabelCount)), nil
}

// Summary returns the headline statistics: trip count, total distance and
// average duration.
func (s *System) Summary() (Summary, error) {
	if err := s.queryable("Summary"); err != nil {
		return Summary{}, err
	}
	v, err := s.cached("summary", func() (interface{}, error) {
		durations := make([]float64, len(s.trips))
		var distance float64
		for i, t := range s.trips {
			durations[i] = t.DurationMinutes
			distance += t.DistanceKM
		}
		return Summary{
			TotalTrips:      len(s.trips),
			TotalDistanceKM: stats.Round2(distance),
			AvgDurationMin:  stats.Round2(stats.Mean(durations)),
		}, nil
	})
	if err != nil {
		return Summary{}, err
	}
	return v.(Summary), nil
}

// TopStations ranks the busiest start and end stations.
func (s *System) TopStations(limit int) (starts, ends []StationCount, err error) {
	if err := s.queryable("TopStations"); err != nil {
		return nil, nil, err
	}
	v, err := s.cached(fmt.Sprintf("top-stations:%d", limit), func() (interface{}, error) {
		startCounts := make(map[string]int)
		endCounts := make(map[string]int)
		for _, t := range s.trips {
			startCounts[t.StartStationID]++
			endCounts[t.EndStationID]++
		}
		return [2][]StationCount{
			head(s.rankStations(startCounts), limit),
			head(s.rankStations(endCounts), limit),
		}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	pair := v.([2][]StationCount)
	return copySlice(pair[0]), copySlice(pair[1]), nil
}

func (s *System) rankStations(counts map[string]int) []StationCount {
	out := make([]StationCount, 0, len(counts))
	for id, count := range counts {
		var name string
		if st := s.stations[id]; st != nil {
			name = st.Name
		}
		out = append(out, StationCount{StationID: id, Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].StationID < out[j].StationID
	})
	return out
}

// BusiestWeekdays returns trip counts per weekday, busiest first; ties keep
// calendar order starting at Sunday.
func (s *System) BusiestWeekdays() ([]LabelCount, error) {
	if err := s.queryable("BusiestWeekdays"); err != nil {
		return nil, err
	}
	v, err := s.cached("busiest-weekdays", func() (interface{}, error) {
		var counts [7]int
		for _, t := range s.trips {
			counts[t.StartTime.Weekday()]++
		}
		out := make([]LabelCount, 0, 7)
		for d, c := range counts {
			out = append(out, LabelCount{Label: time.Weekday(d).String(), Count: c})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return copySlice(v.([]LabelCount)), nil
}

// AvgDistanceByUserType returns the mean trip distance per user category.
func (s *System) AvgDistanceByUserType() (map[string]float64, error) {
	if err := s.queryable("AvgDistanceByUserType"); err != nil {
		return nil, err
	}
	v, err := s.cached("avg-distance-by-user-type", func() (interface{}, error) {
		byCategory := make(map[string][]float64)
		for _, t := range s.trips {
			category := s.users[t.UserID].Category
			byCategory[category] = append(byCategory[category], t.DistanceKM)
		}
		out := make(map[string]float64, len(byCategory))
		for category, distances := range byCategory {
			out[category] = stats.Round2(stats.Mean(distances))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return copyMap(v.(map[string]float64)), nil
}

// ActiveUsers ranks users by trip count descending, ties broken by user
// identifier.
func (s *System) ActiveUsers(limit int) ([]LabelCount, error) {
	if err := s.queryable("ActiveUsers"); err != nil {
		return nil, err
	}
	v, err := s.cached(fmt.Sprintf("active-users:%d", limit), func() (interface{}, error) {
		counts := make(map[string]int)
		for _, t := range s.trips {
			counts[t.UserID]++
		}
		return head(rankCounts(counts), limit), nil
	})
	if err != nil {
		return nil, err
	}
	return copySlice(v.([]LabelCount)), nil
}

// MonthlyTrend returns trip counts per calendar month of the trip start,
// oldest month first.
func (s *System) MonthlyTrend() ([]LabelCount, error) {
	if err := s.queryable("MonthlyTrend"); err != nil {
		return nil, err
	}
	v, err := s.cached("monthly-trend", func() (interface{}, error) {
		counts := make(map[string]int)
		for _, t := range s.trips {
			counts[t.StartTime.Format("2006-01")]++
		}
		out := make([]LabelCount, 0, len(counts))
		for month, count := range counts {
			out = append(out, LabelCount{Label: month, Count: count})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return copySlice(v.([]LabelCount)), nil
}

// AvgTripsPerUserByType returns the mean trip count per rider within each
// user category. Only riders with at least one surviving trip count.
func (s *System) AvgTripsPerUserByType() (map[string]float64, error) {
	if err := s.queryable("AvgTripsPerUserByType"); err != nil {
		return nil, err
	}
	v, err := s.cached("avg-trips-per-user-by-type", func() (interface{}, error) {
		trips := make(map[string]int)
		riders := make(map[string]map[string]bool)
		for _, t := range s.trips {
			category := s.users[t.UserID].Category
			trips[category]++
			if riders[category] == nil {
				riders[category] = make(map[string]bool)
			}
			riders[category][t.UserID] = true
		}
		out := make(map[string]float64, len(trips))
		for category, count := range trips {
			out[category] = stats.Round2(float64(count) / float64(len(riders[category])))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return copyMap(v.(map[string]float64)), nil
}

// DurationStats describes the distribution of trip durations in minutes.
func (s *System) DurationStats() (SeriesStats, error) {
	if err := s.queryable("DurationStats"); err != nil {
		return SeriesStats{}, err
	}
	v, err := s.cached("duration-stats", func() (interface{}, error) {
		series := make([]float64, len(s.trips))
		for i, t := range s.trips {
			series[i] = t.DurationMinutes
		}
		return seriesStats(series), nil
	})
	if err != nil {
		return SeriesStats{}, err
	}
	return v.(SeriesStats), nil
}

// DistanceStats describes the distribution of trip distances in kilometers.
func (s *System) DistanceStats() (SeriesStats, error) {
	if err := s.queryable("DistanceStats"); err != nil {
		return SeriesStats{}, err
	}
	v, err := s.cached("distance-stats", func() (interface{}, error) {
		series := make([]float64, len(s.trips))
		for i, t := range s.trips {
			series[i] = t.DistanceKM
		}
		return seriesStats(series), nil
	})
	if err != nil {
		return SeriesStats{}, err
	}
	return v.(SeriesStats), nil
}

func seriesStats(series []float64) SeriesStats {
	return SeriesStats{
		Mean:   stats.Round2(stats.Mean(series)),
		Median: stats.Round2(stats.Median(series)),
		StdDev: stats.Round2(stats.StdDev(series)),
		P25:    stats.Round2(stats.Percentile(series, 25)),
		P75:    stats.Round2(stats.Percentile(series, 75)),
		P90:    stats.Round2(stats.Percentile(series, 90)),
	}
}

// StatusDistribution returns trip counts per status.
func (s *System) StatusDistribution() (map[string]int, error) {
	if err := s.queryable("StatusDistribution"); err != nil {
		return nil, err
	}
	v, err := s.cached("status-distribution", func() (interface{}, error) {
		counts := make(map[string]int)
		for _, t := range s.trips {
			counts[t.Status]++
		}
		return counts, nil
	})
	if err != nil {
		return nil, err
	}
	return copyMap(v.(map[string]int)), nil
}

// BikeUtilization ranks bikes by their usage minutes as a percentage of the
// observed time span (earliest trip start to latest trip end).
func (s *System) BikeUtilization(limit int) ([]Utilization, error) {
	if err := s.queryable("BikeUtilization"); err != nil {
		return nil, err
	}
	v, err := s.cached(fmt.Sprintf("bike-utilization:%d", limit), func() (interface{}, error) {
		if len(s.trips) == 0 {
			return []Utilization{}, nil
		}

		first, last := s.trips[0].StartTime, s.trips[0].EndTime
		usage := make(map[string]float64)
		for _, t := range s.trips {
			if t.StartTime.Before(first) {
				first = t.StartTime
			}
			if t.EndTime.After(last) {
				last = t.EndTime
			}
			usage[t.BikeID] += t.DurationMinutes
		}
		span := last.Sub(first).Minutes()
		if span <= 0 {
			return []Utilization{}, nil
		}

		out := make([]Utilization, 0, len(usage))
		for id, minutes := range usage {
			out = append(out, Utilization{BikeID: id, Percent: stats.Round2(minutes / span * 100)})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Percent != out[j].Percent {
				return out[i].Percent > out[j].Percent
			}
			return out[i].BikeID < out[j].BikeID
		})
		return head(out, limit), nil
	})
	if err != nil {
		return nil, err
	}
	return copySlice(v.([]Utilization)), nil
}

// Outliers returns the trips flagged by the z-score pass, in input order.
func (s *System) Outliers() ([]*Trip, error) {
	if err := s.queryable("Outliers"); err != nil {
		return nil, err
	}
	var out []*Trip
	for _, t := range s.trips {
		if t.Outlier {
			out = append(out, t)
		}
	}
	return out, nil
}

// rankCounts orders labeled counts descending, ties broken by label.
func rankCounts(counts map[string]int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func head[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// copySlice and copyMap isolate cached query results from caller mutation.

func copySlice[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
