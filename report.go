package citybike

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report bundles the rejection report and every query result of one run for
// the reporting collaborator.
type Report struct {
	RunID       string
	GeneratedAt time.Time

	Summary               Summary
	DurationStats         SeriesStats
	DistanceStats         SeriesStats
	PeakHours             []PeakWindow
	MonthlyTrend          []LabelCount
	TopStartStations      []StationCount
	TopEndStations        []StationCount
	BusiestWeekdays       []LabelCount
	AvgDistanceByUserType map[string]float64
	AvgTripsPerUserByType map[string]float64
	PopularRoutes         []RouteCount
	ActiveUsers           []LabelCount
	BikeUtilization       []Utilization
	MaintenanceCostByBike map[string]float64
	MaintenanceCostByType map[string]float64
	MaintenanceFrequency  []LabelCount
	StatusDistribution    map[string]int
	Outliers              []*Trip
	Rejections            []Rejection
}

const reportTopN = 10

// Report runs every query and bundles the results. Like any query it
// requires the compute stage.
func (s *System) Report() (*Report, error) {
	if err := s.queryable("Report"); err != nil {
		return nil, err
	}

	r := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Rejections:  s.Rejections(),
	}

	var err error
	if r.Summary, err = s.Summary(); err != nil {
		return nil, err
	}
	if r.DurationStats, err = s.DurationStats(); err != nil {
		return nil, err
	}
	if r.DistanceStats, err = s.DistanceStats(); err != nil {
		return nil, err
	}
	if r.PeakHours, err = s.PeakWindows(GroupHour); err != nil {
		return nil, err
	}
	if r.MonthlyTrend, err = s.MonthlyTrend(); err != nil {
		return nil, err
	}
	if r.TopStartStations, r.TopEndStations, err = s.TopStations(reportTopN); err != nil {
		return nil, err
	}
	if r.BusiestWeekdays, err = s.BusiestWeekdays(); err != nil {
		return nil, err
	}
	if r.AvgDistanceByUserType, err = s.AvgDistanceByUserType(); err != nil {
		return nil, err
	}
	if r.AvgTripsPerUserByType, err = s.AvgTripsPerUserByType(); err != nil {
		return nil, err
	}
	if r.PopularRoutes, err = s.PopularRoutes(reportTopN); err != nil {
		return nil, err
	}
	if r.ActiveUsers, err = s.ActiveUsers(reportTopN); err != nil {
		return nil, err
	}
	if r.BikeUtilization, err = s.BikeUtilization(reportTopN); err != nil {
		return nil, err
	}
	if r.MaintenanceCostByBike, err = s.MaintenanceCostByBike(); err != nil {
		return nil, err
	}
	if r.MaintenanceCostByType, err = s.MaintenanceCostByType(); err != nil {
		return nil, err
	}
	if r.MaintenanceFrequency, err = s.MaintenanceFrequency(reportTopN); err != nil {
		return nil, err
	}
	if r.StatusDistribution, err = s.StatusDistribution(); err != nil {
		return nil, err
	}
	if r.Outliers, err = s.Outliers(); err != nil {
		return nil, err
	}
	return r, nil
}

// WriteText renders the report as a plain-text operator summary.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "%s\nCITYBIKE ANALYTICS REPORT\nrun %s, generated %s\n%s\n",
		rule, r.RunID, r.GeneratedAt.Format("2006-01-02 15:04:05"), rule)

	fmt.Fprintf(&b, "\n[summary]\n  trips: %d\n  total distance: %.2f km\n  avg duration: %.2f min\n",
		r.Summary.TotalTrips, r.Summary.TotalDistanceKM, r.Summary.AvgDurationMin)

	b.WriteString("\n[duration stats (min)]\n")
	writeSeriesStats(&b, r.DurationStats)
	b.WriteString("\n[distance stats (km)]\n")
	writeSeriesStats(&b, r.DistanceStats)

	b.WriteString("\n[peak hours]\n")
	for _, p := range r.PeakHours {
		fmt.Fprintf(&b, "  %02d:00  %d trips\n", p.Hour, p.Count)
	}

	b.WriteString("\n[monthly trend]\n")
	for _, m := range r.MonthlyTrend {
		fmt.Fprintf(&b, "  %s  %d trips\n", m.Label, m.Count)
	}

	b.WriteString("\n[top start stations]\n")
	writeStationCounts(&b, r.TopStartStations)
	b.WriteString("\n[top end stations]\n")
	writeStationCounts(&b, r.TopEndStations)

	b.WriteString("\n[busiest weekdays]\n")
	for _, d := range r.BusiestWeekdays {
		fmt.Fprintf(&b, "  %-10s %d\n", d.Label, d.Count)
	}

	b.WriteString("\n[avg distance per user type]\n")
	writeFloatMap(&b, r.AvgDistanceByUserType, "km")

	b.WriteString("\n[avg trips per user]\n")
	writeFloatMap(&b, r.AvgTripsPerUserByType, "trips")

	b.WriteString("\n[popular routes]\n")
	for _, rt := range r.PopularRoutes {
		fmt.Fprintf(&b, "  %s -> %s  %d trips\n", rt.StartStationID, rt.EndStationID, rt.Count)
	}

	b.WriteString("\n[active users]\n")
	for _, u := range r.ActiveUsers {
		fmt.Fprintf(&b, "  %-10s %d trips\n", u.Label, u.Count)
	}

	b.WriteString("\n[bike utilization]\n")
	for _, u := range r.BikeUtilization {
		fmt.Fprintf(&b, "  %-10s %6.2f%%\n", u.BikeID, u.Percent)
	}

	b.WriteString("\n[maintenance cost per bike]\n")
	writeFloatMap(&b, r.MaintenanceCostByBike, "")
	b.WriteString("\n[maintenance cost per type]\n")
	writeFloatMap(&b, r.MaintenanceCostByType, "")

	b.WriteString("\n[maintenance frequency]\n")
	for _, f := range r.MaintenanceFrequency {
		fmt.Fprintf(&b, "  %-10s %d events\n", f.Label, f.Count)
	}

	b.WriteString("\n[trip status]\n")
	statuses := make([]string, 0, len(r.StatusDistribution))
	for status := range r.StatusDistribution {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Fprintf(&b, "  %-10s %d\n", status, r.StatusDistribution[status])
	}

	fmt.Fprintf(&b, "\n[outliers] %d flagged\n", len(r.Outliers))
	for _, t := range r.Outliers {
		fmt.Fprintf(&b, "  %s  %.1f min  %.2f km\n", t.ID, t.DurationMinutes, t.DistanceKM)
	}

	fmt.Fprintf(&b, "\n[rejections] %d records\n", len(r.Rejections))
	for _, rej := range r.Rejections {
		id := rej.ID
		if id == "" {
			id = "(no id)"
		}
		fmt.Fprintf(&b, "  %-12s %-10s %s\n", rej.Kind, id, rej.Reason)
	}

	b.WriteString("\n" + rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSeriesStats(b *strings.Builder, s SeriesStats) {
	fmt.Fprintf(b, "  mean %.2f  median %.2f  std %.2f  p25 %.2f  p75 %.2f  p90 %.2f\n",
		s.Mean, s.Median, s.StdDev, s.P25, s.P75, s.P90)
}

func writeStationCounts(b *strings.Builder, counts []StationCount) {
	for _, c := range counts {
		name := c.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(b, "  %-8s %-20s %d trips\n", c.StationID, name, c.Count)
	}
}

func writeFloatMap(b *strings.Builder, m map[string]float64, unit string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if unit != "" {
			fmt.Fprintf(b, "  %-20s %.2f %s\n", k, m[k], unit)
		} else {
			fmt.Fprintf(b, "  %-20s %.2f\n", k, m[k])
		}
	}
}
