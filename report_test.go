package citybike

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_RequiresCompute(t *testing.T) {
	system, err := NewSystem(testDataset(), nil)
	require.Nil(t, err)

	_, err = system.Report()
	var soe *StageOrderError
	require.ErrorAs(t, err, &soe)
	assert.Equal(t, StageComputed, soe.Required)
}

func TestReport_BundlesEveryQuery(t *testing.T) {
	system := newComputedSystem(t, testDataset(), nil)

	report, err := system.Report()
	require.Nil(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, 3, report.Summary.TotalTrips)
	assert.Len(t, report.PeakHours, 3)
	assert.Equal(t, []LabelCount{{Label: "2024-06", Count: 3}}, report.MonthlyTrend)
	assert.Equal(t, 10.0, report.DurationStats.Median)
	assert.Equal(t, 2.0, report.AvgTripsPerUserByType[UserMember])
	assert.Equal(t, "ST100", report.TopStartStations[0].StationID)
	assert.Equal(t, 60.0, report.MaintenanceCostByBike["BK1"])
	assert.Empty(t, report.Outliers)
	assert.Empty(t, report.Rejections)

	second, err := system.Report()
	require.Nil(t, err)
	assert.NotEqual(t, report.RunID, second.RunID)
}

func TestReport_WriteText(t *testing.T) {
	data := testDataset()
	data.Trips = append(data.Trips, tripRecord("TR9", "USR3", "casual", "BK1", "ST999", "ST100", "2024-06-03 12:00:00", "2024-06-03 12:30:00"))
	system := newComputedSystem(t, data, nil)

	report, err := system.Report()
	require.Nil(t, err)

	var out strings.Builder
	require.Nil(t, report.WriteText(&out))
	text := out.String()

	for _, section := range []string{
		"CITYBIKE ANALYTICS REPORT",
		"[summary]",
		"[duration stats (min)]",
		"[distance stats (km)]",
		"[peak hours]",
		"[monthly trend]",
		"[top start stations]",
		"[top end stations]",
		"[busiest weekdays]",
		"[avg distance per user type]",
		"[avg trips per user]",
		"[popular routes]",
		"[active users]",
		"[bike utilization]",
		"[maintenance cost per bike]",
		"[maintenance cost per type]",
		"[maintenance frequency]",
		"[trip status]",
		"[outliers] 0 flagged",
		"[rejections] 1 records",
	} {
		assert.Contains(t, text, section)
	}
	assert.Contains(t, text, report.RunID)
	assert.Contains(t, text, "start station ST999 not found")
}
