// Package derive holds the pure functions that turn raw quality data into
// computed signals: trends, durations, issue priority and repository
// provenance.
package derive

import (
	"fmt"
	"math"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

// stableThreshold is the absolute percent change under which a trend is STABLE.
const stableThreshold = 1.0

// PercentChange returns the relative change from previous to latest in percent.
// A zero previous value yields 0 when latest is also zero and 100 otherwise.
func PercentChange(previous, latest float64) float64 {
	if previous == 0 {
		if latest == 0 {
			return 0
		}
		return 100
	}
	return (latest - previous) / previous * 100
}

// Trend summarizes a series from its last two values.
// Series with fewer than two values are STABLE with no change.
func Trend(values []float64) domain.TrendSummary {
	if len(values) < 2 {
		return domain.TrendSummary{Direction: domain.DirectionStable, Change: formatChange(0)}
	}

	change := PercentChange(values[len(values)-2], values[len(values)-1])

	direction := domain.DirectionStable
	switch {
	case math.Abs(change) < stableThreshold:
	case change > 0:
		direction = domain.DirectionUp
	default:
		direction = domain.DirectionDown
	}

	return domain.TrendSummary{
		Direction:     direction,
		ChangePercent: change,
		Change:        formatChange(change),
	}
}

// SummarizeTrend derives the summary of a metric's history, ignoring points
// without a value.
func SummarizeTrend(trend domain.MetricTrend) domain.MetricTrendSummary {
	values := trend.Values()
	summary := domain.MetricTrendSummary{
		Metric:  trend.Metric,
		Points:  len(values),
		Summary: Trend(values),
		History: trend.History,
	}
	if n := len(values); n > 0 {
		latest := values[n-1]
		summary.Latest = &latest
		if n > 1 {
			previous := values[n-2]
			summary.Previous = &previous
		}
	}
	return summary
}

func formatChange(change float64) string {
	if change > 0 {
		return fmt.Sprintf("+%.1f%%", change)
	}
	return fmt.Sprintf("%.1f%%", change)
}
