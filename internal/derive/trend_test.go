package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

func TestTrend(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		direction domain.Direction
		change    float64
		formatted string
	}{
		{"doubling", []float64{10, 20}, domain.DirectionUp, 100, "+100.0%"},
		{"halving", []float64{20, 10}, domain.DirectionDown, -50, "-50.0%"},
		{"both zero", []float64{0, 0}, domain.DirectionStable, 0, "0.0%"},
		{"from zero", []float64{0, 5}, domain.DirectionUp, 100, "+100.0%"},
		{"under one percent", []float64{1000, 1005}, domain.DirectionStable, 0.5, "+0.5%"},
		{"only last two count", []float64{1, 500, 100, 110}, domain.DirectionUp, 10, "+10.0%"},
		{"single value", []float64{42}, domain.DirectionStable, 0, "0.0%"},
		{"empty", nil, domain.DirectionStable, 0, "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trend(tt.values)
			assert.Equal(t, tt.direction, got.Direction)
			assert.InDelta(t, tt.change, got.ChangePercent, 1e-9)
			assert.Equal(t, tt.formatted, got.Change)
		})
	}
}

func TestPercentChangeFromZeroToNegative(t *testing.T) {
	assert.Equal(t, 100.0, PercentChange(0, -3))
}

func TestSummarizeTrendIgnoresMissingValues(t *testing.T) {
	v := func(f float64) *float64 { return &f }
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	summary := SummarizeTrend(domain.MetricTrend{
		Metric: "coverage",
		History: []domain.TrendPoint{
			{Date: day(1), Value: v(50)},
			{Date: day(2), Value: v(60)},
			{Date: day(3)},
		},
	})

	assert.Equal(t, 2, summary.Points)
	assert.Equal(t, 60.0, *summary.Latest)
	assert.Equal(t, 50.0, *summary.Previous)
	assert.Equal(t, domain.DirectionUp, summary.Summary.Direction)
	assert.InDelta(t, 20, summary.Summary.ChangePercent, 1e-9)
	assert.Len(t, summary.History, 3)
}

func TestSummarizeTrendWithOneDefinedValue(t *testing.T) {
	one := 1.0
	summary := SummarizeTrend(domain.MetricTrend{
		Metric:  "bugs",
		History: []domain.TrendPoint{{Value: &one}, {}, {}},
	})

	assert.Equal(t, domain.DirectionStable, summary.Summary.Direction)
	assert.Zero(t, summary.Summary.ChangePercent)
	assert.Nil(t, summary.Previous)
	assert.Equal(t, 1.0, *summary.Latest)
}
