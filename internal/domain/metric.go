package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// MeasureValue is a single metric value as reported by the quality service.
// Numeric values are parsed; anything else (ratings in letter form, compound
// durations, level strings) is kept as the raw string.
type MeasureValue struct {
	Raw     string
	Number  float64
	Numeric bool
}

// NewMeasureValue parses raw into a MeasureValue
func NewMeasureValue(raw string) MeasureValue {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return MeasureValue{Raw: raw, Number: n, Numeric: true}
	}
	return MeasureValue{Raw: raw}
}

// MarshalJSON emits numbers as numbers and everything else as strings
func (v MeasureValue) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Raw)
}

// MetricSet represents the measures of a project (or one of its branches)
type MetricSet struct {
	ProjectKey  string                  `json:"projectKey"`
	Branch      string                  `json:"branch,omitempty"`
	PullRequest string                  `json:"pullRequest,omitempty"`
	Measures    map[string]MeasureValue `json:"measures"`
}

// Value returns the measure for metric and whether it was reported
func (m *MetricSet) Value(metric string) (MeasureValue, bool) {
	v, ok := m.Measures[metric]
	return v, ok
}

// TrendPoint represents a single data point in a metric history
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value,omitempty"`
}

// MetricTrend represents the time series of one metric
type MetricTrend struct {
	Metric  string       `json:"metric"`
	History []TrendPoint `json:"history"`
}

// Values returns the defined values of the series in order
func (t MetricTrend) Values() []float64 {
	values := make([]float64, 0, len(t.History))
	for _, p := range t.History {
		if p.Value != nil {
			values = append(values, *p.Value)
		}
	}
	return values
}

// Direction is the direction of a metric trend
type Direction string

const (
	DirectionUp     Direction = "UP"
	DirectionDown   Direction = "DOWN"
	DirectionStable Direction = "STABLE"
)

// TrendSummary is the change between the last two defined values of a series
type TrendSummary struct {
	Direction     Direction `json:"direction"`
	ChangePercent float64   `json:"changePercent"`
	Change        string    `json:"change"`
}

// MetricTrendSummary pairs a metric series with its derived summary
type MetricTrendSummary struct {
	Metric   string       `json:"metric"`
	Points   int          `json:"points"`
	Latest   *float64     `json:"latest,omitempty"`
	Previous *float64     `json:"previous,omitempty"`
	Summary  TrendSummary `json:"summary"`
	History  []TrendPoint `json:"history"`
}

// TrendReport represents the trends of several metrics of a project
type TrendReport struct {
	ProjectKey string               `json:"projectKey"`
	Branch     string               `json:"branch,omitempty"`
	Trends     []MetricTrendSummary `json:"trends"`
}
