package domain

import "time"

// GateStatus is the status of a quality gate or one of its conditions
type GateStatus string

const (
	GateStatusOK    GateStatus = "OK"
	GateStatusWarn  GateStatus = "WARN"
	GateStatusError GateStatus = "ERROR"
	GateStatusNone  GateStatus = "NONE"
)

// Condition is one threshold of a quality gate
type Condition struct {
	Metric         string     `json:"metric"`
	Comparator     string     `json:"comparator"`
	ErrorThreshold string     `json:"errorThreshold"`
	ActualValue    string     `json:"actualValue"`
	Status         GateStatus `json:"status"`
}

// QualityGate is the gate status as computed by the quality service
type QualityGate struct {
	ProjectKey string      `json:"projectKey"`
	Status     GateStatus  `json:"status"`
	Conditions []Condition `json:"conditions"`
}

// AnalysisMarker is an event recorded on an analysis (version, gate change...)
type AnalysisMarker struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// AnalysisEvent represents one analysis of a project
type AnalysisEvent struct {
	Key            string           `json:"key"`
	Date           time.Time        `json:"date"`
	ProjectVersion string           `json:"projectVersion,omitempty"`
	BuildString    string           `json:"buildString,omitempty"`
	Revision       string           `json:"revision,omitempty"`
	DetectedCI     string           `json:"detectedCI,omitempty"`
	Events         []AnalysisMarker `json:"events,omitempty"`
}

// AnalysisPage is one page of an analysis search, newest first
type AnalysisPage struct {
	Analyses []AnalysisEvent `json:"analyses"`
	Paging   Paging          `json:"paging"`
}

// AnalysisHistory represents the analyses of a project
type AnalysisHistory struct {
	ProjectKey string          `json:"projectKey"`
	Branch     string          `json:"branch,omitempty"`
	Latest     *AnalysisEvent  `json:"latest,omitempty"`
	Analyses   []AnalysisEvent `json:"analyses"`
	Paging     Paging          `json:"paging"`
}

// ProjectHealth is a one-page overview of a project.
// QualityGate and LatestAnalysis are nil when their source was unavailable.
type ProjectHealth struct {
	ProjectKey     string         `json:"projectKey"`
	Branch         string         `json:"branch,omitempty"`
	Metrics        *MetricSet     `json:"metrics"`
	TechnicalDebt  string         `json:"technicalDebt,omitempty"`
	QualityGate    *QualityGate   `json:"qualityGate,omitempty"`
	LatestAnalysis *AnalysisEvent `json:"latestAnalysis,omitempty"`
}
