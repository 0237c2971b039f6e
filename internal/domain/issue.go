package domain

import "time"

// Severity of an issue, ordered BLOCKER > CRITICAL > MAJOR > MINOR > INFO
type Severity string

const (
	SeverityBlocker  Severity = "BLOCKER"
	SeverityCritical Severity = "CRITICAL"
	SeverityMajor    Severity = "MAJOR"
	SeverityMinor    Severity = "MINOR"
	SeverityInfo     Severity = "INFO"
)

// Severities lists every severity from most to least severe
var Severities = []Severity{SeverityBlocker, SeverityCritical, SeverityMajor, SeverityMinor, SeverityInfo}

// IssueType represents the type of an issue
type IssueType string

const (
	IssueTypeBug             IssueType = "BUG"
	IssueTypeVulnerability   IssueType = "VULNERABILITY"
	IssueTypeCodeSmell       IssueType = "CODE_SMELL"
	IssueTypeSecurityHotspot IssueType = "SECURITY_HOTSPOT"
)

// IssueTypes lists every issue type
var IssueTypes = []IssueType{IssueTypeBug, IssueTypeVulnerability, IssueTypeCodeSmell, IssueTypeSecurityHotspot}

// IssueStatus represents the workflow status of an issue
type IssueStatus string

const (
	IssueStatusOpen      IssueStatus = "OPEN"
	IssueStatusConfirmed IssueStatus = "CONFIRMED"
	IssueStatusReopened  IssueStatus = "REOPENED"
	IssueStatusResolved  IssueStatus = "RESOLVED"
	IssueStatusClosed    IssueStatus = "CLOSED"
)

// IssueStatuses lists every issue status
var IssueStatuses = []IssueStatus{IssueStatusOpen, IssueStatusConfirmed, IssueStatusReopened, IssueStatusResolved, IssueStatusClosed}

// Issue represents a single issue raised on a project
type Issue struct {
	Key          string      `json:"key"`
	Rule         string      `json:"rule"`
	Severity     Severity    `json:"severity"`
	Type         IssueType   `json:"type"`
	Status       IssueStatus `json:"status"`
	Component    string      `json:"component"`
	Line         *int        `json:"line,omitempty"`
	Message      string      `json:"message,omitempty"`
	Assignee     string      `json:"assignee,omitempty"`
	CreationDate time.Time   `json:"creationDate"`
	UpdateDate   time.Time   `json:"updateDate"`
	Effort       string      `json:"effort,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
}

// FacetValue is one bucket of a facet
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facet is a server-computed aggregate returned alongside a search
type Facet struct {
	Property string       `json:"property"`
	Values   []FacetValue `json:"values"`
}

// IssuePage is one page of an issue search
type IssuePage struct {
	Issues []Issue  `json:"issues"`
	Paging Paging   `json:"paging"`
	Facets []Facet  `json:"facets,omitempty"`
	Rules  []string `json:"rules,omitempty"`
}

// IssueReport represents a prioritized page of issues
type IssueReport struct {
	ProjectKey         string  `json:"projectKey"`
	Issues             []Issue `json:"issues"`
	Paging             Paging  `json:"paging"`
	Facets             []Facet `json:"facets,omitempty"`
	TotalEffortMinutes int     `json:"totalEffortMinutes"`
	TotalEffort        string  `json:"totalEffort"`
}

// Hotspot represents a code location flagged for manual security review
type Hotspot struct {
	Key                      string `json:"key"`
	Component                string `json:"component"`
	SecurityCategory         string `json:"securityCategory,omitempty"`
	VulnerabilityProbability string `json:"vulnerabilityProbability"`
	Status                   string `json:"status"`
	Resolution               string `json:"resolution,omitempty"`
	Line                     *int   `json:"line,omitempty"`
	Message                  string `json:"message,omitempty"`
	RuleKey                  string `json:"ruleKey,omitempty"`
}

// HotspotPage is one page of a hotspot search
type HotspotPage struct {
	Hotspots []Hotspot `json:"hotspots"`
	Paging   Paging    `json:"paging"`
}

// HotspotSummary groups the hotspots of a project by review probability
type HotspotSummary struct {
	Total         int            `json:"total"`
	ByProbability map[string]int `json:"byProbability"`
	Hotspots      []Hotspot      `json:"hotspots"`
}

// SecurityReport merges vulnerability issues and security hotspots.
// Hotspots is nil when the hotspot search was unavailable.
type SecurityReport struct {
	ProjectKey         string           `json:"projectKey"`
	Branch             string           `json:"branch,omitempty"`
	Vulnerabilities    []Issue          `json:"vulnerabilities"`
	VulnerabilityTotal int              `json:"vulnerabilityTotal"`
	BySeverity         map[Severity]int `json:"bySeverity"`
	Hotspots           *HotspotSummary  `json:"hotspots,omitempty"`
}
