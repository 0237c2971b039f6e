package collector

import (
	"context"
	"net/url"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

// DefaultPageSize is used by every paginated fetcher when none is given
const DefaultPageSize = 100

// DefaultMetricKeys covers size, complexity, coverage, duplication, the three
// ratings and technical debt.
var DefaultMetricKeys = []string{
	"ncloc",
	"lines",
	"complexity",
	"cognitive_complexity",
	"coverage",
	"duplicated_lines_density",
	"bugs",
	"vulnerabilities",
	"code_smells",
	"security_hotspots",
	"reliability_rating",
	"security_rating",
	"sqale_rating",
	"sqale_index",
}

// DefaultAdditionalFields is sent with every issue search
const DefaultAdditionalFields = "_all"

// AdditionalFields lists the values the issue search accepts for additionalFields
var AdditionalFields = map[string]bool{
	"_all":                      true,
	"comments":                  true,
	"languages":                 true,
	"rules":                     true,
	"ruleDescriptionContextKey": true,
	"transitions":               true,
	"actions":                   true,
	"users":                     true,
}

// DefaultIssueFacets is requested with every issue search
var DefaultIssueFacets = []string{"severities", "types"}

// Requester performs a GET against the quality service API
type Requester interface {
	Get(ctx context.Context, path string, params url.Values, result interface{}) error
}

// Collector defines the interface for fetching quality data. Each method owns
// exactly one upstream resource; errors are returned untouched.
type Collector interface {
	// SearchProjects lists projects
	SearchProjects(ctx context.Context, opts ProjectSearchOptions) (*domain.ProjectPage, error)

	// GetMeasures retrieves the current value of metrics for a component
	GetMeasures(ctx context.Context, opts MeasuresOptions) (*domain.MetricSet, error)

	// SearchIssues searches issues of a project
	SearchIssues(ctx context.Context, opts IssueSearchOptions) (*domain.IssuePage, error)

	// SearchHotspots searches security hotspots of a project
	SearchHotspots(ctx context.Context, opts HotspotSearchOptions) (*domain.HotspotPage, error)

	// GetQualityGateStatus retrieves the quality gate status of a project
	GetQualityGateStatus(ctx context.Context, opts QualityGateOptions) (*domain.QualityGate, error)

	// SearchAnalyses retrieves the analyses of a project, newest first
	SearchAnalyses(ctx context.Context, opts AnalysisSearchOptions) (*domain.AnalysisPage, error)

	// GetMeasuresHistory retrieves the history of metrics for a component
	GetMeasuresHistory(ctx context.Context, opts HistoryOptions) ([]domain.MetricTrend, error)

	// GetProjectLinks retrieves the links attached to a project
	GetProjectLinks(ctx context.Context, projectKey string) ([]domain.ProjectLink, error)

	// ListBranches retrieves the analyzed branches of a project
	ListBranches(ctx context.Context, projectKey string) ([]domain.Branch, error)

	// GetALMIntegration retrieves the DevOps platform binding of a project.
	// It returns nil without error when the project has none.
	GetALMIntegration(ctx context.Context, projectKey string) (*domain.ALMIntegration, error)
}

// ProjectSearchOptions filters a project search
type ProjectSearchOptions struct {
	Search       string
	QualityGate  string
	Organization string
	Projects     []string
	Page         int
	PageSize     int
}

// MeasuresOptions selects the metrics of a component
type MeasuresOptions struct {
	Component    string
	MetricKeys   []string
	Branch       string
	PullRequest  string
	Organization string
}

// IssueSearchOptions filters an issue search
type IssueSearchOptions struct {
	ProjectKey       string
	Branch           string
	PullRequest      string
	Organization     string
	Severities       []domain.Severity
	Types            []domain.IssueType
	Statuses         []domain.IssueStatus
	Tags             []string
	Assignees        []string
	CreatedAfter     string
	CreatedBefore    string
	Resolved         *bool
	AdditionalFields []string
	Facets           []string
	Page             int
	PageSize         int
}

// HotspotSearchOptions filters a hotspot search
type HotspotSearchOptions struct {
	ProjectKey   string
	Branch       string
	Status       string
	Organization string
	Page         int
	PageSize     int
}

// QualityGateOptions selects the gate status to read
type QualityGateOptions struct {
	ProjectKey   string
	Branch       string
	PullRequest  string
	Organization string
}

// AnalysisSearchOptions filters an analysis search
type AnalysisSearchOptions struct {
	ProjectKey   string
	Branch       string
	Category     string
	From         string
	To           string
	Organization string
	Page         int
	PageSize     int
}

// HistoryOptions selects the metric history of a component
type HistoryOptions struct {
	Component    string
	Metrics      []string
	Branch       string
	From         string
	To           string
	Organization string
}
