package aggregator

import (
	"fmt"
	"strings"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/derive"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
	apperrors "github.com/kurihiro0119/sonar-quality-mcp/internal/errors"
)

// MaxPageSize is the largest page the quality service serves
const MaxPageSize = 500

// ProjectsQuery filters ListProjects
type ProjectsQuery struct {
	Search       string
	QualityGate  string
	Organization string
	Projects     []string
	Page         int
	PageSize     int
}

// Validate checks the query before any request is made
func (q ProjectsQuery) Validate() error {
	for _, key := range q.Projects {
		if err := validateProjectKey(key); err != nil {
			return err
		}
	}
	return validatePaging(q.Page, q.PageSize)
}

// MetricsQuery selects the current metrics of a project
type MetricsQuery struct {
	ProjectKey   string
	MetricKeys   []string
	Branch       string
	PullRequest  string
	Organization string
}

// Validate checks the query before any request is made
func (q MetricsQuery) Validate() error {
	if err := validateProjectKey(q.ProjectKey); err != nil {
		return err
	}
	return validateBranchOrPR(q.Branch, q.PullRequest)
}

// IssuesQuery filters GetIssues
type IssuesQuery struct {
	ProjectKey    string
	Branch        string
	PullRequest   string
	Organization  string
	Severities    []domain.Severity
	Types         []domain.IssueType
	Statuses      []domain.IssueStatus
	Tags          []string
	Assignees     []string
	CreatedAfter  string
	CreatedBefore string
	Resolved      *bool
	Page          int
	PageSize      int
}

// Validate checks the query before any request is made
func (q IssuesQuery) Validate() error {
	if err := validateProjectKey(q.ProjectKey); err != nil {
		return err
	}
	if err := validateBranchOrPR(q.Branch, q.PullRequest); err != nil {
		return err
	}
	if err := validateEnum("severities", q.Severities, domain.Severities); err != nil {
		return err
	}
	if err := validateEnum("types", q.Types, domain.IssueTypes); err != nil {
		return err
	}
	if err := validateEnum("statuses", q.Statuses, domain.IssueStatuses); err != nil {
		return err
	}
	return validatePaging(q.Page, q.PageSize)
}

// QualityGateQuery selects the gate status of a project
type QualityGateQuery struct {
	ProjectKey   string
	Branch       string
	PullRequest  string
	Organization string
}

// Validate checks the query before any request is made
func (q QualityGateQuery) Validate() error {
	if err := validateProjectKey(q.ProjectKey); err != nil {
		return err
	}
	return validateBranchOrPR(q.Branch, q.PullRequest)
}

// AnalysesQuery filters GetAnalysisHistory
type AnalysesQuery struct {
	ProjectKey   string
	Branch       string
	Category     string
	From         string
	To           string
	Organization string
	Page         int
	PageSize     int
}

// AnalysisCategories lists the event categories an analysis search accepts
var AnalysisCategories = []string{"VERSION", "OTHER", "QUALITY_PROFILE", "QUALITY_GATE", "DEFINITION_CHANGE", "ISSUE_DETECTION", "SQ_UPGRADE"}

// Validate checks the query before any request is made
func (q AnalysesQuery) Validate() error {
	if err := validateProjectKey(q.ProjectKey); err != nil {
		return err
	}
	if q.Category != "" {
		if err := validateEnum("category", []string{q.Category}, AnalysisCategories); err != nil {
			return err
		}
	}
	return validatePaging(q.Page, q.PageSize)
}

// TrendsQuery selects the metric history of a project
type TrendsQuery struct {
	ProjectKey   string
	Metrics      []string
	Branch       string
	From         string
	To           string
	Organization string
}

// Validate checks the query before any request is made
func (q TrendsQuery) Validate() error {
	return validateProjectKey(q.ProjectKey)
}

// RepositoryQuery selects the repository information of a project
type RepositoryQuery struct {
	ProjectKey   string
	Organization string
}

// Validate checks the query before any request is made
func (q RepositoryQuery) Validate() error {
	return validateProjectKey(q.ProjectKey)
}

// SecurityQuery filters GetSecurityAnalysis
type SecurityQuery struct {
	ProjectKey    string
	Branch        string
	Organization  string
	Severities    []domain.Severity
	HotspotStatus string
	PageSize      int
}

// HotspotStatuses lists the review states a hotspot search accepts
var HotspotStatuses = []string{"TO_REVIEW", "REVIEWED"}

// Validate checks the query before any request is made
func (q SecurityQuery) Validate() error {
	if err := validateProjectKey(q.ProjectKey); err != nil {
		return err
	}
	if err := validateEnum("severities", q.Severities, domain.Severities); err != nil {
		return err
	}
	if q.HotspotStatus != "" {
		if err := validateEnum("hotspot_status", []string{q.HotspotStatus}, HotspotStatuses); err != nil {
			return err
		}
	}
	return validatePaging(0, q.PageSize)
}

// HealthQuery selects the health overview of a project
type HealthQuery struct {
	ProjectKey   string
	Branch       string
	Organization string
}

// Validate checks the query before any request is made
func (q HealthQuery) Validate() error {
	return validateProjectKey(q.ProjectKey)
}

func validateProjectKey(key string) error {
	if key == "" {
		return apperrors.NewValidationError("project_key", "must not be empty")
	}
	if !derive.ValidProjectKey(key) {
		return apperrors.NewValidationError("project_key",
			fmt.Sprintf("%q must match [A-Za-z0-9_:.-] and be at most %d characters", key, derive.MaxProjectKeyLength))
	}
	return nil
}

func validateBranchOrPR(branch, pullRequest string) error {
	if branch != "" && pullRequest != "" {
		return apperrors.NewValidationError("branch", "branch and pull_request are mutually exclusive")
	}
	return nil
}

func validatePaging(page, pageSize int) error {
	if page < 0 {
		return apperrors.NewValidationError("page", "must be 1 or greater")
	}
	if pageSize < 0 || pageSize > MaxPageSize {
		return apperrors.NewValidationError("page_size", fmt.Sprintf("must be between 1 and %d", MaxPageSize))
	}
	return nil
}

func validateEnum[T ~string](field string, values []T, allowed []T) error {
	for _, v := range values {
		ok := false
		for _, a := range allowed {
			if v == a {
				ok = true
				break
			}
		}
		if !ok {
			names := make([]string, len(allowed))
			for i, a := range allowed {
				names[i] = string(a)
			}
			return apperrors.NewValidationError(field,
				fmt.Sprintf("%q is not one of %s", string(v), strings.Join(names, ", ")))
		}
	}
	return nil
}
