package derive

import (
	"sort"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

// TypeWeight ranks issue types: vulnerabilities first, then bugs.
func TypeWeight(t domain.IssueType) int {
	switch t {
	case domain.IssueTypeVulnerability:
		return 4
	case domain.IssueTypeBug:
		return 3
	default:
		return 1
	}
}

// SeverityWeight ranks severities from BLOCKER (5) to INFO (1); unknown is 0.
func SeverityWeight(s domain.Severity) int {
	switch s {
	case domain.SeverityBlocker:
		return 5
	case domain.SeverityCritical:
		return 4
	case domain.SeverityMajor:
		return 3
	case domain.SeverityMinor:
		return 2
	case domain.SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Priority scores an issue for ordering.
func Priority(t domain.IssueType, s domain.Severity) int {
	return TypeWeight(t) * SeverityWeight(s)
}

// SortByPriority orders issues by descending priority in place. Issues of equal
// priority keep their relative order.
func SortByPriority(issues []domain.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return Priority(issues[i].Type, issues[i].Severity) > Priority(issues[j].Type, issues[j].Severity)
	})
}
