package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

func TestPriorityIsProductOfWeights(t *testing.T) {
	severityWeights := map[domain.Severity]int{
		domain.SeverityBlocker:  5,
		domain.SeverityCritical: 4,
		domain.SeverityMajor:    3,
		domain.SeverityMinor:    2,
		domain.SeverityInfo:     1,
		"UNKNOWN":               0,
	}
	typeWeights := map[domain.IssueType]int{
		domain.IssueTypeVulnerability:   4,
		domain.IssueTypeBug:             3,
		domain.IssueTypeCodeSmell:       1,
		domain.IssueTypeSecurityHotspot: 1,
	}

	for typ, tw := range typeWeights {
		for sev, sw := range severityWeights {
			assert.Equal(t, tw*sw, Priority(typ, sev), "%s/%s", typ, sev)
		}
	}
}

func TestSortByPriority(t *testing.T) {
	issues := []domain.Issue{
		{Key: "smell-major", Type: domain.IssueTypeCodeSmell, Severity: domain.SeverityMajor},
		{Key: "bug-minor", Type: domain.IssueTypeBug, Severity: domain.SeverityMinor},
		{Key: "vuln-critical", Type: domain.IssueTypeVulnerability, Severity: domain.SeverityCritical},
		{Key: "smell-blocker", Type: domain.IssueTypeCodeSmell, Severity: domain.SeverityBlocker},
		{Key: "bug-blocker", Type: domain.IssueTypeBug, Severity: domain.SeverityBlocker},
		{Key: "smell-major-2", Type: domain.IssueTypeCodeSmell, Severity: domain.SeverityMajor},
	}

	SortByPriority(issues)

	keys := make([]string, len(issues))
	for i, is := range issues {
		keys[i] = is.Key
	}
	// the two MAJOR code smells tie and keep their input order
	assert.Equal(t, []string{"vuln-critical", "bug-blocker", "bug-minor", "smell-blocker", "smell-major", "smell-major-2"}, keys)

	for i := 1; i < len(issues); i++ {
		prev := Priority(issues[i-1].Type, issues[i-1].Severity)
		cur := Priority(issues[i].Type, issues[i].Severity)
		assert.GreaterOrEqual(t, prev, cur)
	}
}
