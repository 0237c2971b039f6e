package collector

import (
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

// Wire shapes of the quality service responses.

type sonarProject struct {
	Key              string   `json:"key"`
	Name             string   `json:"name"`
	Visibility       string   `json:"visibility"`
	LastAnalysisDate string   `json:"lastAnalysisDate"`
	QualityGate      string   `json:"qualityGate"`
	Language         string   `json:"language"`
	Tags             []string `json:"tags"`
}

func (p sonarProject) toDomain() domain.Project {
	return domain.Project{
		Key:              p.Key,
		Name:             p.Name,
		Visibility:       domain.Visibility(p.Visibility),
		LastAnalysisDate: parseTimePtr(p.LastAnalysisDate),
		QualityGate:      p.QualityGate,
		Language:         p.Language,
		Tags:             p.Tags,
	}
}

type sonarIssue struct {
	Key          string   `json:"key"`
	Rule         string   `json:"rule"`
	Severity     string   `json:"severity"`
	Type         string   `json:"type"`
	Status       string   `json:"status"`
	Component    string   `json:"component"`
	Line         *int     `json:"line"`
	Message      string   `json:"message"`
	Assignee     string   `json:"assignee"`
	CreationDate string   `json:"creationDate"`
	UpdateDate   string   `json:"updateDate"`
	Effort       string   `json:"effort"`
	Debt         string   `json:"debt"`
	Tags         []string `json:"tags"`
}

func (i sonarIssue) toDomain() domain.Issue {
	effort := i.Effort
	if effort == "" {
		effort = i.Debt
	}
	return domain.Issue{
		Key:          i.Key,
		Rule:         i.Rule,
		Severity:     domain.Severity(i.Severity),
		Type:         domain.IssueType(i.Type),
		Status:       domain.IssueStatus(i.Status),
		Component:    i.Component,
		Line:         i.Line,
		Message:      i.Message,
		Assignee:     i.Assignee,
		CreationDate: parseTime(i.CreationDate),
		UpdateDate:   parseTime(i.UpdateDate),
		Effort:       effort,
		Tags:         i.Tags,
	}
}

type sonarFacet struct {
	Property string `json:"property"`
	Values   []struct {
		Val   string `json:"val"`
		Count int    `json:"count"`
	} `json:"values"`
}

func (f sonarFacet) toDomain() domain.Facet {
	facet := domain.Facet{
		Property: f.Property,
		Values:   make([]domain.FacetValue, 0, len(f.Values)),
	}
	for _, v := range f.Values {
		facet.Values = append(facet.Values, domain.FacetValue{Value: v.Val, Count: v.Count})
	}
	return facet
}

type sonarHotspot struct {
	Key                      string `json:"key"`
	Component                string `json:"component"`
	SecurityCategory         string `json:"securityCategory"`
	VulnerabilityProbability string `json:"vulnerabilityProbability"`
	Status                   string `json:"status"`
	Resolution               string `json:"resolution"`
	Line                     *int   `json:"line"`
	Message                  string `json:"message"`
	RuleKey                  string `json:"ruleKey"`
}

func (h sonarHotspot) toDomain() domain.Hotspot {
	return domain.Hotspot(h)
}

type sonarAnalysis struct {
	Key            string `json:"key"`
	Date           string `json:"date"`
	ProjectVersion string `json:"projectVersion"`
	BuildString    string `json:"buildString"`
	Revision       string `json:"revision"`
	DetectedCI     string `json:"detectedCI"`
	Events         []struct {
		Category    string `json:"category"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"events"`
}

func (a sonarAnalysis) toDomain() domain.AnalysisEvent {
	event := domain.AnalysisEvent{
		Key:            a.Key,
		Date:           parseTime(a.Date),
		ProjectVersion: a.ProjectVersion,
		BuildString:    a.BuildString,
		Revision:       a.Revision,
		DetectedCI:     a.DetectedCI,
	}
	for _, e := range a.Events {
		event.Events = append(event.Events, domain.AnalysisMarker{
			Category:    e.Category,
			Name:        e.Name,
			Description: e.Description,
		})
	}
	return event
}
