package aggregator

import (
	"context"
	"sync"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/collector"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/derive"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

// debtMetric holds the technical debt in minutes
const debtMetric = "sqale_index"

// GetProjectHealth combines current metrics with the gate status and the
// latest analysis. Only the metrics are required.
func (a *aggregator) GetProjectHealth(ctx context.Context, q HealthQuery) (*domain.ProjectHealth, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	org := a.organization(q.Organization)

	metrics, err := a.collector.GetMeasures(ctx, collector.MeasuresOptions{
		Component:    q.ProjectKey,
		Branch:       q.Branch,
		Organization: org,
	})
	if err != nil {
		return nil, err
	}

	health := &domain.ProjectHealth{
		ProjectKey: q.ProjectKey,
		Branch:     q.Branch,
		Metrics:    metrics,
	}
	if debt, ok := metrics.Value(debtMetric); ok {
		if minutes, err := derive.ParseDuration(debt.Raw); err == nil {
			health.TechnicalDebt = derive.FormatDuration(minutes)
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		gate, err := a.collector.GetQualityGateStatus(ctx, collector.QualityGateOptions{
			ProjectKey:   q.ProjectKey,
			Branch:       q.Branch,
			Organization: org,
		})
		if err != nil {
			a.log.Warnw("quality gate unavailable", "project", q.ProjectKey, "error", err)
			return
		}
		gate.ProjectKey = q.ProjectKey
		health.QualityGate = gate
	}()
	go func() {
		defer wg.Done()
		page, err := a.collector.SearchAnalyses(ctx, collector.AnalysisSearchOptions{
			ProjectKey:   q.ProjectKey,
			Branch:       q.Branch,
			Organization: org,
			PageSize:     1,
		})
		if err != nil {
			a.log.Warnw("latest analysis unavailable", "project", q.ProjectKey, "error", err)
			return
		}
		if len(page.Analyses) > 0 {
			latest := page.Analyses[0]
			health.LatestAnalysis = &latest
		}
	}()
	wg.Wait()

	return health, nil
}
