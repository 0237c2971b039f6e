// Package aggregatortest provides a testify mock of aggregator.Aggregator.
package aggregatortest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

// MockAggregator is a mock for aggregator.Aggregator
type MockAggregator struct {
	mock.Mock
}

var _ aggregator.Aggregator = (*MockAggregator)(nil)

func (m *MockAggregator) ListProjects(ctx context.Context, q aggregator.ProjectsQuery) (*domain.ProjectPage, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.(*domain.ProjectPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) GetProjectMetrics(ctx context.Context, q aggregator.MetricsQuery) (*domain.MetricSet, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.(*domain.MetricSet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) GetIssues(ctx context.Context, q aggregator.IssuesQuery) (*domain.IssueReport, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.(*domain.IssueReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) GetQualityGate(ctx context.Context, q aggregator.QualityGateQuery) (*domain.QualityGate, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.(*domain.QualityGate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) GetAnalysisHistory(ctx context.Context, q aggregator.AnalysesQuery) (*domain.AnalysisHistory, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.(*domain.AnalysisHistory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) GetMetricTrends(ctx context.Context, q aggregator.TrendsQuery) (*domain.TrendReport, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.(*domain.TrendReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) GetRepositoryInfo(ctx context.Context, q aggregator.RepositoryQuery) (*domain.RepositoryInfo, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.(*domain.RepositoryInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) GetSecurityAnalysis(ctx context.Context, q aggregator.SecurityQuery) (*domain.SecurityReport, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.(*domain.SecurityReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) GetProjectHealth(ctx context.Context, q aggregator.HealthQuery) (*domain.ProjectHealth, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.(*domain.ProjectHealth), args.Error(1)
	}
	return nil, args.Error(1)
}
