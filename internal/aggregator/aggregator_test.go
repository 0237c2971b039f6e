package aggregator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/collector"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
	apperrors "github.com/kurihiro0119/sonar-quality-mcp/internal/errors"
)

// MockCollector is a mock for collector.Collector
type MockCollector struct {
	mock.Mock
}

func (m *MockCollector) SearchProjects(ctx context.Context, opts collector.ProjectSearchOptions) (*domain.ProjectPage, error) {
	args := m.Called(ctx, opts)
	if v := args.Get(0); v != nil {
		return v.(*domain.ProjectPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollector) GetMeasures(ctx context.Context, opts collector.MeasuresOptions) (*domain.MetricSet, error) {
	args := m.Called(ctx, opts)
	if v := args.Get(0); v != nil {
		return v.(*domain.MetricSet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollector) SearchIssues(ctx context.Context, opts collector.IssueSearchOptions) (*domain.IssuePage, error) {
	args := m.Called(ctx, opts)
	if v := args.Get(0); v != nil {
		return v.(*domain.IssuePage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollector) SearchHotspots(ctx context.Context, opts collector.HotspotSearchOptions) (*domain.HotspotPage, error) {
	args := m.Called(ctx, opts)
	if v := args.Get(0); v != nil {
		return v.(*domain.HotspotPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollector) GetQualityGateStatus(ctx context.Context, opts collector.QualityGateOptions) (*domain.QualityGate, error) {
	args := m.Called(ctx, opts)
	if v := args.Get(0); v != nil {
		return v.(*domain.QualityGate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollector) SearchAnalyses(ctx context.Context, opts collector.AnalysisSearchOptions) (*domain.AnalysisPage, error) {
	args := m.Called(ctx, opts)
	if v := args.Get(0); v != nil {
		return v.(*domain.AnalysisPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollector) GetMeasuresHistory(ctx context.Context, opts collector.HistoryOptions) ([]domain.MetricTrend, error) {
	args := m.Called(ctx, opts)
	if v := args.Get(0); v != nil {
		return v.([]domain.MetricTrend), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollector) GetProjectLinks(ctx context.Context, projectKey string) ([]domain.ProjectLink, error) {
	args := m.Called(ctx, projectKey)
	if v := args.Get(0); v != nil {
		return v.([]domain.ProjectLink), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollector) ListBranches(ctx context.Context, projectKey string) ([]domain.Branch, error) {
	args := m.Called(ctx, projectKey)
	if v := args.Get(0); v != nil {
		return v.([]domain.Branch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollector) GetALMIntegration(ctx context.Context, projectKey string) (*domain.ALMIntegration, error) {
	args := m.Called(ctx, projectKey)
	if v := args.Get(0); v != nil {
		return v.(*domain.ALMIntegration), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestAggregator(coll *MockCollector) Aggregator {
	return NewAggregator(coll, Options{Organization: "acme"}, zap.NewNop().Sugar())
}

func widgetPage() *domain.ProjectPage {
	return &domain.ProjectPage{
		Projects: []domain.Project{{Key: "acme_widget", Name: "Widget"}},
		Paging:   domain.Paging{PageIndex: 1, PageSize: 100, Total: 1},
	}
}

func TestGetRepositoryInfo_OptionalFailuresLeaveBlocksAbsent(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchProjects", ctx, collector.ProjectSearchOptions{
		Organization: "acme",
		Projects:     []string{"acme_widget"},
	}).Return(widgetPage(), nil)
	coll.On("GetProjectLinks", ctx, "acme_widget").Return(nil, apperrors.NewUpstreamHTTPError(500, "boom", ""))
	coll.On("ListBranches", ctx, "acme_widget").Return([]domain.Branch{{Name: "main", IsMain: true}}, nil)
	coll.On("GetALMIntegration", ctx, "acme_widget").Return(nil, apperrors.NewNoResponseError(errors.New("timeout")))

	info, err := newTestAggregator(coll).GetRepositoryInfo(ctx, RepositoryQuery{ProjectKey: "acme_widget"})
	require.NoError(t, err)

	assert.Equal(t, "acme_widget", info.ProjectKey)
	assert.Equal(t, "Widget", info.ProjectName)
	assert.Nil(t, info.Links)
	assert.Nil(t, info.ALM)
	assert.Nil(t, info.Repository)
	coll.AssertExpectations(t)
}

func TestGetRepositoryInfo_FullRecord(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchProjects", ctx, mock.Anything).Return(widgetPage(), nil)
	coll.On("GetProjectLinks", ctx, "acme_widget").Return([]domain.ProjectLink{
		{Type: domain.LinkTypeHomepage, URL: "https://widget.acme.io"},
		{Type: domain.LinkTypeSCM, URL: "https://github.com/acme/widget.git"},
	}, nil)
	coll.On("ListBranches", ctx, "acme_widget").Return([]domain.Branch{
		{Name: "develop"},
		{Name: "main", IsMain: true},
	}, nil)
	coll.On("GetALMIntegration", ctx, "acme_widget").Return(&domain.ALMIntegration{Provider: "github", Identifier: "acme/widget"}, nil)

	info, err := newTestAggregator(coll).GetRepositoryInfo(ctx, RepositoryQuery{ProjectKey: "acme_widget"})
	require.NoError(t, err)

	require.NotNil(t, info.Links)
	assert.Equal(t, "https://widget.acme.io", info.Links.Homepage)
	assert.Equal(t, "https://github.com/acme/widget.git", info.Links.SCM)

	require.NotNil(t, info.Repository)
	assert.Equal(t, domain.ProviderGitHub, info.Repository.Provider)
	assert.Equal(t, "acme", info.Repository.Organization)
	assert.Equal(t, "widget", info.Repository.Name)
	assert.Equal(t, "main", info.Repository.MainBranch)
	assert.Equal(t, []string{"develop", "main"}, info.Repository.Branches)

	require.NotNil(t, info.ALM)
	assert.Equal(t, "acme/widget", info.ALM.Identifier)
}

func TestGetRepositoryInfo_BranchFailureKeepsRepository(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchProjects", ctx, mock.Anything).Return(widgetPage(), nil)
	coll.On("GetProjectLinks", ctx, "acme_widget").Return([]domain.ProjectLink{
		{Type: domain.LinkTypeSources, URL: "https://dev.azure.com/acme/widget/_git/widget"},
	}, nil)
	coll.On("ListBranches", ctx, "acme_widget").Return(nil, errors.New("forbidden"))
	coll.On("GetALMIntegration", ctx, "acme_widget").Return(nil, nil)

	info, err := newTestAggregator(coll).GetRepositoryInfo(ctx, RepositoryQuery{ProjectKey: "acme_widget"})
	require.NoError(t, err)

	require.NotNil(t, info.Repository)
	assert.Equal(t, domain.ProviderAzureDevOps, info.Repository.Provider)
	assert.Empty(t, info.Repository.Organization)
	assert.Empty(t, info.Repository.MainBranch)
	assert.Nil(t, info.ALM)
}

func TestGetRepositoryInfo_RequiredLookupFails(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchProjects", ctx, mock.Anything).Return(nil, apperrors.NewUpstreamHTTPError(403, "Insufficient privileges", ""))

	_, err := newTestAggregator(coll).GetRepositoryInfo(ctx, RepositoryQuery{ProjectKey: "acme_widget"})
	assert.True(t, apperrors.IsUpstreamHTTP(err))
	coll.AssertNotCalled(t, "GetProjectLinks", mock.Anything, mock.Anything)
}

func TestGetRepositoryInfo_UnknownProject(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchProjects", ctx, mock.Anything).Return(&domain.ProjectPage{}, nil)

	_, err := newTestAggregator(coll).GetRepositoryInfo(ctx, RepositoryQuery{ProjectKey: "acme_widget"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestValidationHappensBeforeAnyCall(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	agg := newTestAggregator(coll)

	_, err := agg.GetProjectMetrics(ctx, MetricsQuery{ProjectKey: "my project"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = agg.GetIssues(ctx, IssuesQuery{ProjectKey: "acme_widget", Severities: []domain.Severity{"URGENT"}})
	assert.True(t, apperrors.IsValidation(err))

	_, err = agg.GetIssues(ctx, IssuesQuery{ProjectKey: "acme_widget", PageSize: MaxPageSize + 1})
	assert.True(t, apperrors.IsValidation(err))

	_, err = agg.GetQualityGate(ctx, QualityGateQuery{ProjectKey: "acme_widget", Branch: "main", PullRequest: "4"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = agg.GetRepositoryInfo(ctx, RepositoryQuery{})
	assert.True(t, apperrors.IsValidation(err))

	coll.AssertNotCalled(t, "GetMeasures", mock.Anything, mock.Anything)
	coll.AssertNotCalled(t, "SearchIssues", mock.Anything, mock.Anything)
	coll.AssertNotCalled(t, "GetQualityGateStatus", mock.Anything, mock.Anything)
	coll.AssertNotCalled(t, "SearchProjects", mock.Anything, mock.Anything)
}

func TestGetIssues_SortsAndSumsEffort(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchIssues", ctx, mock.MatchedBy(func(o collector.IssueSearchOptions) bool {
		return o.ProjectKey == "acme_widget" && o.Organization == "acme"
	})).Return(&domain.IssuePage{
		Issues: []domain.Issue{
			{Key: "smell", Type: domain.IssueTypeCodeSmell, Severity: domain.SeverityMajor, Effort: "5min"},
			{Key: "vuln", Type: domain.IssueTypeVulnerability, Severity: domain.SeverityCritical, Effort: "1h"},
			{Key: "bug", Type: domain.IssueTypeBug, Severity: domain.SeverityBlocker, Effort: "1d 2h"},
			{Key: "noeffort", Type: domain.IssueTypeCodeSmell, Severity: domain.SeverityInfo},
		},
		Paging: domain.Paging{PageIndex: 1, PageSize: 100, Total: 4},
	}, nil)

	report, err := newTestAggregator(coll).GetIssues(ctx, IssuesQuery{ProjectKey: "acme_widget"})
	require.NoError(t, err)

	keys := make([]string, len(report.Issues))
	for i, is := range report.Issues {
		keys[i] = is.Key
	}
	assert.Equal(t, []string{"vuln", "bug", "smell", "noeffort"}, keys)
	assert.Equal(t, 5+60+1440+120, report.TotalEffortMinutes)
	assert.Equal(t, "1d 3h 5min", report.TotalEffort)
}

func TestGetIssues_ZeroIssues(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchIssues", ctx, mock.Anything).Return(&domain.IssuePage{}, nil)

	report, err := newTestAggregator(coll).GetIssues(ctx, IssuesQuery{ProjectKey: "acme_widget"})
	require.NoError(t, err)
	assert.NotNil(t, report.Issues)
	assert.Empty(t, report.Issues)
	assert.Zero(t, report.TotalEffortMinutes)
}

func TestGetSecurityAnalysis_HotspotFailureIsTolerated(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchIssues", ctx, mock.MatchedBy(func(o collector.IssueSearchOptions) bool {
		return len(o.Types) == 1 && o.Types[0] == domain.IssueTypeVulnerability
	})).Return(&domain.IssuePage{
		Issues: []domain.Issue{
			{Key: "a", Type: domain.IssueTypeVulnerability, Severity: domain.SeverityMinor},
			{Key: "b", Type: domain.IssueTypeVulnerability, Severity: domain.SeverityBlocker},
			{Key: "c", Type: domain.IssueTypeVulnerability, Severity: domain.SeverityMinor},
		},
		Paging: domain.Paging{Total: 3},
	}, nil)
	coll.On("SearchHotspots", ctx, mock.Anything).Return(nil, apperrors.NewUpstreamHTTPError(404, "Unknown url", ""))

	report, err := newTestAggregator(coll).GetSecurityAnalysis(ctx, SecurityQuery{ProjectKey: "acme_widget"})
	require.NoError(t, err)

	assert.Equal(t, 3, report.VulnerabilityTotal)
	assert.Equal(t, "b", report.Vulnerabilities[0].Key)
	assert.Equal(t, 2, report.BySeverity[domain.SeverityMinor])
	assert.Equal(t, 1, report.BySeverity[domain.SeverityBlocker])
	assert.Nil(t, report.Hotspots)
}

func TestGetSecurityAnalysis_WithHotspots(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchIssues", ctx, mock.Anything).Return(&domain.IssuePage{}, nil)
	coll.On("SearchHotspots", ctx, collector.HotspotSearchOptions{
		ProjectKey:   "acme_widget",
		Status:       "TO_REVIEW",
		Organization: "acme",
	}).Return(&domain.HotspotPage{
		Hotspots: []domain.Hotspot{
			{Key: "h1", VulnerabilityProbability: "HIGH"},
			{Key: "h2", VulnerabilityProbability: "LOW"},
			{Key: "h3", VulnerabilityProbability: "HIGH"},
		},
		Paging: domain.Paging{Total: 3},
	}, nil)

	report, err := newTestAggregator(coll).GetSecurityAnalysis(ctx, SecurityQuery{ProjectKey: "acme_widget", HotspotStatus: "TO_REVIEW"})
	require.NoError(t, err)

	require.NotNil(t, report.Hotspots)
	assert.Equal(t, 3, report.Hotspots.Total)
	assert.Equal(t, 2, report.Hotspots.ByProbability["HIGH"])
	assert.Empty(t, report.Vulnerabilities)
}

func TestGetSecurityAnalysis_IssueSearchIsRequired(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchIssues", ctx, mock.Anything).Return(nil, apperrors.NewNoResponseError(errors.New("dial tcp")))

	_, err := newTestAggregator(coll).GetSecurityAnalysis(ctx, SecurityQuery{ProjectKey: "acme_widget"})
	assert.True(t, apperrors.IsNoResponse(err))
	coll.AssertNotCalled(t, "SearchHotspots", mock.Anything, mock.Anything)
}

func TestGetAnalysisHistory_FirstIsLatest(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchAnalyses", ctx, mock.Anything).Return(&domain.AnalysisPage{
		Analyses: []domain.AnalysisEvent{{Key: "newest"}, {Key: "older"}},
	}, nil)

	history, err := newTestAggregator(coll).GetAnalysisHistory(ctx, AnalysesQuery{ProjectKey: "acme_widget"})
	require.NoError(t, err)
	require.NotNil(t, history.Latest)
	assert.Equal(t, "newest", history.Latest.Key)
	assert.Len(t, history.Analyses, 2)
}

func TestGetMetricTrends(t *testing.T) {
	ctx := context.Background()
	ten, twenty := 10.0, 20.0
	coll := new(MockCollector)
	coll.On("GetMeasuresHistory", ctx, mock.Anything).Return([]domain.MetricTrend{
		{Metric: "coverage", History: []domain.TrendPoint{{Value: &ten}, {}, {Value: &twenty}}},
		{Metric: "bugs", History: []domain.TrendPoint{{Value: &ten}}},
	}, nil)

	report, err := newTestAggregator(coll).GetMetricTrends(ctx, TrendsQuery{ProjectKey: "acme_widget"})
	require.NoError(t, err)
	require.Len(t, report.Trends, 2)

	assert.Equal(t, domain.DirectionUp, report.Trends[0].Summary.Direction)
	assert.Equal(t, 100.0, report.Trends[0].Summary.ChangePercent)
	assert.Equal(t, domain.DirectionStable, report.Trends[1].Summary.Direction)
	assert.Zero(t, report.Trends[1].Summary.ChangePercent)
}

func TestGetProjectHealth_OptionalPartsMayFail(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("GetMeasures", ctx, mock.Anything).Return(&domain.MetricSet{
		ProjectKey: "acme_widget",
		Measures: map[string]domain.MeasureValue{
			"sqale_index": domain.NewMeasureValue("1505"),
			"coverage":    domain.NewMeasureValue("81.4"),
		},
	}, nil)
	coll.On("GetQualityGateStatus", ctx, mock.Anything).Return(nil, errors.New("gate down"))
	coll.On("SearchAnalyses", ctx, mock.MatchedBy(func(o collector.AnalysisSearchOptions) bool {
		return o.PageSize == 1
	})).Return(&domain.AnalysisPage{Analyses: []domain.AnalysisEvent{{Key: "last"}}}, nil)

	health, err := newTestAggregator(coll).GetProjectHealth(ctx, HealthQuery{ProjectKey: "acme_widget"})
	require.NoError(t, err)

	assert.Equal(t, "1d 1h 5min", health.TechnicalDebt)
	assert.Nil(t, health.QualityGate)
	require.NotNil(t, health.LatestAnalysis)
	assert.Equal(t, "last", health.LatestAnalysis.Key)
}

func TestDefaultOrganizationCanBeOverridden(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollector)
	coll.On("SearchProjects", ctx, collector.ProjectSearchOptions{Organization: "other"}).Return(&domain.ProjectPage{}, nil)

	_, err := newTestAggregator(coll).ListProjects(ctx, ProjectsQuery{Organization: "other"})
	require.NoError(t, err)
	coll.AssertExpectations(t)
}
