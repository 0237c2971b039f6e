package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
	apperrors "github.com/kurihiro0119/sonar-quality-mcp/internal/errors"
)

// Handler handles API requests
type Handler struct {
	aggregator aggregator.Aggregator
	log        *zap.SugaredLogger
}

// NewHandler creates a new API handler
func NewHandler(agg aggregator.Aggregator, log *zap.SugaredLogger) *Handler {
	return &Handler{
		aggregator: agg,
		log:        log.Named("api"),
	}
}

// ListProjects returns the projects visible to the token
// GET /api/v1/projects
func (h *Handler) ListProjects(c *gin.Context) {
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	projects, err := h.aggregator.ListProjects(c.Request.Context(), aggregator.ProjectsQuery{
		Search:       c.Query("search"),
		QualityGate:  c.Query("quality_gate"),
		Organization: c.Query("organization"),
		Projects:     parseList(c, "projects"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": projects,
	})
}

// GetProjectMetrics returns the current metrics of a project
// GET /api/v1/projects/:key/metrics
func (h *Handler) GetProjectMetrics(c *gin.Context) {
	metrics, err := h.aggregator.GetProjectMetrics(c.Request.Context(), aggregator.MetricsQuery{
		ProjectKey:   c.Param("key"),
		MetricKeys:   parseList(c, "metrics"),
		Branch:       c.Query("branch"),
		PullRequest:  c.Query("pull_request"),
		Organization: c.Query("organization"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": metrics,
	})
}

// GetIssues returns the issues of a project ordered by priority
// GET /api/v1/projects/:key/issues
func (h *Handler) GetIssues(c *gin.Context) {
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}
	var resolved *bool
	if raw := c.Query("resolved"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, apperrors.NewValidationError("resolved", "must be true or false"))
			return
		}
		resolved = &b
	}

	report, err := h.aggregator.GetIssues(c.Request.Context(), aggregator.IssuesQuery{
		ProjectKey:    c.Param("key"),
		Branch:        c.Query("branch"),
		PullRequest:   c.Query("pull_request"),
		Organization:  c.Query("organization"),
		Severities:    parseEnumList[domain.Severity](c, "severities"),
		Types:         parseEnumList[domain.IssueType](c, "types"),
		Statuses:      parseEnumList[domain.IssueStatus](c, "statuses"),
		Tags:          parseList(c, "tags"),
		Assignees:     parseList(c, "assignees"),
		CreatedAfter:  c.Query("created_after"),
		CreatedBefore: c.Query("created_before"),
		Resolved:      resolved,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": report,
	})
}

// GetQualityGate returns the quality gate status of a project
// GET /api/v1/projects/:key/quality-gate
func (h *Handler) GetQualityGate(c *gin.Context) {
	gate, err := h.aggregator.GetQualityGate(c.Request.Context(), aggregator.QualityGateQuery{
		ProjectKey:   c.Param("key"),
		Branch:       c.Query("branch"),
		PullRequest:  c.Query("pull_request"),
		Organization: c.Query("organization"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gate,
	})
}

// GetAnalysisHistory returns the analyses of a project
// GET /api/v1/projects/:key/analyses
func (h *Handler) GetAnalysisHistory(c *gin.Context) {
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	history, err := h.aggregator.GetAnalysisHistory(c.Request.Context(), aggregator.AnalysesQuery{
		ProjectKey:   c.Param("key"),
		Branch:       c.Query("branch"),
		Category:     strings.ToUpper(c.Query("category")),
		From:         c.Query("from"),
		To:           c.Query("to"),
		Organization: c.Query("organization"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": history,
	})
}

// GetMetricTrends returns metric history with a trend per metric
// GET /api/v1/projects/:key/trends
func (h *Handler) GetMetricTrends(c *gin.Context) {
	report, err := h.aggregator.GetMetricTrends(c.Request.Context(), aggregator.TrendsQuery{
		ProjectKey:   c.Param("key"),
		Metrics:      parseList(c, "metrics"),
		Branch:       c.Query("branch"),
		From:         c.Query("from"),
		To:           c.Query("to"),
		Organization: c.Query("organization"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": report,
	})
}

// GetRepositoryInfo returns where the code of a project lives
// GET /api/v1/projects/:key/repository
func (h *Handler) GetRepositoryInfo(c *gin.Context) {
	info, err := h.aggregator.GetRepositoryInfo(c.Request.Context(), aggregator.RepositoryQuery{
		ProjectKey:   c.Param("key"),
		Organization: c.Query("organization"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": info,
	})
}

// GetSecurityAnalysis returns vulnerabilities and security hotspots
// GET /api/v1/projects/:key/security
func (h *Handler) GetSecurityAnalysis(c *gin.Context) {
	_, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	report, err := h.aggregator.GetSecurityAnalysis(c.Request.Context(), aggregator.SecurityQuery{
		ProjectKey:    c.Param("key"),
		Branch:        c.Query("branch"),
		Organization:  c.Query("organization"),
		Severities:    parseEnumList[domain.Severity](c, "severities"),
		HotspotStatus: strings.ToUpper(c.Query("hotspot_status")),
		PageSize:      pageSize,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": report,
	})
}

// GetProjectHealth returns a health overview of a project
// GET /api/v1/projects/:key/health
func (h *Handler) GetProjectHealth(c *gin.Context) {
	health, err := h.aggregator.GetProjectHealth(c.Request.Context(), aggregator.HealthQuery{
		ProjectKey:   c.Param("key"),
		Branch:       c.Query("branch"),
		Organization: c.Query("organization"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": health,
	})
}

// HealthCheck returns the health status of the API
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// parsePaging reads page and page_size. It answers 400 itself on bad input.
func parsePaging(c *gin.Context) (page, pageSize int, ok bool) {
	for _, p := range []struct {
		key string
		dst *int
	}{{"page", &page}, {"page_size", &pageSize}} {
		raw := c.Query(p.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, apperrors.NewValidationError(p.key, "must be a number"))
			return 0, 0, false
		}
		*p.dst = v
	}
	return page, pageSize, true
}

// parseList accepts repeated and comma-separated query values
func parseList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func parseEnumList[T ~string](c *gin.Context, key string) []T {
	items := parseList(c, key)
	if len(items) == 0 {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = T(strings.ToUpper(item))
	}
	return out
}

// statusFor maps an application error code to an HTTP status
func statusFor(code apperrors.ErrCode) int {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUpstreamHTTP:
		return http.StatusBadGateway
	case apperrors.ErrCodeNoResponse:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// respondError sends an error response and logs server-side failures
func (h *Handler) respondError(c *gin.Context, err error) {
	status := writeError(c, err)
	if status >= http.StatusInternalServerError {
		h.log.Errorw("request failed",
			"path", c.Request.URL.Path,
			"status", status,
			"error", err,
		)
	}
}

func writeError(c *gin.Context, err error) int {
	if appErr, ok := apperrors.As(err); ok {
		status := statusFor(appErr.Code)
		body := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if appErr.Field != "" {
			body["field"] = appErr.Field
		}
		if appErr.Status != 0 {
			body["upstreamStatus"] = appErr.Status
		}
		c.JSON(status, gin.H{
			"error": body,
		})
		return status
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrCodeInternal,
			"message": err.Error(),
		},
	})
	return http.StatusInternalServerError
}
