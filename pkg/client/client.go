package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	apperrors "github.com/kurihiro0119/sonar-quality-mcp/internal/errors"
)

// Timeout bounds every upstream request. It is the same for all resources.
const Timeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 64 << 10

// Client is the single HTTP entry point to the quality service API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// NewClient creates a new API client. The token is sent as a bearer
// credential on every request.
func NewClient(baseURL, token string, log *zap.SugaredLogger) (*Client, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, apperrors.NewRequestConfigError("invalid base URL", err)
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: Timeout})
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token, TokenType: "Bearer"},
	)
	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = Timeout

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		log:        log.Named("client"),
	}, nil
}

// BaseURL returns the normalized API root, always ending in /api
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request and decodes the JSON body into result
func (c *Client) Get(ctx context.Context, path string, params url.Values, result interface{}) error {
	return c.Request(ctx, http.MethodGet, path, params, result)
}

// Request sends a request to path below the API root and decodes the JSON
// response into result. Failures are returned as *errors.AppError with code
// UPSTREAM_HTTP_ERROR, NO_RESPONSE or REQUEST_CONFIG.
func (c *Client) Request(ctx context.Context, method, path string, params url.Values, result interface{}) error {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return apperrors.NewRequestConfigError(fmt.Sprintf("invalid request path %q", path), err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return apperrors.NewRequestConfigError("build request", err)
	}
	req.Header.Set("Accept", "application/json")

	reqID := uuid.NewString()
	start := time.Now()
	c.log.Debugw("upstream request",
		"request_id", reqID,
		"method", method,
		"path", u.Path,
		"query", u.RawQuery,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorw("upstream unreachable",
			"request_id", reqID,
			"path", u.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return apperrors.NewNoResponseError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := upstreamMessage(resp.StatusCode, body)
		c.log.Warnw("upstream error",
			"request_id", reqID,
			"path", u.Path,
			"status", resp.StatusCode,
			"message", message,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return apperrors.NewUpstreamHTTPError(resp.StatusCode, message, string(body))
	}

	c.log.Debugw("upstream response",
		"request_id", reqID,
		"path", u.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		if err == io.EOF {
			return nil
		}
		return apperrors.NewInternalError(fmt.Sprintf("decode response from %s", u.Path), err)
	}
	return nil
}

type errorEnvelope struct {
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// upstreamMessage extracts the service's error messages, falling back to the
// status text when the body carries none.
func upstreamMessage(status int, body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Errors) > 0 {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("base URL %q must be an absolute http(s) URL", raw)
	}
	base := strings.TrimRight(raw, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	return base, nil
}
