package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	derr "github.com/tojlon/Soccer-Score/internal/domain/errors"
	"github.com/tojlon/Soccer-Score/internal/domain/models"
	"github.com/tojlon/Soccer-Score/internal/infrastructures/footballdata/dto"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "https://api.football-data.org/v4"

	authHeader   = "X-Auth-Token"
	userAgent    = "soccer-score/1.0"
	maxBodyBytes = 8 << 20
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxBody    int64
}

type MatchesResult struct {
	Body  dto.MatchesResponse
	Raw   []byte
	Quota models.Quota
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}

	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
		maxBody:    maxBodyBytes,
	}
}

// NewHTTPClient returns a client whose transport reports outgoing spans.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func (c *Client) GetMatches(ctx context.Context, competitionID models.CompetitionID) (MatchesResult, error) {
	reqURL, err := c.buildMatchesURL(competitionID)
	if err != nil {
		return MatchesResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return MatchesResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(authHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return MatchesResult{}, err
		}
		return MatchesResult{}, fmt.Errorf("%w: do request: %v", derr.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return MatchesResult{}, fmt.Errorf("%w: read body: %v", derr.ErrSourceUnavailable, err)
	}
	if int64(len(raw)) > c.maxBody {
		return MatchesResult{}, fmt.Errorf("%w: response too large: over %d bytes", derr.ErrSourceUnavailable, c.maxBody)
	}

	if resp.StatusCode != http.StatusOK {
		return MatchesResult{}, statusError(resp.StatusCode, raw)
	}

	var body dto.MatchesResponse
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return MatchesResult{}, fmt.Errorf("decode response: %w", err)
	}

	return MatchesResult{
		Body:  body,
		Raw:   raw,
		Quota: parseQuota(resp.Header),
	}, nil
}

func (c *Client) buildMatchesURL(competitionID models.CompetitionID) (string, error) {
	u, err := url.Parse(c.baseURL + "/matches")
	if err != nil {
		return "", fmt.Errorf("parse football-data base url: %w", err)
	}

	q := u.Query()
	q.Set("competitions", strconv.Itoa(int(competitionID)))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func statusError(code int, raw []byte) error {
	statusErr := &derr.StatusError{Code: code}

	var payload dto.ErrorResponse
	if len(raw) > 0 && sonic.Unmarshal(raw, &payload) == nil {
		statusErr.Message = strings.TrimSpace(payload.Message)
	}

	return statusErr
}

func parseQuota(h http.Header) models.Quota {
	return models.Quota{
		AvailableMinute: headerInt(h, "X-Requests-Available-Minute"),
		ResetSeconds:    headerInt(h, "X-RequestCounter-Reset"),
	}
}

func headerInt(h http.Header, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(h.Get(key)))
	if err != nil {
		return -1
	}
	return v
}
