package mp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"crystalview/internal/crystal"
)

const (
	// DefaultEndpoint is the Materials Project API root.
	DefaultEndpoint = "https://api.materialsproject.org"

	// DefaultTimeout bounds one summary request.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize caps the response body; structure documents of
	// large cells stay well below it.
	DefaultMaxBodySize = 16 * 1024 * 1024

	summaryPath   = "/materials/summary/"
	summaryFields = "material_id,formula_pretty,structure,symmetry"
	userAgent     = "crystalview"
)

var (
	// ErrNoAPIKey is returned when the client has no API key configured.
	ErrNoAPIKey = errors.New("no Materials Project API key configured (set MP_API_KEY or api_key in the config file)")

	// ErrNotFound is returned when the API knows no material with the ID.
	ErrNotFound = errors.New("material not found")

	// ErrEmptyID is returned for a blank identifier.
	ErrEmptyID = errors.New("empty material id")
)

// APIError is a non-200 answer from the API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("materials project: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
	}
	return fmt.Sprintf("materials project: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Client fetches structure records from the Materials Project API.
type Client struct {
	endpoint    string
	apiKey      string
	httpClient  *http.Client
	logger      *zap.Logger
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API root, e.g. for a mirror or a test server.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = strings.TrimRight(endpoint, "/") }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:    DefaultEndpoint,
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		logger:      zap.NewNop(),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type summaryResponse struct {
	Data []summaryDoc `json:"data"`
}

type summaryDoc struct {
	MaterialID    string          `json:"material_id"`
	FormulaPretty string          `json:"formula_pretty"`
	Structure     json.RawMessage `json:"structure"`
	Symmetry      struct {
		Symbol        string `json:"symbol"`
		Number        int    `json:"number"`
		CrystalSystem string `json:"crystal_system"`
	} `json:"symmetry"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// Structure fetches the structure of one material.
func (c *Client) Structure(ctx context.Context, id string) (*crystal.Structure, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("material_ids", id)
	q.Set("_fields", summaryFields)
	q.Set("_limit", "1")
	reqURL := c.endpoint + summaryPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	c.logger.Debug("fetching structure", zap.String("material_id", id), zap.String("endpoint", c.endpoint))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("structure response",
		zap.String("material_id", id),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: detail(body)}
	}

	var sr summaryResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	if len(sr.Data) == 0 || len(sr.Data[0].Structure) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	doc := sr.Data[0]
	s, err := crystal.DecodeStructure(doc.Structure)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	s.MaterialID = id
	if doc.MaterialID != "" {
		s.MaterialID = doc.MaterialID
	}
	s.Formula = doc.FormulaPretty
	s.SpaceGroup = crystal.SpaceGroup{
		Symbol:        doc.Symmetry.Symbol,
		Number:        doc.Symmetry.Number,
		CrystalSystem: doc.Symmetry.CrystalSystem,
	}
	return s, nil
}

// detail extracts the API's error detail, which is either a string or a
// list of validation errors.
func detail(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || len(er.Detail) == 0 {
		return strings.TrimSpace(string(body[:min(len(body), 200)]))
	}
	var s string
	if err := json.Unmarshal(er.Detail, &s); err == nil {
		return s
	}
	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(er.Detail, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, d := range list {
			msgs = append(msgs, d.Msg)
		}
		return strings.Join(msgs, "; ")
	}
	return string(er.Detail)
}
