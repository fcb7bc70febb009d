// Package search talks to the farm directory search endpoint. It makes
// exactly one request per call: no retries, no backoff. Errors carry the
// full transport or HTTP detail so the UI can show them verbatim.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"farmdir/internal/domain"
	"farmdir/internal/urlcodec"
)

// RequestIDHeader carries the per-request id to the backend
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of a failed response body is quoted in errors
const maxErrorBody = 2048

// ErrInvalidPage is returned for page numbers below 1
var ErrInvalidPage = errors.New("page must be at least 1")

// Searcher fetches one page of farms for the given criteria
type Searcher interface {
	Search(ctx context.Context, criteria domain.Criteria, page int) (*domain.SearchPage, error)
}

// HTTPError is returned when the backend answers with a non-2xx status
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// APIError is returned when the backend answers with success=false
type APIError struct {
	URL     string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("search %s: backend reported failure", e.URL)
	}
	return fmt.Sprintf("search %s: backend reported failure: %s", e.URL, e.Message)
}

type requestIDKey struct{}

// WithRequestID attaches id to ctx; Search sends it as the request id
// instead of generating one
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by WithRequestID
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

type response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    *domain.SearchPage `json:"data"`
}

// Client is an HTTP implementation of Searcher
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Vocabulary domain.Vocabulary
	Logger     *slog.Logger
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:8787/api")
func NewClient(baseURL string, vocab domain.Vocabulary, logger *slog.Logger) *Client {
	if len(vocab) == 0 {
		vocab = domain.DefaultVocabulary
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Vocabulary: vocab,
		Logger:     logger,
	}
}

// SearchURL builds the request URL for criteria and page
func (c *Client) SearchURL(criteria domain.Criteria, page int) string {
	params := url.Values{}
	params.Set(urlcodec.ParamQuery, criteria.Query)
	params.Set(urlcodec.ParamPage, strconv.Itoa(page))
	distance := criteria.Distance
	if distance <= 0 {
		distance = domain.DefaultDistance
	}
	params.Set(urlcodec.ParamDistance, strconv.Itoa(distance))
	categories := criteria.Categories
	if categories.Count() == 0 {
		categories = c.Vocabulary.All()
	}
	params.Set(urlcodec.ParamCategories, c.Vocabulary.Join(categories))
	return fmt.Sprintf("%s/farms/search?%s", c.BaseURL, params.Encode())
}

// Search performs one search request
func (c *Client) Search(ctx context.Context, criteria domain.Criteria, page int) (*domain.SearchPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidPage, page)
	}

	u := c.SearchURL(criteria, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID, ok := RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	logger := c.Logger.With("request_id", requestID, "page", page)
	logger.Debug("search request", "url", u)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Warn("search transport failure", "error", err)
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		httpErr := &HTTPError{
			Method:     http.MethodGet,
			URL:        u,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
		logger.Warn("search http failure", "status", resp.StatusCode)
		return nil, httpErr
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response from %s: %w", u, err)
	}
	if !payload.Success {
		return nil, &APIError{URL: u, Message: payload.Message}
	}
	if payload.Data == nil {
		return nil, &APIError{URL: u, Message: "response has no data"}
	}

	logger.Debug("search response",
		"farms", len(payload.Data.Farms),
		"current_page", payload.Data.Pagination.CurrentPage,
		"total_pages", payload.Data.Pagination.TotalPages)
	return payload.Data, nil
}
