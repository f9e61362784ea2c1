package biblebrain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"biblefetch/internal/catalog"
	"biblefetch/internal/fileset"
	"biblefetch/internal/services"
)

const (
	defaultBaseURL     = "https://4.dbt.io/api"
	apiVersion         = "4"
	defaultHTTPTimeout = 30 * time.Second
)

// Client wraps the Bible Brain content API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the Bible Brain client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient constructs a Bible Brain API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Pagination mirrors the meta.pagination block on list responses.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
}

// BiblesPage is one page of the bible catalog listing.
type BiblesPage struct {
	Records    []catalog.Record
	Pagination Pagination
}

// ListBibles fetches one page of the bible catalog. Pages start at 1.
func (c *Client) ListBibles(ctx context.Context, page, limit int) (BiblesPage, error) {
	var empty BiblesPage
	if c.apiKey == "" {
		return empty, services.Wrap(services.ErrConfiguration, "catalog", "list bibles", "api key required", nil)
	}
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "bibles", query, true)
	if err != nil {
		return empty, services.Wrap(nil, "catalog", "list bibles", fmt.Sprintf("page %d", page), err)
	}

	var envelope struct {
		Data []catalog.Record `json:"data"`
		Meta struct {
			Pagination Pagination `json:"pagination"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return empty, services.Wrap(services.ErrValidation, "catalog", "list bibles", "decode response", err)
	}
	return BiblesPage{Records: envelope.Data, Pagination: envelope.Meta.Pagination}, nil
}

// MediaPath looks up the CDN path for one chapter of a fileset. An empty
// path with a nil error means the API holds no content for that chapter,
// which is a normal catalog gap.
func (c *Client) MediaPath(ctx context.Context, filesetID, book string, chapter int) (string, error) {
	if c.apiKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "download", "media path", "api key required", nil)
	}

	endpoint := fmt.Sprintf("bibles/filesets/%s/%s/%d", url.PathEscape(filesetID), url.PathEscape(book), chapter)
	body, err := c.get(ctx, endpoint, nil, false)
	if err != nil {
		return "", services.Wrap(nil, "download", "media path", filesetID, err)
	}

	var envelope struct {
		Data []struct {
			Path string `json:"path"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", services.Wrap(services.ErrValidation, "download", "media path", "decode response", err)
	}
	if len(envelope.Data) == 0 {
		return "", nil
	}
	return envelope.Data[0].Path, nil
}

// Timestamps fetches verse timing rows for one chapter. Fileset ids carry
// encoding suffixes the timing endpoint does not accept, so the id is
// normalized first. A nil slice with a nil error means no timing exists.
func (c *Client) Timestamps(ctx context.Context, filesetID, book string, chapter int) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "download", "timestamps", "api key required", nil)
	}

	base := fileset.NormalizeID(filesetID)
	endpoint := fmt.Sprintf("timestamps/%s/%s/%d", url.PathEscape(base), url.PathEscape(book), chapter)
	body, err := c.get(ctx, endpoint, nil, false)
	if err != nil {
		return nil, services.Wrap(nil, "download", "timestamps", base, err)
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, services.Wrap(services.ErrValidation, "download", "timestamps", "decode response", err)
	}
	if len(envelope.Error) > 0 {
		return nil, nil
	}
	trimmed := strings.TrimSpace(string(envelope.Data))
	if trimmed == "" || trimmed == "null" || trimmed == "[]" {
		return nil, nil
	}
	return envelope.Data, nil
}

// FetchMedia downloads the bytes behind a CDN path returned by MediaPath.
func (c *Client) FetchMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build media request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read media body: %w", err)
	}
	return data, nil
}

// get performs one API request. Most endpoints take the key as a Bearer
// token; the fileset and timestamp endpoints only accept it as a query
// parameter alongside an explicit version.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, bearer bool) ([]byte, error) {
	requestURL, err := url.JoinPath(c.baseURL, endpoint)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	if query == nil {
		query = url.Values{}
	}
	if !bearer {
		query.Set("key", c.apiKey)
		query.Set("v", apiVersion)
	}
	if encoded := query.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}
	return io.ReadAll(resp.Body)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	detail := strings.TrimSpace(string(body))
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: api returned %d: %s", services.ErrUnauthorized, resp.StatusCode, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: api returned 404: %s", services.ErrNotFound, detail)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: api returned %d: %s", services.ErrTimeout, resp.StatusCode, detail)
	default:
		return fmt.Errorf("api returned %d: %s", resp.StatusCode, detail)
	}
}
