package contentful

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

const (
	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second

	// PageSize is the Content Delivery API maximum page size.
	PageSize = 1000

	// IncludeDepth is the link depth returned in includes.
	IncludeDepth = 2

	// MaxRetries is the number of retries after a 429 response.
	MaxRetries = 3

	// HeaderRateLimitReset holds the seconds until the rate limit resets.
	HeaderRateLimitReset = "X-Contentful-RateLimit-Reset"

	// entryOrder keeps pagination stable across pages.
	entryOrder = "sys.createdAt,sys.id"
)

// APIError represents a Content Delivery API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contentful: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Client wraps the Content Delivery API with rate limiting and pagination.
type Client struct {
	http        *http.Client
	baseURL     string
	rateLimiter *RateLimiter
}

// NewClient creates an authenticated client for one space environment.
func NewClient(ctx context.Context, cfg domain.ContentfulSettings) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = DefaultTimeout

	env := cfg.Environment
	if env == "" {
		env = domain.DefaultContentfulEnvironment
	}

	return &Client{
		http:        httpClient,
		baseURL:     fmt.Sprintf("%s/spaces/%s/environments/%s", hostURL(cfg.Host), url.PathEscape(cfg.SpaceID), url.PathEscape(env)),
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

// hostURL adds https:// to a bare host name.
func hostURL(host string) string {
	if host == "" {
		host = domain.DefaultContentfulHost
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return strings.TrimRight(host, "/")
	}
	return "https://" + strings.TrimRight(host, "/")
}

// rawSys is the sys block of an entry, asset or content type.
type rawSys struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ContentType struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
	} `json:"contentType"`
}

// rawItem is an entry or asset with undecoded fields.
type rawItem struct {
	Sys    rawSys          `json:"sys"`
	Fields json.RawMessage `json:"fields"`
}

// entryPage is one page of GET /entries.
type entryPage struct {
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
	Items    []rawItem `json:"items"`
	Includes struct {
		Entry []rawItem `json:"Entry"`
		Asset []rawItem `json:"Asset"`
	} `json:"includes"`
}

type contentTypePage struct {
	Items []struct {
		Sys    rawSys `json:"sys"`
		Name   string `json:"name"`
		Fields []struct {
			ID string `json:"id"`
		} `json:"fields"`
	} `json:"items"`
}

// ListEntries fetches every page of entries of a content type.
func (c *Client) ListEntries(ctx context.Context, contentType string) ([]*entryPage, error) {
	var pages []*entryPage

	skip := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		query := url.Values{}
		query.Set("content_type", contentType)
		query.Set("include", strconv.Itoa(IncludeDepth))
		query.Set("limit", strconv.Itoa(PageSize))
		query.Set("skip", strconv.Itoa(skip))
		query.Set("order", entryOrder)

		var page entryPage
		if err := c.getJSON(ctx, "/entries", query, &page); err != nil {
			return nil, fmt.Errorf("list entries of %s: %w", contentType, err)
		}
		pages = append(pages, &page)

		skip += len(page.Items)
		if len(page.Items) == 0 || skip >= page.Total {
			break
		}
	}

	return pages, nil
}

// ListContentTypes fetches the content types of the environment.
func (c *Client) ListContentTypes(ctx context.Context) ([]domain.ContentTypeInfo, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(PageSize))

	var page contentTypePage
	if err := c.getJSON(ctx, "/content_types", query, &page); err != nil {
		return nil, fmt.Errorf("list content types: %w", err)
	}

	infos := make([]domain.ContentTypeInfo, 0, len(page.Items))
	for _, item := range page.Items {
		info := domain.ContentTypeInfo{ID: item.Sys.ID, Name: item.Name}
		for _, f := range item.Fields {
			info.Fields = append(info.Fields, f.ID)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// getJSON performs a rate-limited GET and decodes the response into dst.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", path, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			if attempt >= MaxRetries {
				return fmt.Errorf("%w: %s after %d retries", domain.ErrRateLimited, path, MaxRetries)
			}
			reset, _ := strconv.Atoi(resp.Header.Get(HeaderRateLimitReset))
			c.rateLimiter.RecordRateLimitError(reset)
			continue
		}

		err = decodeResponse(resp, endpoint, dst)
		_ = resp.Body.Close()
		return err
	}
}

func decodeResponse(resp *http.Response, endpoint string, dst any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiMessage(body, resp.Status),
			URL:        endpoint,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiMessage extracts the message of a Contentful error body.
func apiMessage(body []byte, fallback string) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return fallback
}

// IsUnauthorized checks if the error indicates an invalid token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}
