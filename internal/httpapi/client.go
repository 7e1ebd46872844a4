// Package httpapi is the HTTP client for a remote listing service. It
// implements the same query and CRUD contracts as the Postgres store, so
// the engine can run against either a local database or the marketplace
// API without changing callers.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/lychee-technology/vitrin"
)

// Config holds client settings.
type Config struct {
	BaseURL    string        `json:"baseUrl"`
	Timeout    time.Duration `json:"timeout"`
	RetryCount int           `json:"retryCount"`
	AuthToken  string        `json:"-"`
}

// DefaultConfig returns sane client defaults.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		Timeout:    10 * time.Second,
		RetryCount: 3,
	}
}

// Client talks to the listing service REST API. Reads are retried;
// create and update are sent exactly once so a slow response cannot
// produce duplicate listings. A circuit breaker over the query endpoints
// sheds load while the upstream is failing.
type Client struct {
	rest    *resty.Client
	breaker *Breaker
	logger  *zap.SugaredLogger
}

// NewClient builds a client from config. logger may be nil.
func NewClient(cfg Config, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = zap.S()
	}
	rest := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if r != nil && !isIdempotent(r.Request.Method, r.Request.URL) {
				return false
			}
			return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
		})
	if cfg.AuthToken != "" {
		rest.SetAuthToken(cfg.AuthToken)
	}
	return &Client{
		rest:    rest,
		breaker: NewBreaker(5, 30*time.Second, 15*time.Second),
		logger:  logger,
	}
}

func errUpstreamOpen() error {
	return vitrin.NewError(vitrin.ErrorTypeService, vitrin.ErrCodeServiceUnavailable,
		"listing service temporarily unavailable")
}

// observe feeds the breaker: transport errors and 5xx responses count as
// failures, everything else (including 404) proves the upstream alive.
func (c *Client) observe(resp *resty.Response, err error) {
	if err != nil || (resp != nil && resp.StatusCode() >= http.StatusInternalServerError) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

// isIdempotent reports whether a request may be replayed. The filter
// endpoint is a POST but carries a pure query payload.
func isIdempotent(method, url string) bool {
	if method == http.MethodGet {
		return true
	}
	return method == http.MethodPost && strings.HasSuffix(url, "/listings/filter")
}

// apiError is the error envelope the listing service returns.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (c *Client) wrapStatus(op string, resp *resty.Response, ref string) error {
	if resp.StatusCode() == http.StatusNotFound {
		return vitrin.NewListingNotFoundError(ref)
	}
	msg := resp.Status()
	if e, ok := resp.Error().(*apiError); ok && e.Message != "" {
		msg = e.Message
	}
	return vitrin.NewServiceError(op, resp.StatusCode(), fmt.Errorf("%s", msg))
}

// FilterListings implements vitrin.QueryService.
func (c *Client) FilterListings(ctx context.Context, payload *vitrin.QueryPayload) (*vitrin.PageResult, error) {
	if c.breaker.IsOpen() {
		return nil, errUpstreamOpen()
	}
	var page vitrin.PageResult
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&page).
		SetError(&apiError{}).
		Post("/api/v1/listings/filter")
	c.observe(resp, err)
	if err != nil {
		return nil, vitrin.NewServiceError("filter listings", 0, err)
	}
	if resp.IsError() {
		return nil, c.wrapStatus("filter listings", resp, "")
	}
	return &page, nil
}

// ListingByNo implements vitrin.QueryService.
func (c *Client) ListingByNo(ctx context.Context, listingNo string) (*vitrin.Listing, error) {
	if c.breaker.IsOpen() {
		return nil, errUpstreamOpen()
	}
	var l vitrin.Listing
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&l).
		SetError(&apiError{}).
		SetPathParam("listingNo", listingNo).
		Get("/api/v1/listings/{listingNo}")
	c.observe(resp, err)
	if err != nil {
		return nil, vitrin.NewServiceError("lookup listing by code", 0, err)
	}
	if resp.IsError() {
		return nil, c.wrapStatus("lookup listing by code", resp, listingNo)
	}
	return &l, nil
}

// MyListings implements vitrin.QueryService.
func (c *Client) MyListings(ctx context.Context, page, size int, categoryID vitrin.CategoryID) (*vitrin.PageResult, error) {
	if c.breaker.IsOpen() {
		return nil, errUpstreamOpen()
	}
	req := c.rest.R().
		SetContext(ctx).
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetQueryParam("size", fmt.Sprintf("%d", size)).
		SetError(&apiError{})
	if categoryID != "" {
		req.SetQueryParam("category", string(categoryID))
	}
	var result vitrin.PageResult
	resp, err := req.SetResult(&result).Get("/api/v1/my-listings")
	c.observe(resp, err)
	if err != nil {
		return nil, vitrin.NewServiceError("my listings", 0, err)
	}
	if resp.IsError() {
		return nil, c.wrapStatus("my listings", resp, "")
	}
	return &result, nil
}

// CategoryClient binds the client to one category, satisfying the
// vitrin.Service contract.
type CategoryClient struct {
	client   *Client
	category vitrin.CategoryID
}

// ServiceFor returns the CRUD service for one category.
func (c *Client) ServiceFor(category vitrin.CategoryID) *CategoryClient {
	return &CategoryClient{client: c, category: category}
}

// GetByID fetches one listing by its internal ID.
func (cc *CategoryClient) GetByID(ctx context.Context, id string) (*vitrin.Listing, error) {
	var l vitrin.Listing
	resp, err := cc.client.rest.R().
		SetContext(ctx).
		SetResult(&l).
		SetError(&apiError{}).
		SetPathParams(map[string]string{"category": string(cc.category), "id": id}).
		Get("/api/v1/{category}/listings/{id}")
	if err != nil {
		return nil, vitrin.NewServiceError("get listing", 0, err)
	}
	if resp.IsError() {
		return nil, cc.client.wrapStatus("get listing", resp, id)
	}
	return &l, nil
}

// Create submits a validated form state as a new listing.
func (cc *CategoryClient) Create(ctx context.Context, data map[string]any) (*vitrin.Listing, error) {
	var l vitrin.Listing
	resp, err := cc.client.rest.R().
		SetContext(ctx).
		SetBody(data).
		SetResult(&l).
		SetError(&apiError{}).
		SetPathParam("category", string(cc.category)).
		Post("/api/v1/{category}/listings")
	if err != nil {
		return nil, vitrin.NewServiceError("create listing", 0, err)
	}
	if resp.IsError() {
		return nil, cc.client.wrapStatus("create listing", resp, "")
	}
	cc.client.logger.Infow("listing created", "category", cc.category, "listingNo", l.ListingNo)
	return &l, nil
}

// Update submits a validated form state over an existing listing.
func (cc *CategoryClient) Update(ctx context.Context, id string, data map[string]any) (*vitrin.Listing, error) {
	var l vitrin.Listing
	resp, err := cc.client.rest.R().
		SetContext(ctx).
		SetBody(data).
		SetResult(&l).
		SetError(&apiError{}).
		SetPathParams(map[string]string{"category": string(cc.category), "id": id}).
		Put("/api/v1/{category}/listings/{id}")
	if err != nil {
		return nil, vitrin.NewServiceError("update listing", 0, err)
	}
	if resp.IsError() {
		return nil, cc.client.wrapStatus("update listing", resp, id)
	}
	return &l, nil
}
