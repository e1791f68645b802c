package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kassa/internal/errors"
	"kassa/internal/log"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Service is the set of server calls the checkout modes depend on. Each
// call either returns the decoded payload or a *errors.RequestError that
// carries the status code and raw body.
type Service interface {
	ItemSearch(ctx context.Context, criteria SearchCriteria) ([]Item, error)
	ItemEdit(ctx context.Context, item Item) (Item, error)
	ItemList(ctx context.Context, vendor int) ([]Item, error)
	VendorGet(ctx context.Context, vendor int) (Vendor, error)
}

// Operation names, also the endpoint paths below the API root.
const (
	OpItemSearch = "item/search"
	OpItemEdit   = "item/edit"
	OpItemList   = "item/list"
	OpVendorGet  = "vendor/get"
)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 4 << 20

// Client talks to the checkout API over HTTP.
type Client struct {
	root    *url.URL
	http    *http.Client
	timeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the server at serverURL. With a non-empty
// event slug the API root is <serverURL>/kirppu/<event>/api/checkout/,
// otherwise <serverURL>/api/checkout/.
func NewClient(serverURL, event string, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.NewConfigError("invalid server url", "server.url", errors.InvalidConfig, err)
	}

	path := "/api/checkout/"
	if event != "" {
		path = "/kirppu/" + url.PathEscape(event) + path
	}
	root := *base
	root.Path = base.Path + path
	root.RawPath = ""

	c := &Client{
		root:    &root,
		http:    &http.Client{},
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Root returns the API root URL.
func (c *Client) Root() string {
	return c.root.String()
}

// ItemSearch runs a search with the given criteria.
func (c *Client) ItemSearch(ctx context.Context, criteria SearchCriteria) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, OpItemSearch, criteria.Values(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ItemEdit saves the price and state of item and returns the server's copy.
func (c *Client) ItemEdit(ctx context.Context, item Item) (Item, error) {
	form := url.Values{}
	form.Set("code", item.Code)
	form.Set("price", item.Price.Decimal())
	form.Set("state", item.State)

	var out Item
	if err := c.do(ctx, http.MethodPost, OpItemEdit, form, &out); err != nil {
		return Item{}, err
	}
	return out, nil
}

// ItemList returns every item of a vendor.
func (c *Client) ItemList(ctx context.Context, vendor int) ([]Item, error) {
	q := url.Values{}
	q.Set("vendor", strconv.Itoa(vendor))

	var items []Item
	if err := c.do(ctx, http.MethodGet, OpItemList, q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// VendorGet fetches a vendor by id.
func (c *Client) VendorGet(ctx context.Context, vendor int) (Vendor, error) {
	q := url.Values{}
	q.Set("id", strconv.Itoa(vendor))

	var v Vendor
	if err := c.do(ctx, http.MethodGet, OpVendorGet, q, &v); err != nil {
		return Vendor{}, err
	}
	return v, nil
}

func (c *Client) do(ctx context.Context, method, op string, params url.Values, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.root.ResolveReference(&url.URL{Path: op})
	var body io.Reader
	if method == http.MethodGet {
		endpoint.RawQuery = params.Encode()
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return errors.NewRequestError(op, 0, err.Error(), err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	entry := log.LogWithFields(log.F("op", op), log.F("request_id", requestID))
	entry.Debug("API request")

	resp, err := c.http.Do(req)
	if err != nil {
		reqErr := errors.NewRequestError(op, 0, err.Error(), err)
		log.LogWithError(reqErr).WithField("request_id", requestID).Warn("API transport failure")
		return reqErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return errors.NewRequestError(op, resp.StatusCode, err.Error(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := errors.NewRequestError(op, resp.StatusCode, string(raw), nil)
		log.LogWithError(reqErr).WithField("request_id", requestID).Info("API request rejected")
		return reqErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.NewRequestError(op, resp.StatusCode, string(raw), fmt.Errorf("decode response: %w", err))
	}
	entry.WithField("status", resp.StatusCode).Debug("API response")
	return nil
}
