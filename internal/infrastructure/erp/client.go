package erp

import (
	"bytes"
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

	"go.uber.org/zap"

	"github.com/evasence/holoo-admin/internal/domain/shared"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 10 << 20 // 10MB

	// creditErrorMessage is the literal body Holoo returns (with HTTP 404,
	// of all things) when a customer lacks credit for an invoice.
	creditErrorMessage = "customer have no required credit"
)

// Config holds the connection settings for the Holoo API.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("holoo base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid holoo base URL: %w", err)
	}
	return nil
}

// Client talks to the Holoo accounting API. Every call carries the caller's
// bearer token, runs under a timeout and is never retried; failures surface
// as domain errors for the handler layer to translate.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Holoo API client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// request performs one HTTP round trip and returns the raw response body.
func (c *Client) request(ctx context.Context, method, path, token string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			c.logger.Error("holoo request timed out",
				zap.String("method", method),
				zap.String("path", path))
			return nil, shared.ErrUpstreamTimeout
		}
		c.logger.Error("holoo request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, shared.ErrUpstreamFailure
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.logger.Error("holoo response read failed",
			zap.String("path", path),
			zap.Error(err))
		return nil, shared.ErrUpstreamFailure
	}

	if resp.StatusCode >= 400 {
		return nil, c.mapStatusError(method, path, resp.StatusCode, raw)
	}

	return raw, nil
}

// mapStatusError turns an upstream HTTP failure into a domain error.
func (c *Client) mapStatusError(method, path string, status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return shared.ErrUnauthorized
	case http.StatusForbidden:
		return shared.ErrForbidden
	case http.StatusNotFound:
		if strings.Contains(string(body), creditErrorMessage) {
			return shared.ErrInsufficientCredit
		}
		return shared.ErrNotFound
	}

	c.logger.Error("holoo returned an error status",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.ByteString("body", truncate(body, 512)))
	return shared.ErrUpstreamFailure
}

// list fetches a path and normalizes the payload into deduplicated records.
func list[T any](ctx context.Context, c *Client, path, token string, query url.Values, erpCode func(T) string) ([]T, error) {
	raw, err := c.request(ctx, http.MethodGet, path, token, query, nil)
	if err != nil {
		return nil, err
	}
	items := DecodeList[T](raw, c.logger)
	unique, dups := DedupeByErpCode(items, erpCode)
	if len(dups) > 0 {
		c.logger.Warn("dropped records repeating an ErpCode",
			zap.String("path", path),
			zap.Strings("erp_codes", dups))
	}
	return unique, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	raw, err := c.request(ctx, http.MethodPost, "/auth/login", "", nil, LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	var out LoginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Error("login response failed to decode", zap.Error(err))
		return nil, shared.ErrUpstreamFailure
	}
	if out.Token == "" {
		return nil, shared.ErrUnauthorized
	}
	return &out, nil
}

// Logout invalidates the bearer token upstream.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.request(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
	return err
}

// Me returns the operator behind the bearer token.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	raw, err := c.request(ctx, http.MethodGet, "/auth/me", token, nil, nil)
	if err != nil {
		return nil, err
	}
	var out User
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Error("me response failed to decode", zap.Error(err))
		return nil, shared.ErrUpstreamFailure
	}
	return &out, nil
}

// SearchProductsByName searches products by (partial) name.
func (c *Client) SearchProductsByName(ctx context.Context, token, name string) ([]Product, error) {
	q := url.Values{"name": {name}}
	return list(ctx, c, "/holoo/product", token, q, func(p Product) string { return p.ErpCode })
}

// SearchProductsByCode searches products by numeric code prefix.
func (c *Client) SearchProductsByCode(ctx context.Context, token, code string) ([]Product, error) {
	q := url.Values{"code": {code}}
	return list(ctx, c, "/holoo/product", token, q, func(p Product) string { return p.ErpCode })
}

// ListProducts fetches one page of the product catalog.
func (c *Client) ListProducts(ctx context.Context, token string, page, limit int) ([]Product, error) {
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	return list(ctx, c, "/holoo/products", token, q, func(p Product) string { return p.ErpCode })
}

// ListCustomers fetches the customers assigned to the current seller.
func (c *Client) ListCustomers(ctx context.Context, token string) ([]Customer, error) {
	return list(ctx, c, "/users/currentSellerUsers", token, nil, func(cu Customer) string { return cu.ErpCode })
}

// FilterCustomersByName filters customers by (partial) name.
func (c *Client) FilterCustomersByName(ctx context.Context, token, name string) ([]Customer, error) {
	q := url.Values{"name": {name}}
	return list(ctx, c, "/holoo/filterCustomer", token, q, func(cu Customer) string { return cu.ErpCode })
}

// FilterCustomersByPhone filters customers by phone number.
func (c *Client) FilterCustomersByPhone(ctx context.Context, token, phone string) ([]Customer, error) {
	q := url.Values{"mobile": {phone}}
	return list(ctx, c, "/users/filterUsers", token, q, func(cu Customer) string { return cu.ErpCode })
}

// CustomerAddresses fetches the delivery addresses of one customer.
// The endpoint spelling is Holoo's, not ours.
func (c *Client) CustomerAddresses(ctx context.Context, token, customerErpCode string) ([]CustomerAddress, error) {
	q := url.Values{"customerErpCode": {customerErpCode}}
	return list(ctx, c, "/holoo/costumerAddress", token, q, func(a CustomerAddress) string { return a.ErpCode })
}

// ListSellers fetches all salespeople.
func (c *Client) ListSellers(ctx context.Context, token string) ([]Seller, error) {
	return list(ctx, c, "/holoo/sellers", token, nil, func(s Seller) string { return s.ErpCode })
}

// FilterSellers filters salespeople by (partial) name.
func (c *Client) FilterSellers(ctx context.Context, token, name string) ([]Seller, error) {
	q := url.Values{"name": {name}}
	return list(ctx, c, "/holoo/filterSellers", token, q, func(s Seller) string { return s.ErpCode })
}

// CreatePreInvoice submits a new pre-invoice.
func (c *Client) CreatePreInvoice(ctx context.Context, token string, pre *PreInvoice) (*PreInvoice, error) {
	raw, err := c.request(ctx, http.MethodPost, "/pre-invoice/preInvoice", token, nil, pre)
	if err != nil {
		return nil, err
	}
	return firstRecord[PreInvoice](raw, c.logger)
}

// ListPreInvoices fetches all pre-invoices visible to the operator.
func (c *Client) ListPreInvoices(ctx context.Context, token string) ([]PreInvoice, error) {
	return list(ctx, c, "/pre-invoice/preInvoice", token, nil, func(p PreInvoice) string { return p.ErpCode })
}

// GetPreInvoice fetches one pre-invoice by id.
func (c *Client) GetPreInvoice(ctx context.Context, token, id string) (*PreInvoice, error) {
	raw, err := c.request(ctx, http.MethodGet, "/pre-invoice/preInvoice/"+url.PathEscape(id), token, nil, nil)
	if err != nil {
		return nil, err
	}
	return firstRecord[PreInvoice](raw, c.logger)
}

// DeletePreInvoice removes a pre-invoice.
func (c *Client) DeletePreInvoice(ctx context.Context, token, id string) error {
	_, err := c.request(ctx, http.MethodDelete, "/pre-invoice/preInvoice/"+url.PathEscape(id), token, nil, nil)
	return err
}

// ConvertPreInvoice turns a pre-invoice into a final invoice by posting its
// id to the invoice endpoint. A customer without enough credit comes back as
// ErrInsufficientCredit.
func (c *Client) ConvertPreInvoice(ctx context.Context, token, id string) (*Invoice, error) {
	body := map[string]string{"preInvoiceId": id}
	raw, err := c.request(ctx, http.MethodPost, "/invoice", token, nil, body)
	if err != nil {
		return nil, err
	}
	return firstRecord[Invoice](raw, c.logger)
}

// ListInvoices fetches all invoices visible to the operator.
func (c *Client) ListInvoices(ctx context.Context, token string) ([]Invoice, error) {
	return list(ctx, c, "/invoice", token, nil, func(i Invoice) string { return i.ErpCode })
}

// GetInvoice fetches one invoice by id.
func (c *Client) GetInvoice(ctx context.Context, token, id string) (*Invoice, error) {
	raw, err := c.request(ctx, http.MethodGet, "/invoice/"+url.PathEscape(id), token, nil, nil)
	if err != nil {
		return nil, err
	}
	return firstRecord[Invoice](raw, c.logger)
}

// Health probes the upstream health endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodGet, "/health", "", nil, nil)
	return err
}

// firstRecord normalizes a payload expected to hold exactly one record.
func firstRecord[T any](raw []byte, logger *zap.Logger) (*T, error) {
	items := DecodeList[T](raw, logger)
	if len(items) == 0 {
		// some write endpoints answer with a plain object lacking ErpCode
		var single T
		if err := json.Unmarshal(raw, &single); err == nil {
			return &single, nil
		}
		return nil, shared.ErrNotFound
	}
	return &items[0], nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
