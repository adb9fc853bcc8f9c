// Package shopify provides a minimal client for the Shopify Admin REST API.
package shopify

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
)

// DefaultAPIVersion is the Admin API version used when none is configured.
const DefaultAPIVersion = "2024-01"

// MaxPageSize is the largest order page the Admin API will return.
const MaxPageSize = 250

// DefaultPageSize is used when a listing request does not specify a limit.
const DefaultPageSize = 50

// Client is a minimal HTTP client for the Shopify Admin orders API.
type Client struct {
	BaseURL     string // e.g. https://my-store.myshopify.com
	AccessToken string
	APIVersion  string
	HTTP        *http.Client
}

// New returns a new client for the given shop domain. If httpClient is nil, a
// default with a 10s timeout is used.
func New(shopDomain, accessToken, apiVersion string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	base := shopDomain
	if base != "" && !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return &Client{
		BaseURL:     strings.TrimRight(base, "/"),
		AccessToken: accessToken,
		APIVersion:  apiVersion,
		HTTP:        httpClient,
	}
}

// APIError is a non-2xx response from the Admin API. The raw body text is kept
// so callers can surface whatever the platform said.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify api error (%d): %s", e.StatusCode, e.Body)
}

// ListParams defines the supported order listing filters. All are optional.
// A Status of "any" is treated as no status filter and omitted from the query.
type ListParams struct {
	Status            string
	FinancialStatus   string
	FulfillmentStatus string
	CreatedAtMin      string
	CreatedAtMax      string
	Limit             int
}

// Order is a small typed view of an order, enough for counting and analytics.
// The full payload is carried alongside as raw JSON.
type Order struct {
	ID                json.Number `json:"id"`
	TotalPrice        string      `json:"total_price"`
	FinancialStatus   string      `json:"financial_status"`
	FulfillmentStatus string      `json:"fulfillment_status"`
	CreatedAt         string      `json:"created_at"`
}

// OrdersPage is one page of orders: the typed entries plus the raw JSON array
// exactly as the API returned it.
type OrdersPage struct {
	Orders []Order
	Raw    json.RawMessage
}

// OrderUpdate holds the partially updatable order fields. Nil fields are
// omitted from the request body.
type OrderUpdate struct {
	ID    json.Number `json:"id,omitempty"`
	Note  *string     `json:"note,omitempty"`
	Tags  *string     `json:"tags,omitempty"`
	Email *string     `json:"email,omitempty"`
}

// Fulfillment is the request body for creating a fulfillment record.
type Fulfillment struct {
	LocationID      *int64  `json:"location_id,omitempty"`
	TrackingNumber  *string `json:"tracking_number,omitempty"`
	TrackingCompany *string `json:"tracking_company,omitempty"`
	NotifyCustomer  bool    `json:"notify_customer"`
}

// CancelOptions is the request body for cancelling an order.
type CancelOptions struct {
	Reason string `json:"reason"`
	Refund bool   `json:"refund"`
	Email  bool   `json:"email"`
}

// Refund is the request body for creating a refund record.
type Refund struct {
	Amount  float64 `json:"amount"`
	Reason  string  `json:"reason"`
	Restock bool    `json:"restock"`
	Notify  bool    `json:"notify"`
}

// GetOrder fetches one order by identifier and returns the order object as raw JSON.
func (c *Client) GetOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, "orders/"+orderID+".json", nil, nil)
	if err != nil {
		return nil, err
	}
	return extractField(body, "order")
}

// ListOrders fetches a single page of orders matching the given filters.
func (c *Client) ListOrders(ctx context.Context, p ListParams) (*OrdersPage, error) {
	q := url.Values{}
	if p.Status != "" && p.Status != "any" {
		q.Set("status", p.Status)
	}
	if p.FinancialStatus != "" {
		q.Set("financial_status", p.FinancialStatus)
	}
	if p.FulfillmentStatus != "" {
		q.Set("fulfillment_status", p.FulfillmentStatus)
	}
	if p.CreatedAtMin != "" {
		q.Set("created_at_min", p.CreatedAtMin)
	}
	if p.CreatedAtMax != "" {
		q.Set("created_at_max", p.CreatedAtMax)
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	q.Set("limit", strconv.Itoa(limit))

	body, err := c.do(ctx, http.MethodGet, "orders.json", q, nil)
	if err != nil {
		return nil, err
	}
	raw, err := extractField(body, "orders")
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return &OrdersPage{Orders: orders, Raw: raw}, nil
}

// UpdateOrder applies a partial update to one order and returns the order
// object exactly as the API echoed it.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, upd OrderUpdate) (json.RawMessage, error) {
	// The Admin API expects the numeric id repeated in the body. Tool callers
	// pass the id as a string, so only carry it over when it is numeric.
	if _, err := strconv.ParseInt(orderID, 10, 64); err == nil {
		upd.ID = json.Number(orderID)
	}
	body, err := c.do(ctx, http.MethodPut, "orders/"+orderID+".json", nil, map[string]any{"order": upd})
	if err != nil {
		return nil, err
	}
	return extractField(body, "order")
}

// CreateFulfillment creates a fulfillment record for one order.
func (c *Client) CreateFulfillment(ctx context.Context, orderID string, f Fulfillment) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodPost, "orders/"+orderID+"/fulfillments.json", nil, map[string]any{"fulfillment": f})
	if err != nil {
		return nil, err
	}
	return extractField(body, "fulfillment")
}

// CancelOrder cancels one order.
func (c *Client) CancelOrder(ctx context.Context, orderID string, opts CancelOptions) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodPost, "orders/"+orderID+"/cancel.json", nil, opts)
	if err != nil {
		return nil, err
	}
	return extractField(body, "order")
}

// CreateRefund creates a refund record for one order.
func (c *Client) CreateRefund(ctx context.Context, orderID string, r Refund) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodPost, "orders/"+orderID+"/refunds.json", nil, map[string]any{"refund": r})
	if err != nil {
		return nil, err
	}
	return extractField(body, "refund")
}

// do issues one request against the versioned admin path and returns the raw
// response body for 2xx responses.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	if c.AccessToken == "" {
		return nil, errors.New("shopify access token missing")
	}
	if c.BaseURL == "" {
		return nil, errors.New("shop domain not configured")
	}
	reqURL := c.BaseURL + "/admin/api/" + c.APIVersion + "/" + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", c.AccessToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// extractField pulls one top-level field out of a JSON object, keeping its
// bytes untouched. If the field is absent the whole body is returned so the
// caller still sees what the API sent.
func extractField(body []byte, field string) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if raw, ok := envelope[field]; ok {
		return raw, nil
	}
	return json.RawMessage(body), nil
}
