// Package commerce is the REST client for the external commerce platform,
// which owns orders, customers and pricing. The storefront treats it as an
// opaque collaborator; failures surface to the caller and nothing is retried
// automatically.
package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"storefront-api/internal/domain"
)

type Client struct {
	http   *resty.Client
	logger *log.Logger
}

// New builds a Client authenticated with the consumer key/secret pair.
func New(baseURL, consumerKey, consumerSecret string, timeout time.Duration, logger *log.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetBasicAuth(consumerKey, consumerSecret).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, logger: logger}
}

// CreateOrder submits a single order-creation request. The idempotency key is
// forwarded as a header so a double-submit cannot create two orders. A 2xx
// response without an order id is treated as a failure.
func (c *Client) CreateOrder(ctx context.Context, in OrderInput, idempotencyKey string) (*Order, error) {
	var order Order
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Idempotency-Key", idempotencyKey).
		SetBody(in).
		SetResult(&order).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, c.apiError(resp)
	}
	if order.ID == 0 {
		return nil, errors.New("create order: order id missing in response")
	}
	return &order, nil
}

// GetOrder fetches the canonical state of an order.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&order).
		Get(fmt.Sprintf("/orders/%d", orderID))
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if !resp.IsSuccess() {
		return nil, c.apiError(resp)
	}
	return &order, nil
}

// GetCustomer fetches a customer record, including the metadata list the
// business-account flag is read from.
func (c *Client) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	var customer Customer
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&customer).
		Get(fmt.Sprintf("/customers/%d", customerID))
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", customerID, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if !resp.IsSuccess() {
		return nil, c.apiError(resp)
	}
	return &customer, nil
}

func (c *Client) apiError(resp *resty.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	c.logger.Printf("commerce api %s %s: %v", resp.Request.Method, resp.Request.URL, apiErr)
	return apiErr
}
