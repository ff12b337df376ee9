// Package cms is a thin GraphQL client for the headless CMS that owns catalog
// content. The storefront only proxies queries; it never writes to the CMS.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http     *resty.Client
	endpoint string
}

func New(endpoint string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: httpClient, endpoint: endpoint}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Query posts a GraphQL document and decodes the data payload into out.
// GraphQL-level errors are returned as Go errors, same as transport failures.
func (c *Client) Query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	var decoded graphQLResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(graphQLRequest{Query: query, Variables: variables}).
		SetResult(&decoded).
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("cms query: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("cms query: status %d", resp.StatusCode())
	}
	if len(decoded.Errors) > 0 {
		return fmt.Errorf("cms query: %s", decoded.Errors[0].Message)
	}
	if out == nil || decoded.Data == nil {
		return nil
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return fmt.Errorf("cms query: decode data: %w", err)
	}
	return nil
}
