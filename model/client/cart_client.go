package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	entity "storefront.GO/model/entity"
)

// CartClient talks to the remote cart endpoint. GET returns the persisted
// cart for a uid, POST replaces it with a full snapshot.
type CartClient struct {
	URL  string
	HTTP *http.Client
}

func NewCartClient(u string) *CartClient {
	return &CartClient{URL: u}
}

func (c *CartClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// Fetch returns the cart items for a uid. A response body lacking a
// well-formed "items" array is an empty cart, not an error.
func (c *CartClient) Fetch(ctx context.Context, uid string) ([]entity.CartItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+"?uid="+url.QueryEscape(uid), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("cart fetch: status %d", resp.StatusCode)
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("cart fetch: decode: %w", err)
	}

	var body struct {
		Items []entity.CartItem `mapstructure:"items"`
	}
	if err := decodeWeak(raw, &body); err != nil {
		// Malformed item shape — treat as empty cart
		return nil, nil
	}
	return body.Items, nil
}

// Persist replaces the remote cart with the full snapshot. Any non-success
// status is a failure.
func (c *CartClient) Persist(ctx context.Context, uid string, items []entity.CartItem) error {
	payload := map[string]interface{}{
		"uid":   uid,
		"items": items,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("cart persist: status %d", resp.StatusCode)
	}
	return nil
}
