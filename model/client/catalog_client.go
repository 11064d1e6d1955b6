package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"

	entity "storefront.GO/model/entity"
)

// CatalogClient reads the remote product-list endpoint. The endpoint is an
// opaque contract: a JSON array of product objects.
type CatalogClient struct {
	URL  string
	HTTP *http.Client
}

func NewCatalogClient(url string) *CatalogClient {
	return &CatalogClient{URL: url}
}

func (c *CatalogClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// Fetch retrieves the full product list. No server-side filtering is
// assumed; the list is returned verbatim. Rows that do not decode are
// skipped rather than failing the whole load.
func (c *CatalogClient) Fetch(ctx context.Context) ([]entity.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog fetch: status %d", resp.StatusCode)
	}

	var raw []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("catalog fetch: decode: %w", err)
	}

	products := make([]entity.Product, 0, len(raw))
	for _, m := range raw {
		var p entity.Product
		if err := decodeWeak(m, &p); err != nil {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// decodeWeak decodes a loosely-typed JSON object into target, coercing
// scalar types (a numeric price still lands in the string field).
func decodeWeak(input interface{}, target interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
