// ABOUTME: Item collection endpoints for the StoreSync API
// ABOUTME: List with filters plus create/update/delete

package api

import (
	"context"
	"net/http"
	"net/url"
)

// Filter keys accepted by GET /items.
const (
	FilterItemName     = "name"
	FilterItemSKU      = "sku"
	FilterItemCategory = "category"
)

// ItemDraft is the create/update payload for an item.
type ItemDraft struct {
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	Quantity          int    `json:"quantity"`
	Location          string `json:"location"`
	Category          string `json:"category"`
	LowStockThreshold int    `json:"lowStockThreshold"`
}

// ListItems calls GET /items with the non-empty filter entries as
// query parameters.
func (c *Client) ListItems(ctx context.Context, filters Filters) ([]Item, error) {
	return listOf[Item](ctx, c, "/items", filters.values())
}

// CreateItem calls POST /items.
func (c *Client) CreateItem(ctx context.Context, draft ItemDraft) error {
	return c.do(ctx, http.MethodPost, "/items", nil, draft, nil)
}

// UpdateItem calls PUT /items/:id.
func (c *Client) UpdateItem(ctx context.Context, id string, draft ItemDraft) error {
	return c.do(ctx, http.MethodPut, "/items/"+url.PathEscape(id), nil, draft, nil)
}

// DeleteItem calls DELETE /items/:id.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil, nil)
}
