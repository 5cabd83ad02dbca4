// ABOUTME: Supplier collection endpoints for the StoreSync API
// ABOUTME: List with filters plus create/update/delete

package api

import (
	"context"
	"net/http"
	"net/url"
)

// Filter keys accepted by GET /suppliers.
const (
	FilterSupplierName  = "name"
	FilterSupplierEmail = "email"
	FilterSupplierPhone = "phone"
)

// SupplierDraft is the create/update payload for a supplier.
type SupplierDraft struct {
	Name        string      `json:"name"`
	ContactInfo ContactInfo `json:"contactInfo"`
	Reliability float64     `json:"reliability"`
	Performance float64     `json:"performance"`
}

// ListSuppliers calls GET /suppliers with the non-empty filter entries
// as query parameters.
func (c *Client) ListSuppliers(ctx context.Context, filters Filters) ([]Supplier, error) {
	return listOf[Supplier](ctx, c, "/suppliers", filters.values())
}

// CreateSupplier calls POST /suppliers.
func (c *Client) CreateSupplier(ctx context.Context, draft SupplierDraft) error {
	return c.do(ctx, http.MethodPost, "/suppliers", nil, draft, nil)
}

// UpdateSupplier calls PUT /suppliers/:id.
func (c *Client) UpdateSupplier(ctx context.Context, id string, draft SupplierDraft) error {
	return c.do(ctx, http.MethodPut, "/suppliers/"+url.PathEscape(id), nil, draft, nil)
}

// DeleteSupplier calls DELETE /suppliers/:id.
func (c *Client) DeleteSupplier(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/suppliers/"+url.PathEscape(id), nil, nil, nil)
}
