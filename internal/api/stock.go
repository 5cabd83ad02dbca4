// ABOUTME: Stock movement endpoints for the StoreSync API
// ABOUTME: Filtered movement history plus inbound/outbound recording

package api

import (
	"context"
	"net/http"
)

// Filter keys accepted by GET /stock.
const (
	FilterMovementItem     = "item"
	FilterMovementType     = "type"
	FilterMovementUser     = "user"
	FilterMovementSupplier = "supplier"
)

// MovementDraft is the payload for recording a stock movement. Supplier
// is only meaningful for inbound movements and is omitted when empty.
type MovementDraft struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Supplier string `json:"supplier,omitempty"`
	Note     string `json:"note,omitempty"`
}

// ListMovements calls GET /stock with the non-empty filter entries as
// query parameters.
func (c *Client) ListMovements(ctx context.Context, filters Filters) ([]StockMovement, error) {
	return listOf[StockMovement](ctx, c, "/stock", filters.values())
}

// RecordInbound calls POST /stock/inbound. The server recomputes the
// item quantity; the caller must re-fetch rather than patch locally.
func (c *Client) RecordInbound(ctx context.Context, draft MovementDraft) error {
	return c.do(ctx, http.MethodPost, "/stock/inbound", nil, draft, nil)
}

// RecordOutbound calls POST /stock/outbound. Rejected with a
// structured message when stock is insufficient.
func (c *Client) RecordOutbound(ctx context.Context, draft MovementDraft) error {
	draft.Supplier = ""
	return c.do(ctx, http.MethodPost, "/stock/outbound", nil, draft, nil)
}
