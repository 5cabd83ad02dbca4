// ABOUTME: Analytics endpoints for the StoreSync API
// ABOUTME: Fans out the four aggregate requests and merges them

package api

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// Analytics is the merged view of the four aggregate endpoints.
type Analytics struct {
	TotalStock        int
	FastMoving        []ItemAnalytics
	SlowMoving        []ItemAnalytics
	ReliableSuppliers []SupplierAnalytics
}

type totalStockBody struct {
	TotalStock int `json:"totalStock"`
}

// FetchAnalytics requests all four aggregates in parallel. It returns
// only when every request has resolved, and fails with the first
// failure if any of them errors. List-shaped aggregates are normalized
// defensively like every other collection.
func (c *Client) FetchAnalytics(ctx context.Context) (*Analytics, error) {
	var result Analytics

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var body totalStockBody
		if err := c.do(gctx, http.MethodGet, "/analytics/total-stock", nil, nil, &body); err != nil {
			return err
		}
		result.TotalStock = body.TotalStock
		return nil
	})
	g.Go(func() error {
		rows, err := listOf[ItemAnalytics](gctx, c, "/analytics/fast-moving", nil)
		if err != nil {
			return err
		}
		result.FastMoving = rows
		return nil
	})
	g.Go(func() error {
		rows, err := listOf[ItemAnalytics](gctx, c, "/analytics/slow-moving", nil)
		if err != nil {
			return err
		}
		result.SlowMoving = rows
		return nil
	})
	g.Go(func() error {
		rows, err := listOf[SupplierAnalytics](gctx, c, "/analytics/reliable-suppliers", nil)
		if err != nil {
			return err
		}
		result.ReliableSuppliers = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}
