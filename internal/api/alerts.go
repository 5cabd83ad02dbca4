// ABOUTME: Alert endpoints for the StoreSync API
// ABOUTME: Server-generated alerts with a mark-as-read acknowledgement

package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListAlerts calls GET /alerts. Alerts take no server-side filters;
// searching is done client-side over the snapshot.
func (c *Client) ListAlerts(ctx context.Context) ([]Alert, error) {
	return listOf[Alert](ctx, c, "/alerts", nil)
}

// MarkAlertRead calls PATCH /alerts/:id/read.
func (c *Client) MarkAlertRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/alerts/"+url.PathEscape(id)+"/read", nil, nil, nil)
}
