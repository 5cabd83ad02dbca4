// ABOUTME: Wire types for the StoreSync inventory API
// ABOUTME: Mongo-style documents with defensive decoding for cross-references

package api

import "encoding/json"

// Item is a tracked inventory item. Quantity and alert status are
// server-computed; the client never derives them locally.
type Item struct {
	ID                string `json:"_id"`
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	Quantity          int    `json:"quantity"`
	Location          string `json:"location,omitempty"`
	Category          string `json:"category,omitempty"`
	LowStockThreshold int    `json:"lowStockThreshold,omitempty"`
}

// ContactInfo is the nested contact block on a supplier document.
type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Supplier is a goods supplier. Reliability and performance are
// server-scored.
type Supplier struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	ContactInfo ContactInfo `json:"contactInfo"`
	Reliability float64     `json:"reliability,omitempty"`
	Performance float64     `json:"performance,omitempty"`
}

// ItemRef is an item cross-reference as embedded in movements and
// alerts. The backend sometimes populates it as a document and
// sometimes leaves a bare id or null, so it decodes tolerantly.
type ItemRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// UnmarshalJSON accepts an object, a bare id string, or null.
func (r *ItemRef) UnmarshalJSON(data []byte) error {
	return decodeRef(data, &r.ID, func() error {
		type plain ItemRef
		return json.Unmarshal(data, (*plain)(r))
	})
}

// NameRef is a populated reference carrying only a display name
// (users and suppliers on stock movements).
type NameRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts an object, a bare id string, or null.
func (r *NameRef) UnmarshalJSON(data []byte) error {
	return decodeRef(data, &r.ID, func() error {
		type plain NameRef
		return json.Unmarshal(data, (*plain)(r))
	})
}

// decodeRef implements the shared tolerant decode: null is left zero,
// a string becomes the id, an object goes through asObject, and any
// other shape is dropped rather than failing the whole list.
func decodeRef(data []byte, id *string, asObject func() error) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = s
		return nil
	}
	if err := asObject(); err != nil {
		return nil
	}
	return nil
}

// StockMovement is one inbound or outbound stock event.
type StockMovement struct {
	ID       string  `json:"_id"`
	Item     ItemRef `json:"item"`
	Type     string  `json:"type"`
	Quantity int     `json:"quantity"`
	Date     string  `json:"date"`
	User     NameRef `json:"user"`
	Supplier NameRef `json:"supplier"`
	Note     string  `json:"note,omitempty"`
}

// Movement types accepted by the backend.
const (
	MovementInbound  = "inbound"
	MovementOutbound = "outbound"
)

// Alert is a server-generated stock alert.
type Alert struct {
	ID      string  `json:"_id"`
	Date    string  `json:"date"`
	Item    ItemRef `json:"item"`
	Message string  `json:"message"`
	Status  string  `json:"status"`
}

// AlertRead marks an acknowledged alert.
const AlertRead = "read"

// ItemAnalytics is a per-item movement aggregate.
type ItemAnalytics struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Movements int    `json:"movements"`
}

// SupplierAnalytics is a per-supplier reliability aggregate.
type SupplierAnalytics struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	Reliability   float64 `json:"reliability"`
	TotalSupplied int     `json:"totalSupplied"`
}

// User is the identity returned by the authentication endpoint.
type User struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
