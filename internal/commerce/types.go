package commerce

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Wire types for the commerce REST API. Field names follow the backend's
// snake_case schema; monetary totals arrive as decimal strings.

type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type OrderLineItem struct {
	ProductID int64          `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Name      string         `json:"name,omitempty"`
	Total     string         `json:"total,omitempty"`
	Image     *LineItemImage `json:"image,omitempty"`
}

type LineItemImage struct {
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`
}

type ShippingLine struct {
	MethodID    string `json:"method_id"`
	MethodTitle string `json:"method_title"`
	Total       string `json:"total"`
}

// OrderInput is the order-creation payload. Line items carry product id and
// quantity only; the commerce backend is the pricing authority.
type OrderInput struct {
	PaymentMethod      string          `json:"payment_method"`
	PaymentMethodTitle string          `json:"payment_method_title"`
	SetPaid            bool            `json:"set_paid"`
	Billing            OrderAddress    `json:"billing"`
	Shipping           OrderAddress    `json:"shipping"`
	LineItems          []OrderLineItem `json:"line_items"`
	ShippingLines      []ShippingLine  `json:"shipping_lines,omitempty"`
	CustomerNote       string          `json:"customer_note,omitempty"`
	CustomerID         int64           `json:"customer_id,omitempty"`
}

type Order struct {
	ID            int64           `json:"id"`
	Status        string          `json:"status"`
	Currency      string          `json:"currency"`
	Total         string          `json:"total"`
	ShippingTotal string          `json:"shipping_total"`
	DateCreated   string          `json:"date_created"`
	Billing       OrderAddress    `json:"billing"`
	LineItems     []OrderLineItem `json:"line_items"`
}

type Customer struct {
	ID        int64        `json:"id"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Billing   OrderAddress `json:"billing"`
	MetaData  []MetaData   `json:"meta_data"`
}

type MetaData struct {
	Key   string    `json:"key"`
	Value MetaValue `json:"value"`
}

// MetaValue tolerates the backend's loosely typed metadata values, which can
// arrive as strings, numbers or booleans.
type MetaValue string

func (v *MetaValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = MetaValue(s)
		return nil
	}
	var scalar interface{}
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	switch scalar.(type) {
	case float64, bool, nil:
		*v = MetaValue(strings.TrimSpace(string(data)))
	default:
		// Arrays/objects are kept as raw JSON; no caller reads them today.
		*v = MetaValue(data)
	}
	return nil
}

// MetaValue returns the metadata value for key, if present.
func (c *Customer) MetaValue(key string) (string, bool) {
	for _, m := range c.MetaData {
		if m.Key == key {
			return string(m.Value), true
		}
	}
	return "", false
}

// APIError is a non-2xx response from the commerce API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("commerce api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("commerce api: status %d", e.StatusCode)
}
