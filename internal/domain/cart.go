package domain

import "time"

// Cart holds the shopper's in-progress selection for one browser session.
type Cart struct {
	ID           string     `json:"id"`
	SessionToken string     `json:"-"`
	Items        []CartItem `json:"items"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// CartItem is one distinct product in the cart. Display fields are captured
// at add time and never re-synced with the catalog.
type CartItem struct {
	ProductID      int64     `json:"productId"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	ImageAlt       string    `json:"imageAlt,omitempty"`
	SKU            string    `json:"sku,omitempty"`
	AddedAt        time.Time `json:"addedAt"`
}

// ItemsTotalCents sums unit price times quantity over all items. The total is
// derived on every call and never stored.
func (c *Cart) ItemsTotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}

// ItemCount sums quantities over all items.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
