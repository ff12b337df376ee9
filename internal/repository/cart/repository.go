package cart

import (
	"context"

	"storefront-api/internal/domain"
)

// Repository persists carts keyed by browser session token. Each cart holds
// at most one row per product id; AddItem merges duplicates by incrementing
// quantity.
type Repository interface {
	// GetOrCreate returns the session's cart, creating an empty one on first use.
	GetOrCreate(ctx context.Context, sessionToken string) (*domain.Cart, error)
	// AddItem appends the item or, when the product is already in the cart,
	// increments the existing quantity.
	AddItem(ctx context.Context, cartID string, item domain.CartItem) error
	// SetQuantity sets the quantity of the matching item. A quantity below 1
	// removes the item instead.
	SetQuantity(ctx context.Context, cartID string, productID int64, quantity int) error
	// RemoveItem deletes the matching item. Removing an absent product is a no-op.
	RemoveItem(ctx context.Context, cartID string, productID int64) error
	// Clear deletes all items, leaving the cart row in place.
	Clear(ctx context.Context, cartID string) error
	// ReplaceItems swaps the full item list in one transaction.
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error
}
