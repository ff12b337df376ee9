package cart

import (
	"context"
	"errors"
	"strings"

	"storefront-api/internal/domain"
	cartrepo "storefront-api/internal/repository/cart"
)

// Service owns every cart mutation. Handlers never touch the repository
// directly, so the one-item-per-product invariant is enforced in one place.
type Service struct {
	repo cartRepo
}

type cartRepo interface {
	GetOrCreate(ctx context.Context, sessionToken string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID string, item domain.CartItem) error
	SetQuantity(ctx context.Context, cartID string, productID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID string, productID int64) error
	Clear(ctx context.Context, cartID string) error
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error
}

func New(repo cartrepo.Repository) *Service {
	return &Service{repo: repo}
}

// AddItemInput carries the add-time snapshot of a product.
type AddItemInput struct {
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	ImageURL       string `json:"imageUrl"`
	ImageAlt       string `json:"imageAlt"`
	SKU            string `json:"sku"`
}

// Get returns the session's cart, creating an empty one on first use.
func (s *Service) Get(ctx context.Context, sessionToken string) (*domain.Cart, error) {
	return s.repo.GetOrCreate(ctx, sessionToken)
}

// AddItem adds the product to the cart, merging with an existing line for the
// same product by incrementing its quantity.
func (s *Service) AddItem(ctx context.Context, sessionToken string, in AddItemInput) (*domain.Cart, error) {
	if in.ProductID <= 0 {
		return nil, errors.New("productId required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	if in.UnitPriceCents < 0 {
		return nil, errors.New("unitPriceCents must not be negative")
	}
	quantity := in.Quantity
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.repo.GetOrCreate(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddItem(ctx, cart.ID, domain.CartItem{
		ProductID:      in.ProductID,
		Name:           strings.TrimSpace(in.Name),
		UnitPriceCents: in.UnitPriceCents,
		Quantity:       quantity,
		ImageURL:       in.ImageURL,
		ImageAlt:       in.ImageAlt,
		SKU:            in.SKU,
	}); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, sessionToken)
}

// UpdateQuantity sets the quantity of the matching item. A quantity below 1
// removes the item, so the quantity-at-least-one invariant holds no matter
// what the caller sends.
func (s *Service) UpdateQuantity(ctx context.Context, sessionToken string, productID int64, quantity int) (*domain.Cart, error) {
	if productID <= 0 {
		return nil, errors.New("productId required")
	}
	cart, err := s.repo.GetOrCreate(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetQuantity(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, sessionToken)
}

// RemoveItem deletes the product from the cart. Removing a product that is
// not in the cart is a no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionToken string, productID int64) (*domain.Cart, error) {
	if productID <= 0 {
		return nil, errors.New("productId required")
	}
	cart, err := s.repo.GetOrCreate(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, sessionToken)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, sessionToken string) error {
	cart, err := s.repo.GetOrCreate(ctx, sessionToken)
	if err != nil {
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}

// Replace swaps the cart contents for the given item list, dropping invalid
// entries. Used to hydrate a cart from a client-held snapshot.
func (s *Service) Replace(ctx context.Context, sessionToken string, items []AddItemInput) (*domain.Cart, error) {
	cart, err := s.repo.GetOrCreate(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	cleaned := make([]domain.CartItem, 0, len(items))
	for _, in := range items {
		if in.ProductID <= 0 || strings.TrimSpace(in.Name) == "" || in.UnitPriceCents < 0 {
			continue
		}
		quantity := in.Quantity
		if quantity < 1 {
			quantity = 1
		}
		cleaned = append(cleaned, domain.CartItem{
			ProductID:      in.ProductID,
			Name:           strings.TrimSpace(in.Name),
			UnitPriceCents: in.UnitPriceCents,
			Quantity:       quantity,
			ImageURL:       in.ImageURL,
			ImageAlt:       in.ImageAlt,
			SKU:            in.SKU,
		})
	}

	if err := s.repo.ReplaceItems(ctx, cart.ID, cleaned); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, sessionToken)
}
