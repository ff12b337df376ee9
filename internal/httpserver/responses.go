package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"storefront-api/internal/domain"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// cartResponse is the cart plus its derived totals, recomputed per request.
type cartResponse struct {
	ID              string            `json:"id"`
	Items           []domain.CartItem `json:"items"`
	ItemCount       int               `json:"itemCount"`
	ItemsTotalCents int64             `json:"itemsTotalCents"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		ID:              cart.ID,
		Items:           items,
		ItemCount:       cart.ItemCount(),
		ItemsTotalCents: cart.ItemsTotalCents(),
	}
}
