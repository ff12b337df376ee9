package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	cartsvc "storefront-api/internal/service/cart"
)

type addItemRequest struct {
	ProductID      int64  `json:"productId" binding:"required,gt=0"`
	Name           string `json:"name" binding:"required"`
	UnitPriceCents int64  `json:"unitPriceCents" binding:"gte=0"`
	Quantity       int    `json:"quantity"`
	ImageURL       string `json:"imageUrl"`
	ImageAlt       string `json:"imageAlt"`
	SKU            string `json:"sku"`
}

func (r addItemRequest) toInput() cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		ProductID:      r.ProductID,
		Name:           r.Name,
		UnitPriceCents: r.UnitPriceCents,
		Quantity:       r.Quantity,
		ImageURL:       r.ImageURL,
		ImageAlt:       r.ImageAlt,
		SKU:            r.SKU,
	}
}

// Quantity is a pointer so an explicit 0 (remove) passes the required check
// while a missing or misspelled field is rejected instead of decoding to 0.
type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type replaceCartRequest struct {
	Items []addItemRequest `json:"items"`
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), sessionToken(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "could not load cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func addCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid item payload")
			return
		}
		cart, err := svc.AddItem(c.Request.Context(), sessionToken(c), req.toInput())
		if err != nil {
			respondError(c, http.StatusInternalServerError, "could not add item")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func updateCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil || productID <= 0 {
			respondError(c, http.StatusBadRequest, "invalid product id")
			return
		}
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid quantity payload")
			return
		}
		cart, err := svc.UpdateQuantity(c.Request.Context(), sessionToken(c), productID, *req.Quantity)
		if err != nil {
			if isNotFound(err) {
				respondError(c, http.StatusNotFound, "item not in cart")
				return
			}
			respondError(c, http.StatusInternalServerError, "could not update quantity")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func removeCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil || productID <= 0 {
			respondError(c, http.StatusBadRequest, "invalid product id")
			return
		}
		cart, err := svc.RemoveItem(c.Request.Context(), sessionToken(c), productID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "could not remove item")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), sessionToken(c)); err != nil {
			respondError(c, http.StatusInternalServerError, "could not clear cart")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func replaceCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req replaceCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid cart payload")
			return
		}
		items := make([]cartsvc.AddItemInput, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, item.toInput())
		}
		cart, err := svc.Replace(c.Request.Context(), sessionToken(c), items)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "could not replace cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}
