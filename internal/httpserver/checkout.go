package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"storefront-api/internal/commerce"
	"storefront-api/internal/domain"
	checkoutsvc "storefront-api/internal/service/checkout"
)

func checkoutOptionsHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customerID int64
		if raw := c.Query("customerId"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed <= 0 {
				respondError(c, http.StatusBadRequest, "invalid customer id")
				return
			}
			customerID = parsed
		}
		c.JSON(http.StatusOK, svc.OptionsFor(c.Request.Context(), customerID))
	}
}

func submitCheckoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutsvc.SubmitInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid checkout payload")
			return
		}

		result, err := svc.Submit(c.Request.Context(), sessionToken(c), req)
		if err != nil {
			var vErr *checkoutsvc.ValidationError
			var apiErr *commerce.APIError
			switch {
			case errors.Is(err, domain.ErrEmptyCart):
				respondError(c, http.StatusConflict, "cart is empty")
			case errors.As(err, &vErr):
				respondError(c, http.StatusBadRequest, vErr.Error())
			case errors.Is(err, checkoutsvc.ErrPaymentNotAvailable):
				respondError(c, http.StatusBadRequest, err.Error())
			case errors.As(err, &apiErr):
				respondError(c, http.StatusBadGateway, apiErr.Error())
			default:
				respondError(c, http.StatusBadGateway, "order could not be created")
			}
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}
