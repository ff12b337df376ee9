package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		first := 0
		if raw := c.Query("first"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, "invalid first parameter")
				return
			}
			first = parsed
		}

		page, err := svc.Products(c.Request.Context(), first, c.Query("after"))
		if err != nil {
			respondError(c, http.StatusBadGateway, "catalog unavailable")
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func getProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := svc.ProductBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if isNotFound(err) {
				respondError(c, http.StatusNotFound, "product not found")
				return
			}
			respondError(c, http.StatusBadGateway, "catalog unavailable")
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}
