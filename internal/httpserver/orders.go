package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"storefront-api/internal/commerce"
)

type orderResponse struct {
	ID            int64               `json:"id"`
	Status        string              `json:"status"`
	Currency      string              `json:"currency"`
	Total         string              `json:"total"`
	ShippingTotal string              `json:"shippingTotal"`
	DateCreated   string              `json:"dateCreated,omitempty"`
	Billing       orderAddressView    `json:"billing"`
	LineItems     []orderLineItemView `json:"lineItems"`
}

type orderAddressView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type orderLineItemView struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

func toOrderResponse(order *commerce.Order) orderResponse {
	lineItems := make([]orderLineItemView, 0, len(order.LineItems))
	for _, line := range order.LineItems {
		view := orderLineItemView{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Total:     line.Total,
		}
		if line.Image != nil {
			view.ImageURL = line.Image.Src
		}
		lineItems = append(lineItems, view)
	}

	return orderResponse{
		ID:            order.ID,
		Status:        order.Status,
		Currency:      order.Currency,
		Total:         order.Total,
		ShippingTotal: order.ShippingTotal,
		DateCreated:   order.DateCreated,
		Billing: orderAddressView{
			FirstName: order.Billing.FirstName,
			LastName:  order.Billing.LastName,
			Company:   order.Billing.Company,
			Address1:  order.Billing.Address1,
			Address2:  order.Billing.Address2,
			City:      order.Billing.City,
			State:     order.Billing.State,
			Postcode:  order.Billing.Postcode,
			Country:   order.Billing.Country,
			Email:     order.Billing.Email,
			Phone:     order.Billing.Phone,
		},
		LineItems: lineItems,
	}
}

func getOrderHandler(api orderAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || orderID <= 0 {
			respondError(c, http.StatusBadRequest, "invalid order id")
			return
		}

		order, err := api.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			if isNotFound(err) {
				respondError(c, http.StatusNotFound, "order not found")
				return
			}
			var apiErr *commerce.APIError
			if errors.As(err, &apiErr) {
				respondError(c, http.StatusBadGateway, apiErr.Error())
				return
			}
			respondError(c, http.StatusBadGateway, "order could not be fetched")
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}
