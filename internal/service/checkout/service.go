// Package checkout turns the session's cart plus address/payment input into a
// single order-creation request against the commerce API and reconciles the
// result: on success the cart is cleared, on any failure it is left untouched
// so the shopper can retry.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"storefront-api/internal/commerce"
	"storefront-api/internal/domain"
)

var (
	// ErrPaymentNotAvailable is returned when the chosen payment method is
	// not offered to this shopper.
	ErrPaymentNotAvailable = errors.New("payment method not available")
)

// ValidationError marks client-side fixable input problems.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Service struct {
	carts            cartService
	commerce         commerceAPI
	shippingFeeCents int64
	businessFlagKey  string
	logger           *log.Logger
}

type cartService interface {
	Get(ctx context.Context, sessionToken string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionToken string) error
}

type commerceAPI interface {
	CreateOrder(ctx context.Context, in commerce.OrderInput, idempotencyKey string) (*commerce.Order, error)
	GetCustomer(ctx context.Context, customerID int64) (*commerce.Customer, error)
}

func New(carts cartService, api commerceAPI, shippingFeeCents int64, businessFlagKey string, logger *log.Logger) *Service {
	return &Service{
		carts:            carts,
		commerce:         api,
		shippingFeeCents: shippingFeeCents,
		businessFlagKey:  businessFlagKey,
		logger:           logger,
	}
}

// AddressInput mirrors the checkout form fields.
type AddressInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (a AddressInput) validate(section string) error {
	required := []struct {
		field, value string
	}{
		{"firstName", a.FirstName},
		{"lastName", a.LastName},
		{"address1", a.Address1},
		{"city", a.City},
		{"state", a.State},
		{"postcode", a.Postcode},
		{"country", a.Country},
		{"email", a.Email},
		{"phone", a.Phone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: section + "." + r.field, Message: "required"}
		}
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return &ValidationError{Field: section + ".email", Message: "invalid email address"}
	}
	return nil
}

func (a AddressInput) wire() commerce.OrderAddress {
	return commerce.OrderAddress{
		FirstName: strings.TrimSpace(a.FirstName),
		LastName:  strings.TrimSpace(a.LastName),
		Company:   strings.TrimSpace(a.Company),
		Address1:  strings.TrimSpace(a.Address1),
		Address2:  strings.TrimSpace(a.Address2),
		City:      strings.TrimSpace(a.City),
		State:     strings.TrimSpace(a.State),
		Postcode:  strings.TrimSpace(a.Postcode),
		Country:   strings.TrimSpace(a.Country),
		Email:     strings.TrimSpace(a.Email),
		Phone:     strings.TrimSpace(a.Phone),
	}
}

// SubmitInput is the checkout form as posted by the client.
type SubmitInput struct {
	Billing                AddressInput  `json:"billing"`
	ShipToDifferentAddress bool          `json:"shipToDifferentAddress"`
	Shipping               *AddressInput `json:"shipping"`
	PaymentMethod          string        `json:"paymentMethod"`
	CustomerNote           string        `json:"customerNote"`
	CustomerID             int64         `json:"customerId"`
	IdempotencyKey         string        `json:"idempotencyKey"`
}

// SubmitResult carries what the confirmation redirect needs.
type SubmitResult struct {
	OrderID          int64  `json:"orderId"`
	Status           string `json:"status"`
	ConfirmationPath string `json:"confirmationPath"`
}

// Submit validates the draft, creates the order and clears the cart on
// success. The cart is never touched on failure.
func (s *Service) Submit(ctx context.Context, sessionToken string, in SubmitInput) (*SubmitResult, error) {
	cart, err := s.carts.Get(ctx, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	if err := in.Billing.validate("billing"); err != nil {
		return nil, err
	}
	shipping := in.Billing
	if in.ShipToDifferentAddress {
		if in.Shipping == nil {
			return nil, &ValidationError{Field: "shipping", Message: "required when not shipping to billing address"}
		}
		if err := in.Shipping.validate("shipping"); err != nil {
			return nil, err
		}
		shipping = *in.Shipping
	}

	business := s.isBusinessAccount(ctx, in.CustomerID)

	method := domain.PaymentMethod(strings.TrimSpace(in.PaymentMethod))
	if method == "" {
		method = domain.PaymentCOD
	}
	switch method {
	case domain.PaymentCOD:
	case domain.PaymentBankTransfer:
		if !business {
			return nil, ErrPaymentNotAvailable
		}
	default:
		return nil, ErrPaymentNotAvailable
	}

	shippingCents := s.shippingFeeCents
	if business {
		shippingCents = 0
	}

	lineItems := make([]commerce.OrderLineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		lineItems = append(lineItems, commerce.OrderLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}

	order, err := s.commerce.CreateOrder(ctx, commerce.OrderInput{
		PaymentMethod:      string(method),
		PaymentMethodTitle: method.Title(),
		SetPaid:            false,
		Billing:            in.Billing.wire(),
		Shipping:           shipping.wire(),
		LineItems:          lineItems,
		ShippingLines: []commerce.ShippingLine{{
			MethodID:    "flat_rate",
			MethodTitle: "Flat rate",
			Total:       centsToDecimal(shippingCents),
		}},
		CustomerNote: strings.TrimSpace(in.CustomerNote),
		CustomerID:   in.CustomerID,
	}, key)
	if err != nil {
		return nil, err
	}

	// The order exists; a failed cleanup must not turn success into failure.
	if err := s.carts.Clear(ctx, sessionToken); err != nil {
		s.logger.Printf("clear cart after order %d: %v", order.ID, err)
	}

	return &SubmitResult{
		OrderID:          order.ID,
		Status:           order.Status,
		ConfirmationPath: fmt.Sprintf("/order-confirmation?order=%d", order.ID),
	}, nil
}

// PaymentOption is one selectable payment method.
type PaymentOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Options describes what the checkout page may offer this shopper.
type Options struct {
	PaymentMethods    []PaymentOption `json:"paymentMethods"`
	ShippingCostCents int64           `json:"shippingCostCents"`
	BusinessAccount   bool            `json:"businessAccount"`
	BillingPrefill    *AddressInput   `json:"billingPrefill,omitempty"`
}

// OptionsFor returns payment methods, shipping cost and billing prefill for
// the shopper. Lookup failures fall back to the regular-customer defaults;
// classification never fails open into a discount.
func (s *Service) OptionsFor(ctx context.Context, customerID int64) *Options {
	opts := &Options{
		PaymentMethods:    []PaymentOption{{ID: string(domain.PaymentCOD), Title: domain.PaymentCOD.Title()}},
		ShippingCostCents: s.shippingFeeCents,
	}
	if customerID <= 0 {
		return opts
	}

	customer, err := s.commerce.GetCustomer(ctx, customerID)
	if err != nil {
		s.logger.Printf("get customer %d: %v", customerID, err)
		return opts
	}

	if value, ok := customer.MetaValue(s.businessFlagKey); ok && isAffirmative(value) {
		opts.BusinessAccount = true
		opts.ShippingCostCents = 0
		// Bank transfer is listed first so the UI picks it as the default.
		opts.PaymentMethods = append([]PaymentOption{{
			ID:    string(domain.PaymentBankTransfer),
			Title: domain.PaymentBankTransfer.Title(),
		}}, opts.PaymentMethods...)
	}

	opts.BillingPrefill = prefillFromCustomer(customer)
	return opts
}

func (s *Service) isBusinessAccount(ctx context.Context, customerID int64) bool {
	if customerID <= 0 {
		return false
	}
	customer, err := s.commerce.GetCustomer(ctx, customerID)
	if err != nil {
		s.logger.Printf("get customer %d: %v", customerID, err)
		return false
	}
	value, ok := customer.MetaValue(s.businessFlagKey)
	return ok && isAffirmative(value)
}

func isAffirmative(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "1", "true":
		return true
	}
	return false
}

func prefillFromCustomer(c *commerce.Customer) *AddressInput {
	billing := c.Billing
	prefill := &AddressInput{
		FirstName: billing.FirstName,
		LastName:  billing.LastName,
		Company:   billing.Company,
		Address1:  billing.Address1,
		Address2:  billing.Address2,
		City:      billing.City,
		State:     billing.State,
		Postcode:  billing.Postcode,
		Country:   billing.Country,
		Email:     billing.Email,
		Phone:     billing.Phone,
	}
	if prefill.FirstName == "" {
		prefill.FirstName = c.FirstName
	}
	if prefill.LastName == "" {
		prefill.LastName = c.LastName
	}
	if prefill.Email == "" {
		prefill.Email = c.Email
	}
	return prefill
}

func centsToDecimal(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
