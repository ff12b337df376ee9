package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"storefront-api/internal/commerce"
	"storefront-api/internal/domain"
)

type stubCarts struct {
	cart       *domain.Cart
	getErr     error
	clearErr   error
	clearCalls int
}

func (s *stubCarts) Get(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.getErr
}

func (s *stubCarts) Clear(_ context.Context, _ string) error {
	s.clearCalls++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cart.Items = nil
	return nil
}

type stubCommerce struct {
	order       *commerce.Order
	createErr   error
	customer    *commerce.Customer
	customerErr error
	lastInput   commerce.OrderInput
	lastKey     string
	createCalls int
}

func (s *stubCommerce) CreateOrder(_ context.Context, in commerce.OrderInput, key string) (*commerce.Order, error) {
	s.createCalls++
	s.lastInput = in
	s.lastKey = key
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.order, nil
}

func (s *stubCommerce) GetCustomer(_ context.Context, _ int64) (*commerce.Customer, error) {
	return s.customer, s.customerErr
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func twoItemCart() *domain.Cart {
	return &domain.Cart{
		ID: "cart-1",
		Items: []domain.CartItem{
			{ProductID: 101, Name: "Mug", UnitPriceCents: 950, Quantity: 2},
			{ProductID: 202, Name: "Plate", UnitPriceCents: 1100, Quantity: 1},
		},
	}
}

func validBilling() AddressInput {
	return AddressInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address1:  "Unter den Linden 1",
		City:      "Berlin",
		State:     "BE",
		Postcode:  "10117",
		Country:   "DE",
		Email:     "ada@example.com",
		Phone:     "+49 30 1234567",
	}
}

func businessCustomer(flagKey string) *commerce.Customer {
	return &commerce.Customer{
		ID:       12,
		Email:    "buyer@example.com",
		MetaData: []commerce.MetaData{{Key: flagKey, Value: "yes"}},
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	carts := &stubCarts{cart: &domain.Cart{ID: "cart-1"}}
	svc := New(carts, &stubCommerce{}, 550, "b2b_customer", testLogger())
	_, err := svc.Submit(context.Background(), "sess", SubmitInput{Billing: validBilling()})
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitBillingValidation(t *testing.T) {
	carts := &stubCarts{cart: twoItemCart()}
	api := &stubCommerce{}
	svc := New(carts, api, 550, "b2b_customer", testLogger())

	billing := validBilling()
	billing.Email = ""
	_, err := svc.Submit(context.Background(), "sess", SubmitInput{Billing: billing})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "billing.email" {
		t.Fatalf("expected billing.email validation error, got %v", err)
	}

	billing = validBilling()
	billing.Email = "not-an-email"
	_, err = svc.Submit(context.Background(), "sess", SubmitInput{Billing: billing})
	if !errors.As(err, &vErr) || vErr.Message != "invalid email address" {
		t.Fatalf("expected malformed email error, got %v", err)
	}

	if api.createCalls != 0 {
		t.Fatalf("order endpoint must not be called on validation failure")
	}
}

func TestSubmitShippingValidation(t *testing.T) {
	carts := &stubCarts{cart: twoItemCart()}
	svc := New(carts, &stubCommerce{}, 550, "b2b_customer", testLogger())

	_, err := svc.Submit(context.Background(), "sess", SubmitInput{
		Billing:                validBilling(),
		ShipToDifferentAddress: true,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "shipping" {
		t.Fatalf("expected shipping required error, got %v", err)
	}

	incomplete := validBilling()
	incomplete.City = ""
	_, err = svc.Submit(context.Background(), "sess", SubmitInput{
		Billing:                validBilling(),
		ShipToDifferentAddress: true,
		Shipping:               &incomplete,
	})
	if !errors.As(err, &vErr) || vErr.Field != "shipping.city" {
		t.Fatalf("expected shipping.city validation error, got %v", err)
	}
}

func TestSubmitRegularCustomerShippingFee(t *testing.T) {
	carts := &stubCarts{cart: twoItemCart()}
	api := &stubCommerce{order: &commerce.Order{ID: 4821, Status: "processing"}}
	svc := New(carts, api, 550, "b2b_customer", testLogger())

	if _, err := svc.Submit(context.Background(), "sess", SubmitInput{Billing: validBilling()}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(api.lastInput.ShippingLines) != 1 || api.lastInput.ShippingLines[0].Total != "5.50" {
		t.Fatalf("expected flat 5.50 shipping line, got %+v", api.lastInput.ShippingLines)
	}
	if api.lastInput.PaymentMethod != "cod" {
		t.Fatalf("expected default cod, got %q", api.lastInput.PaymentMethod)
	}
}

func TestSubmitBusinessCustomerFreeShippingAndBankTransfer(t *testing.T) {
	carts := &stubCarts{cart: twoItemCart()}
	api := &stubCommerce{
		order:    &commerce.Order{ID: 4821, Status: "processing"},
		customer: businessCustomer("b2b_customer"),
	}
	svc := New(carts, api, 550, "b2b_customer", testLogger())

	_, err := svc.Submit(context.Background(), "sess", SubmitInput{
		Billing:       validBilling(),
		PaymentMethod: "bacs",
		CustomerID:    12,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if api.lastInput.ShippingLines[0].Total != "0.00" {
		t.Fatalf("expected free shipping, got %+v", api.lastInput.ShippingLines)
	}
	if api.lastInput.PaymentMethod != "bacs" {
		t.Fatalf("expected bacs, got %q", api.lastInput.PaymentMethod)
	}
}

func TestSubmitBankTransferRejectedForRegularCustomer(t *testing.T) {
	carts := &stubCarts{cart: twoItemCart()}
	api := &stubCommerce{customerErr: errors.New("unreachable")}
	svc := New(carts, api, 550, "b2b_customer", testLogger())

	_, err := svc.Submit(context.Background(), "sess", SubmitInput{
		Billing:       validBilling(),
		PaymentMethod: "bacs",
		CustomerID:    12,
	})
	if !errors.Is(err, ErrPaymentNotAvailable) {
		t.Fatalf("expected ErrPaymentNotAvailable, got %v", err)
	}
	if api.createCalls != 0 {
		t.Fatalf("order endpoint must not be called")
	}
}

func TestSubmitUnknownPaymentMethod(t *testing.T) {
	carts := &stubCarts{cart: twoItemCart()}
	svc := New(carts, &stubCommerce{}, 550, "b2b_customer", testLogger())
	_, err := svc.Submit(context.Background(), "sess", SubmitInput{
		Billing:       validBilling(),
		PaymentMethod: "paypal",
	})
	if !errors.Is(err, ErrPaymentNotAvailable) {
		t.Fatalf("expected ErrPaymentNotAvailable, got %v", err)
	}
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	carts := &stubCarts{cart: twoItemCart()}
	api := &stubCommerce{order: &commerce.Order{ID: 4821, Status: "processing"}}
	svc := New(carts, api, 550, "b2b_customer", testLogger())

	res, err := svc.Submit(context.Background(), "sess", SubmitInput{
		Billing:      validBilling(),
		CustomerNote: "ring the bell",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.OrderID != 4821 {
		t.Fatalf("expected order id 4821, got %d", res.OrderID)
	}
	if !strings.Contains(res.ConfirmationPath, "4821") {
		t.Fatalf("confirmation path should carry the order id, got %q", res.ConfirmationPath)
	}
	if carts.clearCalls != 1 || !carts.cart.IsEmpty() {
		t.Fatalf("cart should be cleared exactly once")
	}
	if api.lastInput.CustomerNote != "ring the bell" {
		t.Fatalf("customer note not forwarded")
	}

	// Line items carry product id and quantity only; no client price.
	for _, line := range api.lastInput.LineItems {
		if line.Total != "" || line.Name != "" {
			t.Fatalf("line item leaks client-side data: %+v", line)
		}
	}
	if len(api.lastInput.LineItems) != 2 || api.lastInput.LineItems[0].ProductID != 101 || api.lastInput.LineItems[0].Quantity != 2 {
		t.Fatalf("unexpected line items %+v", api.lastInput.LineItems)
	}
}

func TestSubmitFailureLeavesCartUntouched(t *testing.T) {
	carts := &stubCarts{cart: twoItemCart()}
	api := &stubCommerce{createErr: &commerce.APIError{StatusCode: 500, Message: "upstream down"}}
	svc := New(carts, api, 550, "b2b_customer", testLogger())

	_, err := svc.Submit(context.Background(), "sess", SubmitInput{Billing: validBilling()})
	if err == nil {
		t.Fatalf("expected error")
	}
	if carts.clearCalls != 0 {
		t.Fatalf("cart must not be cleared on failure")
	}
	if len(carts.cart.Items) != 2 {
		t.Fatalf("cart items must survive a failed submit")
	}
}

func TestSubmitGeneratesIdempotencyKeyWhenAbsent(t *testing.T) {
	carts := &stubCarts{cart: twoItemCart()}
	api := &stubCommerce{order: &commerce.Order{ID: 1, Status: "processing"}}
	svc := New(carts, api, 550, "b2b_customer", testLogger())

	if _, err := svc.Submit(context.Background(), "sess", SubmitInput{Billing: validBilling()}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if api.lastKey == "" {
		t.Fatalf("expected generated idempotency key")
	}

	carts.cart = twoItemCart()
	if _, err := svc.Submit(context.Background(), "sess", SubmitInput{
		Billing:        validBilling(),
		IdempotencyKey: "client-key",
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if api.lastKey != "client-key" {
		t.Fatalf("client key should be forwarded, got %q", api.lastKey)
	}
}

func TestOptionsForAnonymousShopper(t *testing.T) {
	svc := New(&stubCarts{}, &stubCommerce{}, 550, "b2b_customer", testLogger())
	opts := svc.OptionsFor(context.Background(), 0)
	if opts.BusinessAccount {
		t.Fatalf("anonymous shopper is never a business account")
	}
	if opts.ShippingCostCents != 550 {
		t.Fatalf("expected flat fee 550, got %d", opts.ShippingCostCents)
	}
	if len(opts.PaymentMethods) != 1 || opts.PaymentMethods[0].ID != "cod" {
		t.Fatalf("expected cod only, got %+v", opts.PaymentMethods)
	}
}

func TestOptionsForBusinessCustomer(t *testing.T) {
	api := &stubCommerce{customer: businessCustomer("b2b_customer")}
	svc := New(&stubCarts{}, api, 550, "b2b_customer", testLogger())

	opts := svc.OptionsFor(context.Background(), 12)
	if !opts.BusinessAccount || opts.ShippingCostCents != 0 {
		t.Fatalf("expected business account with free shipping, got %+v", opts)
	}
	if len(opts.PaymentMethods) != 2 || opts.PaymentMethods[0].ID != "bacs" {
		t.Fatalf("expected bacs listed first, got %+v", opts.PaymentMethods)
	}
}

func TestOptionsForFlagVariants(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"yes", true},
		{"YES", true},
		{"1", true},
		{"true", true},
		{" True ", true},
		{"no", false},
		{"0", false},
		{"", false},
		{"maybe", false},
	}
	for _, tc := range cases {
		api := &stubCommerce{customer: &commerce.Customer{
			ID:       12,
			MetaData: []commerce.MetaData{{Key: "b2b_customer", Value: commerce.MetaValue(tc.value)}},
		}}
		svc := New(&stubCarts{}, api, 550, "b2b_customer", testLogger())
		opts := svc.OptionsFor(context.Background(), 12)
		if opts.BusinessAccount != tc.want {
			t.Fatalf("flag %q: expected business=%v", tc.value, tc.want)
		}
	}
}

func TestOptionsForFetchErrorFailsSafe(t *testing.T) {
	api := &stubCommerce{customerErr: errors.New("timeout")}
	svc := New(&stubCarts{}, api, 550, "b2b_customer", testLogger())
	opts := svc.OptionsFor(context.Background(), 12)
	if opts.BusinessAccount || opts.ShippingCostCents != 550 {
		t.Fatalf("customer fetch failure must not grant the discount: %+v", opts)
	}
}

func TestOptionsForPrefillsBilling(t *testing.T) {
	api := &stubCommerce{customer: &commerce.Customer{
		ID:        12,
		Email:     "buyer@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Billing:   commerce.OrderAddress{City: "Berlin", Country: "DE"},
	}}
	svc := New(&stubCarts{}, api, 550, "b2b_customer", testLogger())

	opts := svc.OptionsFor(context.Background(), 12)
	if opts.BillingPrefill == nil {
		t.Fatalf("expected billing prefill")
	}
	if opts.BillingPrefill.City != "Berlin" || opts.BillingPrefill.Email != "buyer@example.com" || opts.BillingPrefill.FirstName != "Ada" {
		t.Fatalf("unexpected prefill %+v", opts.BillingPrefill)
	}
}

func TestCentsToDecimal(t *testing.T) {
	cases := map[int64]string{0: "0.00", 5: "0.05", 550: "5.50", 3000: "30.00", 12345: "123.45"}
	for cents, want := range cases {
		if got := centsToDecimal(cents); got != want {
			t.Fatalf("centsToDecimal(%d) = %q, want %q", cents, got, want)
		}
	}
}
