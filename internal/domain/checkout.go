package domain

// PaymentMethod identifies how the shopper pays for an order.
type PaymentMethod string

const (
	// PaymentCOD is cash on delivery, offered to every shopper.
	PaymentCOD PaymentMethod = "cod"
	// PaymentBankTransfer is offered to business accounts only.
	PaymentBankTransfer PaymentMethod = "bacs"
)

// Title returns the human-readable label sent alongside the method id.
func (m PaymentMethod) Title() string {
	switch m {
	case PaymentCOD:
		return "Cash on delivery"
	case PaymentBankTransfer:
		return "Direct bank transfer"
	default:
		return string(m)
	}
}
