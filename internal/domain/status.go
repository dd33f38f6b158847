package domain

type DiningType string

const (
	DiningTypeDineIn   DiningType = "DINE_IN"
	DiningTypeTakeAway DiningType = "TAKE_AWAY"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCashless PaymentMethod = "CASHLESS"
)

type Status string

const (
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusPaid            Status = "PAID"
)

func ValidDiningType(s string) bool {
	return DiningType(s) == DiningTypeDineIn || DiningType(s) == DiningTypeTakeAway
}

func ValidPaymentMethod(s string) bool {
	return PaymentMethod(s) == PaymentCash || PaymentMethod(s) == PaymentCashless
}
