package billing

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// PaymentStatus describes how a payment compares to the amount owed.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	NotPaid
	Partial
	Paid
	Overpaid
	Refund
)

var paymentStatusNames = map[PaymentStatus]string{
	NotPaid:  "NOT_PAID",
	Partial:  "PARTIAL",
	Paid:     "PAID",
	Overpaid: "OVERPAID",
	Refund:   "REFUND",
}

func (s PaymentStatus) String() string {
	if name, ok := paymentStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// ParsePaymentStatus maps a stored or wire name back to a PaymentStatus.
func ParsePaymentStatus(name string) (PaymentStatus, error) {
	for status, n := range paymentStatusNames {
		if n == name {
			return status, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus", fmt.Errorf("%q is not a valid payment status", name),
	)
}
