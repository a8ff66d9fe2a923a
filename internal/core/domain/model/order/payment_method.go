package order

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// PaymentMethod is how money changed hands at settlement.
// NoPaymentMethod is recorded until the order is settled.
type PaymentMethod int

const (
	NoPaymentMethod PaymentMethod = iota
	Cash
	Online
	Card
)

var paymentMethodNames = map[PaymentMethod]string{
	Cash:   "CASH",
	Online: "ONLINE",
	Card:   "CARD",
}

func (m PaymentMethod) String() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return ""
}

func (m PaymentMethod) Validate() error {
	if _, ok := paymentMethodNames[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// ParsePaymentMethod maps a name to a method; the empty name is NoPaymentMethod.
func ParsePaymentMethod(name string) (PaymentMethod, error) {
	if name == "" {
		return NoPaymentMethod, nil
	}
	for m, n := range paymentMethodNames {
		if n == name {
			return m, nil
		}
	}
	return NoPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod", fmt.Errorf("%q is not a valid payment method", name),
	)
}
