package ledger

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// Kind tells why a ledger entry moved the balance.
type Kind int

const (
	UnknownKind Kind = iota

	// Charge adds an order's cost to the balance.
	Charge

	// Payment records cash moving between customer and business.
	Payment

	// Reversal undoes earlier entries of the same order.
	Reversal
)

var kindNames = map[Kind]string{
	Charge:   "CHARGE",
	Payment:  "PAYMENT",
	Reversal: "REVERSAL",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

func (k Kind) Validate() error {
	if _, ok := kindNames[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid ledger entry kind", k))
	}
	return nil
}

func ParseKind(name string) (Kind, error) {
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid ledger entry kind", name))
}
