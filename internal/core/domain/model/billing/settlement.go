package billing

import (
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
)

// Settlement is the outcome of applying a payment to an amount owed.
// At most one of Receivable and Payable is non-zero; both are zero exactly
// when the payment equals the amount owed.
type Settlement struct {
	Status     PaymentStatus
	Receivable kernel.Money
	Payable    kernel.Money
}

// StatusFor classifies paid against total:
//
//	paid == 0          NOT_PAID
//	paid <  0          REFUND
//	0 < paid < total   PARTIAL
//	paid == total      PAID
//	paid >  total      OVERPAID
func StatusFor(total, paid kernel.Money) PaymentStatus {
	switch {
	case paid.IsZero():
		return NotPaid
	case paid.IsNegative():
		return Refund
	case paid.LessThan(total):
		return Partial
	case paid.Equal(total):
		return Paid
	default:
		return Overpaid
	}
}

// Reconcile settles paid against total.
func Reconcile(total, paid kernel.Money) Settlement {
	remaining := total.Sub(paid)
	return Settlement{
		Status:     StatusFor(total, paid),
		Receivable: remaining.NonNegative(),
		Payable:    remaining.Neg().NonNegative(),
	}
}

// ApplyToBalance returns the balance after the customer pays paid.
func ApplyToBalance(balance, paid kernel.Money) kernel.Money {
	return balance.Sub(paid)
}

// ClearBill is the outcome of settling a customer's whole outstanding balance.
type ClearBill struct {
	Settlement

	// StoredPaid is the signed amount recorded on the order: positive when
	// the customer paid in, negative when the business paid out.
	StoredPaid kernel.Money

	// NewBalance is the customer balance after the settlement.
	NewBalance kernel.Money
}

// BalanceDelta is the ledger movement of the settlement.
func (c ClearBill) BalanceDelta() kernel.Money {
	return c.StoredPaid.Neg()
}

// ReconcileClearBill settles a cash amount against the live balance.
//
// A positive balance is a receivable: paid reduces it, and paying more than
// owed flips the remainder into a payable. A negative balance is a payable:
// paid is money handed to the customer, so its sign is inverted before it is
// subtracted from the balance.
func ReconcileClearBill(balance, paid kernel.Money) (ClearBill, error) {
	if balance.IsZero() {
		return ClearBill{}, errs.NewValueIsInvalidError("balance is zero, nothing to clear")
	}
	if !paid.IsPositive() {
		return ClearBill{}, errs.NewValueIsOutOfRangeError("paidAmount", paid.String(), "0.01", "unbounded")
	}

	if balance.IsPositive() {
		return ClearBill{
			Settlement: Reconcile(balance, paid),
			StoredPaid: paid,
			NewBalance: ApplyToBalance(balance, paid),
		}, nil
	}

	owed := balance.Abs()
	remaining := owed.Sub(paid)
	stored := paid.Neg()
	return ClearBill{
		Settlement: Settlement{
			Status:     StatusFor(owed, paid),
			Receivable: remaining.Neg().NonNegative(),
			Payable:    remaining.NonNegative(),
		},
		StoredPaid: stored,
		NewBalance: ApplyToBalance(balance, stored),
	}, nil
}
