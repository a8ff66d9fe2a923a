package customer

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

// WalkInRef is the reserved customer reference for anonymous counter traffic.
const WalkInRef = "walk-in"

// WalkInName is the display name of the anonymous walk-in customer.
const WalkInName = "Walk-in Customer"

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

var errInactive = errors.New("customer is inactive")

// Customer is the aggregate that owns the running account balance.
//
// Invariants:
//   - balance is positive when the customer owes the business and negative
//     when the business owes the customer
//   - balance only moves through Apply, in the same transaction that appends
//     the matching ledger entries
type Customer struct {
	id       kernel.UUID
	name     string
	phone    string
	address  string
	balance  kernel.Money
	isActive bool
	isWalkIn bool

	guard guard.ConstructorGuard
}

// NewCustomer registers an active customer with a zero balance.
func NewCustomer(id kernel.UUID, name, phone, address string) (*Customer, error) {
	c := &Customer{
		balance:  kernel.ZeroMoney(),
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	c.phone = strings.TrimSpace(phone)
	c.address = strings.TrimSpace(address)
	return c, nil
}

// NewWalkInCustomer creates the shared anonymous customer record.
func NewWalkInCustomer(id kernel.UUID) (*Customer, error) {
	c, err := NewCustomer(id, WalkInName, "", "")
	if err != nil {
		return nil, err
	}
	c.isWalkIn = true
	return c, nil
}

// RestoreCustomer rebuilds a customer from persistence.
func RestoreCustomer(
	id kernel.UUID,
	name, phone, address string,
	balance kernel.Money,
	isActive, isWalkIn bool,
) (*Customer, error) {
	c := &Customer{
		phone:    phone,
		address:  address,
		balance:  balance,
		isActive: isActive,
		isWalkIn: isWalkIn,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Phone() string {
	return c.phone
}

func (c *Customer) Address() string {
	return c.address
}

// Balance is the live running balance.
func (c *Customer) Balance() kernel.Money {
	return c.balance
}

func (c *Customer) IsActive() bool {
	return c.isActive
}

func (c *Customer) IsWalkIn() bool {
	return c.isWalkIn
}

// Apply moves the balance by delta and returns the new balance.
func (c *Customer) Apply(delta kernel.Money) kernel.Money {
	c.balance = c.balance.Add(delta)
	return c.balance
}

// EnsureCanOrder rejects deactivated customers. An inactive customer is
// reported as not found.
func (c *Customer) EnsureCanOrder() error {
	if !c.isActive {
		return errs.NewObjectNotFoundErrorWithCause("customer", c.id, errInactive)
	}
	return nil
}

func (c *Customer) Deactivate() {
	c.isActive = false
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
