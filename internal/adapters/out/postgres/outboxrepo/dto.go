// Package outboxrepo implements the transactional outbox of order events.
// Events are inserted in the ledger transaction and drained by the
// notification dispatcher.
package outboxrepo

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Delivery states of an outbox row.
const (
	StatusPending = "PENDING"
	StatusSent    = "SENT"
	StatusFailed  = "FAILED"
)

// OutboxEventDTO is the row of the outbox_events table.
type OutboxEventDTO struct {
	ID          uuid.UUID                      `gorm:"type:uuid;primaryKey"`
	Seq         int64                          `gorm:"type:bigserial;not null;uniqueIndex;<-:false"`
	OrderID     uuid.UUID                      `gorm:"type:uuid;not null;index"`
	Type        string                         `gorm:"type:varchar(32);not null"`
	Payload     datatypes.JSONType[PayloadDTO] `gorm:"not null"`
	Status      string                         `gorm:"type:varchar(16);not null;index"`
	Reason      string                         `gorm:"not null;default:''"`
	CreatedAt   time.Time                      `gorm:"not null"`
	ProcessedAt *time.Time
}

func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}

// PayloadDTO is the JSON body of an outbox row. Amounts keep their two
// decimal places as strings.
type PayloadDTO struct {
	CustomerID      *string `json:"customerId,omitempty"`
	CustomerName    string  `json:"customerName"`
	CustomerAddress string  `json:"customerAddress"`
	Bottles         int     `json:"bottles"`
	TotalAmount     string  `json:"totalAmount"`
	PaidAmount      string  `json:"paidAmount"`
	Receivable      string  `json:"receivable"`
	Payable         string  `json:"payable"`
	RiderID         *string `json:"riderId,omitempty"`
	ActorID         *string `json:"actorId,omitempty"`
	ActorRole       string  `json:"actorRole,omitempty"`
	Reason          string  `json:"reason,omitempty"`
}

func fromDomain(e event.Event) OutboxEventDTO {
	var actorRole string
	if e.ActorRole != user.UnknownRole {
		actorRole = e.ActorRole.String()
	}

	return OutboxEventDTO{
		ID:      e.ID.Bytes(),
		OrderID: e.OrderID.Bytes(),
		Type:    e.Type.String(),
		Payload: datatypes.NewJSONType(PayloadDTO{
			CustomerID:      optionalID(validOrNil(e.CustomerID)),
			CustomerName:    e.CustomerName,
			CustomerAddress: e.CustomerAddress,
			Bottles:         e.Bottles,
			TotalAmount:     e.TotalAmount.String(),
			PaidAmount:      e.PaidAmount.String(),
			Receivable:      e.Receivable.String(),
			Payable:         e.Payable.String(),
			RiderID:         optionalID(e.RiderID),
			ActorID:         optionalID(e.ActorID),
			ActorRole:       actorRole,
			Reason:          e.Reason,
		}),
		Status:    StatusPending,
		CreatedAt: e.OccurredAt,
	}
}

func toDomain(dto OutboxEventDTO) (event.Event, error) {
	p := dto.Payload.Data()

	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	orderID, orderErr := kernel.UUIDFromBytes(dto.OrderID[:])
	eventType, typeErr := event.ParseType(dto.Type)
	customerID, customerErr := parseOptionalID(p.CustomerID)
	riderID, riderErr := parseOptionalID(p.RiderID)
	actorID, actorErr := parseOptionalID(p.ActorID)

	total, totalErr := kernel.MoneyFromString(p.TotalAmount)
	paid, paidErr := kernel.MoneyFromString(p.PaidAmount)
	receivable, receivableErr := kernel.MoneyFromString(p.Receivable)
	payable, payableErr := kernel.MoneyFromString(p.Payable)

	var actorRole user.Role
	var roleErr error
	if p.ActorRole != "" {
		actorRole, roleErr = user.ParseRole(p.ActorRole)
	}

	if err := errors.Join(
		idErr, orderErr, typeErr, customerErr, riderErr, actorErr,
		totalErr, paidErr, receivableErr, payableErr, roleErr,
	); err != nil {
		return event.Event{}, err
	}

	e := event.Event{
		ID:              id,
		Type:            eventType,
		OrderID:         orderID,
		OccurredAt:      dto.CreatedAt.UTC(),
		CustomerName:    p.CustomerName,
		CustomerAddress: p.CustomerAddress,
		Bottles:         p.Bottles,
		TotalAmount:     total,
		PaidAmount:      paid,
		Receivable:      receivable,
		Payable:         payable,
		RiderID:         riderID,
		ActorID:         actorID,
		ActorRole:       actorRole,
		Reason:          p.Reason,
	}
	if customerID != nil {
		e.CustomerID = *customerID
	}
	return e, nil
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// validOrNil drops the zero UUID of events not yet attached to a customer.
func validOrNil(id kernel.UUID) *kernel.UUID {
	if id.Validate() != nil {
		return nil
	}
	return &id
}

func parseOptionalID(s *string) (*kernel.UUID, error) {
	if s == nil {
		return nil, nil //nolint:nilnil // absent identifier
	}
	id, err := kernel.UUIDFromString(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
