package postgres

import (
	"waterdelivery/internal/adapters/out/postgres/customerrepo"
	"waterdelivery/internal/adapters/out/postgres/ledgerrepo"
	"waterdelivery/internal/adapters/out/postgres/notificationrepo"
	"waterdelivery/internal/adapters/out/postgres/orderrepo"
	"waterdelivery/internal/adapters/out/postgres/outboxrepo"
	"waterdelivery/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Tables lists every table in truncation-safe order.
var Tables = []string{
	"notifications",
	"outbox_events",
	"ledger_entries",
	"orders",
	"customers",
	"users",
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&customerrepo.CustomerDTO{},
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&ledgerrepo.LedgerEntryDTO{},
		&outboxrepo.OutboxEventDTO{},
		&notificationrepo.NotificationDTO{},
	)
}
