// Package postgres provides the GORM-based Unit of Work used by every command.
//
// A unit of work is created per business operation and wraps one database
// transaction. Repositories obtained from it run inside that transaction once
// Begin has been called, and against the plain connection otherwise.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	c, err := uow.CustomerRepository().GetForUpdate(ctx, customerID)
//	// ... mutate the customer and the order, append ledger entries
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op that returns
// gorm.ErrInvalidTransaction, so the deferred call above is safe.
//
// A serialization failure or deadlock reported at commit time surfaces as an
// errs.ConflictError and the whole operation may be retried on a fresh unit
// of work.
package postgres

import (
	"context"

	"waterdelivery/internal/adapters/out/postgres/customerrepo"
	"waterdelivery/internal/adapters/out/postgres/ledgerrepo"
	"waterdelivery/internal/adapters/out/postgres/notificationrepo"
	"waterdelivery/internal/adapters/out/postgres/orderrepo"
	"waterdelivery/internal/adapters/out/postgres/outboxrepo"
	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/adapters/out/postgres/userrepo"
	"waterdelivery/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across all repositories.
// It is not safe for concurrent use.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it again while a transaction is open
// does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit makes the changes permanent and closes the transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerrs.Translate("transaction", err)
}

// Rollback discards the changes and closes the transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) LedgerRepository() ports.LedgerRepository {
	return ledgerrepo.NewGormLedgerRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
