package outboxrepo

import (
	"context"
	"time"

	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add inserts events as pending rows in the given order.
func (r *GormOutboxRepository) Add(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxEventDTO, 0, len(events))
	for _, e := range events {
		if err := e.Type.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgerrs.Translate("outbox event", err)
	}
	return nil
}

// ListPending returns up to limit pending events in insertion order.
func (r *GormOutboxRepository) ListPending(ctx context.Context, limit int) ([]event.Event, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OutboxEventDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *GormOutboxRepository) MarkSent(ctx context.Context, id kernel.UUID, at time.Time) error {
	return r.mark(ctx, id, StatusSent, at, "")
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, at time.Time, reason string) error {
	return r.mark(ctx, id, StatusFailed, at, reason)
}

func (r *GormOutboxRepository) mark(ctx context.Context, id kernel.UUID, status string, at time.Time, reason string) error {
	if err := id.Validate(); err != nil {
		return err
	}

	processedAt := at.UTC()
	result := r.db.WithContext(ctx).
		Model(&OutboxEventDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"status":       status,
			"reason":       reason,
			"processed_at": processedAt,
		})
	if result.Error != nil {
		return pgerrs.Translate("outbox event", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox event", id.String())
	}
	return nil
}
