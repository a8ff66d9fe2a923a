package notificationrepo

import (
	"context"

	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// AddBatch inserts all notifications in one statement.
func (r *GormNotificationRepository) AddBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		if err := n.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(n))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgerrs.Translate("notification", err)
	}
	return nil
}
