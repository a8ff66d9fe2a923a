// Package notificationrepo keeps a record of every notification handed to
// the notifier.
package notificationrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationDTO struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	EventID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type      string            `gorm:"type:varchar(32);not null"`
	Title     string            `gorm:"not null"`
	Message   string            `gorm:"not null"`
	Data      datatypes.JSONMap `gorm:"not null"`
	CreatedAt time.Time         `gorm:"not null"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	data := make(datatypes.JSONMap, len(n.Data()))
	for k, v := range n.Data() {
		data[k] = v
	}

	return NotificationDTO{
		ID:        n.ID().Bytes(),
		EventID:   n.EventID().Bytes(),
		UserID:    n.UserID().Bytes(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		Message:   n.Message(),
		Data:      data,
		CreatedAt: n.CreatedAt(),
	}
}
