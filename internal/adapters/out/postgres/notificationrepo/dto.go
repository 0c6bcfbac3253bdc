// Package notificationrepo persists the notification ledger: one row per push message
// that is still visible to its recipient and may have to be retracted.
package notificationrepo

import (
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is one row of the notifications table.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   int64     `gorm:"not null;index:idx_notifications_order_class"`
	Class     string    `gorm:"size:16;not null;index:idx_notifications_order_class"`
	Recipient string    `gorm:"size:64;not null"`
	Handle    string    `gorm:"size:128;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(r *notification.Record) NotificationDTO {
	return NotificationDTO{
		ID:        r.ID().Google(),
		OrderID:   r.OrderID().Int64(),
		Class:     r.Class().String(),
		Recipient: r.Recipient().String(),
		Handle:    string(r.Handle()),
		CreatedAt: r.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Record, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	class, err := notification.ParseClass(dto.Class)
	if err != nil {
		return nil, err
	}

	return notification.RestoreRecord(
		id,
		kernel.OrderID(dto.OrderID),
		kernel.UserID(dto.Recipient),
		notification.Handle(dto.Handle),
		class,
		dto.CreatedAt,
	)
}
