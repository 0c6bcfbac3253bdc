package notificationrepo

import (
	"context"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, record *notification.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the records of one class for an order, oldest first.
func (r *GormNotificationRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.OrderID,
	class notification.Class,
) ([]*notification.Record, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND class = ?", orderID.Int64(), class.String()).
		Order("created_at").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*notification.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Delete removes the given records. Unknown ids are ignored.
func (r *GormNotificationRepository) Delete(ctx context.Context, ids ...kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	return r.db.WithContext(ctx).Where("id IN ?", raw).Delete(&NotificationDTO{}).Error
}

func (r *GormNotificationRepository) DeleteByOrder(ctx context.Context, orderID kernel.OrderID) error {
	return r.db.WithContext(ctx).Where("order_id = ?", orderID.Int64()).Delete(&NotificationDTO{}).Error
}

// DeleteCreatedBefore is the safety net for rows whose retraction never happened.
func (r *GormNotificationRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&NotificationDTO{})
	return result.RowsAffected, result.Error
}
