// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored in its textual form so the table stays readable from SQL.
type OrderDTO struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	CreatorID    string  `gorm:"size:64;not null;index"`
	WorkerID     *string `gorm:"size:64;index"`
	Urgent       bool    `gorm:"not null;default:false"`
	Deadline     *time.Time
	Status       string    `gorm:"size:16;not null;index"`
	CreatedAt    time.Time `gorm:"not null;index"`
	CompletedAt  *time.Time
	ArchivedAt   *time.Time
	CanceledAt   *time.Time
	CancelReason string        `gorm:"type:text;not null;default:''"`
	Items        []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is one row of order_items. Position keeps the creator's ordering.
type LineItemDTO struct {
	ID       int64   `gorm:"primaryKey;autoIncrement"`
	OrderID  int64   `gorm:"not null;index"`
	Position int     `gorm:"not null"`
	Product  string  `gorm:"size:255;not null"`
	Color    string  `gorm:"size:255;not null"`
	Quantity float64 `gorm:"not null"`
}

func (LineItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var workerID *string
	if w := o.Worker(); w != nil {
		s := w.String()
		workerID = &s
	}

	items := make([]LineItemDTO, 0, len(o.Items()))
	for idx, item := range o.Items() {
		items = append(items, LineItemDTO{
			Position: idx,
			Product:  item.Product(),
			Color:    item.Color(),
			Quantity: item.Quantity(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Int64(),
		CreatorID:    o.Creator().String(),
		WorkerID:     workerID,
		Urgent:       o.IsUrgent(),
		Deadline:     o.Deadline(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		CompletedAt:  o.CompletedAt(),
		ArchivedAt:   o.ArchivedAt(),
		CanceledAt:   o.CanceledAt(),
		CancelReason: o.CancelReason(),
		Items:        items,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
// Items must already be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var worker *kernel.UserID
	if dto.WorkerID != nil {
		w := kernel.UserID(*dto.WorkerID)
		worker = &w
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewLineItem(itemDTO.Product, itemDTO.Color, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           kernel.OrderID(dto.ID),
		Creator:      kernel.UserID(dto.CreatorID),
		Items:        items,
		Urgent:       dto.Urgent,
		Deadline:     utc(dto.Deadline),
		Status:       status,
		Worker:       worker,
		CreatedAt:    dto.CreatedAt.UTC(),
		CompletedAt:  utc(dto.CompletedAt),
		ArchivedAt:   utc(dto.ArchivedAt),
		CanceledAt:   utc(dto.CanceledAt),
		CancelReason: dto.CancelReason,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
