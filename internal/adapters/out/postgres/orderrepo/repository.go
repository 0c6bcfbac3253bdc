package orderrepo

import (
	"context"
	"errors"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order with its items and assigns the generated identity to the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return aggregate.AssignID(kernel.OrderID(dto.ID))
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order id", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ApplyTransition issues a single UPDATE whose WHERE clause carries the whole predicate:
// id, allowed source statuses and, depending on the scope, the worker or creator.
// The affected-row count is the only success signal.
func (r *GormOrderRepository) ApplyTransition(ctx context.Context, t order.Transition) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}

	q := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", t.OrderID().Int64()).
		Where("status IN ?", statusNames(t.From()))

	actor := t.Actor().String()
	switch t.Scope() {
	case order.ScopeWorker:
		q = q.Where("worker_id = ?", actor)
	case order.ScopeCreator:
		q = q.Where("creator_id = ?", actor)
	case order.ScopeCreatorOrWorker:
		q = q.Where("(creator_id = ? OR worker_id = ?)", actor, actor)
	case order.ScopeNone:
	}

	result := q.Updates(transitionColumns(t))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// ListCompletedBefore returns completed orders whose completion is older than cutoff.
func (r *GormOrderRepository) ListCompletedBefore(ctx context.Context, cutoff time.Time) ([]kernel.OrderID, error) {
	return r.listIDs(ctx, "status = ? AND completed_at IS NOT NULL AND completed_at < ?",
		order.Completed.String(), cutoff.UTC())
}

// ListArchivedBefore returns archived orders whose archival is older than cutoff.
func (r *GormOrderRepository) ListArchivedBefore(ctx context.Context, cutoff time.Time) ([]kernel.OrderID, error) {
	return r.listIDs(ctx, "status = ? AND archived_at IS NOT NULL AND archived_at < ?",
		order.Archived.String(), cutoff.UTC())
}

// DeleteArchived removes the order if it is still archived, then its items.
func (r *GormOrderRepository) DeleteArchived(ctx context.Context, id kernel.OrderID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id.Int64(), order.Archived.String()).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	// Stores without enforced foreign keys keep the items otherwise.
	if err := r.db.WithContext(ctx).Where("order_id = ?", id.Int64()).Delete(&LineItemDTO{}).Error; err != nil {
		return false, err
	}

	return true, nil
}

func (r *GormOrderRepository) listIDs(ctx context.Context, where string, args ...any) ([]kernel.OrderID, error) {
	var raw []int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where(where, args...).
		Order("id").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.OrderID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, kernel.OrderID(id))
	}
	return ids, nil
}

func transitionColumns(t order.Transition) map[string]any {
	columns := map[string]any{"status": t.To().String()}

	switch t.Operation() {
	case order.Claim:
		columns["worker_id"] = t.Actor().String()
	case order.Complete:
		columns["completed_at"] = t.At()
	case order.Archive:
		columns["archived_at"] = t.At()
	case order.Unarchive:
		columns["archived_at"] = nil
	case order.Cancel:
		columns["canceled_at"] = t.At()
		columns["cancel_reason"] = t.Reason()
	}

	return columns
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
