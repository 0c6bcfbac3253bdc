package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// ListCreatorOrdersQueryHandler reads a creator's orders straight from the database.
type ListCreatorOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListCreatorOrdersQueryHandler(db *gorm.DB) ListCreatorOrdersQueryHandler {
	return ListCreatorOrdersQueryHandler{db: db}
}

// Handle returns the matching orders, urgent first, then newest first.
func (h ListCreatorOrdersQueryHandler) Handle(ctx context.Context, query ListCreatorOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := []string{"creator_id = ?"}
	args := []any{query.Creator().String()}

	if statuses := query.Statuses(); len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, s.String())
		}
		conditions = append(conditions, "status IN ?")
		args = append(args, names)
	}
	if query.UrgentOnly() {
		conditions = append(conditions, "urgent = ?")
		args = append(args, true)
	}

	return loadOrders(ctx, h.db, strings.Join(conditions, " AND "), args...)
}
