package queries

import (
	"context"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/user"
	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// WhoAmIQueryResponse is the caller's registration.
type WhoAmIQueryResponse struct {
	ID   kernel.UserID
	Role user.Role
	Name string
}

type WhoAmIQueryHandler struct {
	db *gorm.DB
}

func NewWhoAmIQueryHandler(db *gorm.DB) WhoAmIQueryHandler {
	return WhoAmIQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for callers that never registered.
func (h WhoAmIQueryHandler) Handle(ctx context.Context, query WhoAmIQuery) (WhoAmIQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return WhoAmIQueryResponse{}, err
	}

	var row struct {
		Role string
		Name string
	}
	result := h.db.WithContext(ctx).
		Raw(`SELECT role, name FROM users WHERE telegram_id = ?`, query.ID().String()).
		Scan(&row)
	if result.Error != nil {
		return WhoAmIQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return WhoAmIQueryResponse{}, errs.NewObjectNotFoundError("telegram id", query.ID().String())
	}

	role, err := user.ParseRole(row.Role)
	if err != nil {
		return WhoAmIQueryResponse{}, err
	}

	return WhoAmIQueryResponse{ID: query.ID(), Role: role, Name: row.Name}, nil
}
