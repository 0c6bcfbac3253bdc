package userrepo

import (
	"context"
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/user"
	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements ports.UserRepository and ports.IdentityResolver.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Save inserts the user or replaces its role and name.
func (r *GormUserRepository) Save(ctx context.Context, u user.User) error {
	if err := u.ID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "telegram_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "name"}),
		}).
		Create(&dto).Error
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UserID) (user.User, error) {
	if err := id.Validate(); err != nil {
		return user.User{}, err
	}

	var dto UserDTO
	err := r.db.WithContext(ctx).First(&dto, "telegram_id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, errs.NewObjectNotFoundError("telegram id", id.String())
		}
		return user.User{}, err
	}

	return toDomain(dto)
}

// RoleOf returns user.RoleUnknown without error for unregistered identities.
func (r *GormUserRepository) RoleOf(ctx context.Context, id kernel.UserID) (user.Role, error) {
	u, err := r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return user.RoleUnknown, nil
		}
		return user.RoleUnknown, err
	}
	return u.Role, nil
}

func (r *GormUserRepository) DisplayNameOf(ctx context.Context, id kernel.UserID) (string, error) {
	u, err := r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return id.String(), nil
		}
		return "", err
	}
	return u.DisplayName(), nil
}

// Workers lists every identity holding the worker role, in registration key order.
func (r *GormUserRepository) Workers(ctx context.Context) ([]kernel.UserID, error) {
	var raw []string
	err := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("role = ?", user.RoleWorker.String()).
		Order("telegram_id").
		Pluck("telegram_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UserID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, kernel.UserID(id))
	}
	return ids, nil
}
