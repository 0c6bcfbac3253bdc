// Package userrepo stores role registrations and answers identity questions for the core.
package userrepo

import (
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/user"
)

// UserDTO is one row of the users table, keyed by Telegram chat id.
type UserDTO struct {
	TelegramID string `gorm:"column:telegram_id;size:64;primaryKey"`
	Role       string `gorm:"size:16;not null;index"`
	Name       string `gorm:"size:255;not null;default:''"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u user.User) UserDTO {
	return UserDTO{TelegramID: u.ID.String(), Role: u.Role.String(), Name: u.Name}
}

func toDomain(dto UserDTO) (user.User, error) {
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return user.User{}, err
	}
	return user.NewUser(kernel.UserID(dto.TelegramID), role, dto.Name)
}
