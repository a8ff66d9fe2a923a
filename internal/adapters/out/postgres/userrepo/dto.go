// Package userrepo persists operators: admins and riders.
package userrepo

import (
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"not null"`
	Phone    string    `gorm:"not null;default:''"`
	Role     string    `gorm:"type:varchar(16);not null;index:idx_users_role_active"`
	IsActive bool      `gorm:"not null;default:true;index:idx_users_role_active"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:       u.ID().Bytes(),
		Name:     u.Name(),
		Phone:    u.Phone(),
		Role:     u.Role().String(),
		IsActive: u.IsActive(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(id, dto.Name, dto.Phone, role, dto.IsActive)
}
