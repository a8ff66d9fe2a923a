package userrepo

import (
	"context"
	"errors"

	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Translate("user", err)
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "user", id, "id = ?", id.Bytes())
}

// GetActiveRider reports inactive users and non-riders as not found.
func (r *GormUserRepository) GetActiveRider(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "rider", id,
		"id = ? AND role = ? AND is_active", id.Bytes(), user.Rider.String())
}

// ListActiveAdmins returns active admins sorted by name.
func (r *GormUserRepository) ListActiveAdmins(ctx context.Context) ([]*user.User, error) {
	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active", user.Admin.String()).
		Order("name, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *GormUserRepository) first(ctx context.Context, param string, id kernel.UUID, query string, args ...any) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
