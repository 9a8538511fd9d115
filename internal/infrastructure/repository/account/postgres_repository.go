package account

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/igi-pe/report-api/internal/domain/account"
	"github.com/igi-pe/report-api/internal/infrastructure/database/entities"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// PostgresRepository persists users with GORM.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find user", err, "6a8cae0c-4c6e-4a8c-8eac-3c5e7a9c1e45")
	}
	return &domain.User{ID: entity.ID, Email: entity.Email, HashedPassword: entity.HashedPassword}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	entity := entities.User{Email: user.Email, HashedPassword: user.HashedPassword}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.Validation(ctx, platformerrors.LayerRepository, "Email already registered", "7b9dbf1d-5d7f-4b9d-9fbd-4d6f8b0d2f56")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create user", err, "8caed02e-6e8a-4cae-a0ce-5e7a9c1e3a67")
	}
	user.ID = entity.ID
	return nil
}
