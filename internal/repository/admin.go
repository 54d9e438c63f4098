package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// AdminStore is the MySQL-backed AdminRepository.
type AdminStore struct {
	DB *gorm.DB
}

// NewAdminStore creates a new AdminStore.
func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{DB: db}
}

func (s *AdminStore) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (s *AdminStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
