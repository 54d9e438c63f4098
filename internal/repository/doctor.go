package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// DoctorStore is the MySQL-backed DoctorRepository.
type DoctorStore struct {
	DB *gorm.DB
}

// NewDoctorStore creates a new DoctorStore.
func NewDoctorStore(db *gorm.DB) *DoctorStore {
	return &DoctorStore{DB: db}
}

func (s *DoctorStore) Create(ctx context.Context, doctor *models.Doctor) error {
	err := s.DB.WithContext(ctx).Create(doctor).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s *DoctorStore) Save(ctx context.Context, doctor *models.Doctor) error {
	return s.DB.WithContext(ctx).Save(doctor).Error
}

// Delete removes the doctor inside one transaction. The caller is expected
// to have removed the doctor's appointments first.
func (s *DoctorStore) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Doctor{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *DoctorStore) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.DB.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

func (s *DoctorStore) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

func (s *DoctorStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Doctor{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *DoctorStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Doctor{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (s *DoctorStore) List(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := s.DB.WithContext(ctx).Order("name asc").Find(&doctors).Error
	return doctors, err
}

func (s *DoctorStore) FindByNameLike(ctx context.Context, name string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := s.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ?", like(name)).
		Order("name asc").
		Find(&doctors).Error
	return doctors, err
}

func (s *DoctorStore) FindBySpecialty(ctx context.Context, specialty string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := s.DB.WithContext(ctx).
		Where("LOWER(specialty) = ?", strings.ToLower(specialty)).
		Order("name asc").
		Find(&doctors).Error
	return doctors, err
}

func (s *DoctorStore) FindByNameLikeAndSpecialty(ctx context.Context, name, specialty string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := s.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ? AND LOWER(specialty) = ?", like(name), strings.ToLower(specialty)).
		Order("name asc").
		Find(&doctors).Error
	return doctors, err
}

func like(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
