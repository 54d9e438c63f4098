package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// PatientStore is the MySQL-backed PatientRepository.
type PatientStore struct {
	DB *gorm.DB
}

// NewPatientStore creates a new PatientStore.
func NewPatientStore(db *gorm.DB) *PatientStore {
	return &PatientStore{DB: db}
}

func (s *PatientStore) Create(ctx context.Context, patient *models.Patient) error {
	err := s.DB.WithContext(ctx).Create(patient).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s *PatientStore) FindByID(ctx context.Context, id string) (*models.Patient, error) {
	var patient models.Patient
	err := s.DB.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

func (s *PatientStore) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

func (s *PatientStore) FindByEmailOrPhone(ctx context.Context, email, phone string) (*models.Patient, error) {
	var patient models.Patient
	err := s.DB.WithContext(ctx).Where("email = ? OR phone = ?", email, phone).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

func (s *PatientStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Patient{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
