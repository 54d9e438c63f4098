package service

import (
	"context"
	"errors"
	"strings"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
)

// PatientService manages patient registration, login and profile lookup.
type PatientService struct {
	patients repository.PatientRepository
	tokens   *TokenService
}

// NewPatientService creates a new PatientService.
func NewPatientService(patients repository.PatientRepository, tokens *TokenService) *PatientService {
	return &PatientService{patients: patients, tokens: tokens}
}

// Register stores a new patient. A patient matching the same email or phone
// already existing yields ErrConflict.
func (s *PatientService) Register(ctx context.Context, patient *models.Patient) error {
	patient.Email = strings.ToLower(patient.Email)

	existing, err := s.patients.FindByEmailOrPhone(ctx, patient.Email, patient.Phone)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return ErrInternal
	}
	if existing != nil {
		return ErrConflict
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrConflict
		}
		return ErrInternal
	}
	return nil
}

// Login validates a patient's credentials and issues a token bound to the
// patient's email.
func (s *PatientService) Login(ctx context.Context, email, password string) (string, *models.Patient, error) {
	patient, err := s.patients.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUnauthorized
		}
		return "", nil, ErrInternal
	}
	if !patient.CheckPassword(password) {
		return "", nil, ErrUnauthorized
	}

	token, err := s.tokens.Generate(patient.Email)
	if err != nil {
		return "", nil, ErrInternal
	}
	return token, patient, nil
}

// Details returns the patient record for the token's subject.
func (s *PatientService) Details(ctx context.Context, token string) (*models.Patient, error) {
	subject := s.tokens.Subject(token)
	if subject == "" {
		return nil, ErrUnauthorized
	}

	patient, err := s.patients.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	return patient, nil
}
