package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
	"clinic-app-server/internal/utils"
)

// DoctorService manages doctor records and exposes their availability to
// the scheduling core.
type DoctorService struct {
	doctors      repository.DoctorRepository
	appointments repository.AppointmentRepository
	tokens       *TokenService
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(doctors repository.DoctorRepository, appointments repository.AppointmentRepository, tokens *TokenService) *DoctorService {
	return &DoctorService{doctors: doctors, appointments: appointments, tokens: tokens}
}

// Availability returns the doctor's configured slot list. Booked slots are
// not subtracted and the date does not narrow the list; the configured
// slots are treated as a weekly template. An unknown doctor yields an empty
// list, never an error.
func (s *DoctorService) Availability(ctx context.Context, doctorID string, date time.Time) []string {
	doctor, err := s.doctors.FindByID(ctx, doctorID)
	if err != nil {
		return []string{}
	}
	return doctor.AvailableTimes
}

// Save stores a new doctor. The name and specialty are title-cased and the
// email lowercased before the write; an existing email yields ErrConflict.
func (s *DoctorService) Save(ctx context.Context, doctor *models.Doctor) error {
	doctor.Name = utils.TitleCase(doctor.Name)
	doctor.Specialty = utils.TitleCase(doctor.Specialty)
	doctor.Email = strings.ToLower(doctor.Email)

	exists, err := s.doctors.ExistsByEmail(ctx, doctor.Email)
	if err != nil {
		return ErrInternal
	}
	if exists {
		return ErrConflict
	}

	if err := s.doctors.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrConflict
		}
		return ErrInternal
	}
	return nil
}

// Update overwrites an existing doctor's record.
func (s *DoctorService) Update(ctx context.Context, doctor *models.Doctor) error {
	exists, err := s.doctors.ExistsByID(ctx, doctor.ID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrNotFound
	}

	doctor.Email = strings.ToLower(doctor.Email)
	if err := s.doctors.Save(ctx, doctor); err != nil {
		return ErrInternal
	}
	return nil
}

// Delete removes a doctor together with all their appointments.
func (s *DoctorService) Delete(ctx context.Context, id string) error {
	exists, err := s.doctors.ExistsByID(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrNotFound
	}

	if err := s.appointments.DeleteAllByDoctor(ctx, id); err != nil {
		return ErrInternal
	}
	if err := s.doctors.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	return nil
}

// List returns all doctors ordered by name.
func (s *DoctorService) List(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return doctors, nil
}

// Filter narrows the doctor list by name substring, specialty and slot
// period ("AM"/"PM"), most specific combination first. An empty filter or
// the literal text "null" counts as absent.
func (s *DoctorService) Filter(ctx context.Context, name, specialty, period string) ([]models.Doctor, error) {
	var (
		doctors []models.Doctor
		err     error
	)

	hasName := filterPresent(name)
	hasSpecialty := filterPresent(specialty)
	hasPeriod := filterPresent(period)

	switch {
	case hasName && hasSpecialty:
		doctors, err = s.doctors.FindByNameLikeAndSpecialty(ctx, name, specialty)
	case hasName:
		doctors, err = s.doctors.FindByNameLike(ctx, name)
	case hasSpecialty:
		doctors, err = s.doctors.FindBySpecialty(ctx, specialty)
	default:
		doctors, err = s.doctors.List(ctx)
	}
	if err != nil {
		return nil, ErrInternal
	}

	if hasPeriod {
		doctors = filterByPeriod(doctors, period)
	}
	return doctors, nil
}

// Login validates a doctor's credentials and issues a token bound to the
// doctor's email.
func (s *DoctorService) Login(ctx context.Context, email, password string) (string, *models.Doctor, error) {
	doctor, err := s.doctors.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUnauthorized
		}
		return "", nil, ErrInternal
	}
	if !doctor.CheckPassword(password) {
		return "", nil, ErrUnauthorized
	}

	token, err := s.tokens.Generate(doctor.Email)
	if err != nil {
		return "", nil, ErrInternal
	}
	return token, doctor, nil
}

// filterByPeriod keeps doctors with at least one slot in the requested half
// of the day. The comparison is lexical against "12:00", which works because
// slot strings are zero-padded and start with the slot's start time.
func filterByPeriod(doctors []models.Doctor, period string) []models.Doctor {
	am := strings.EqualFold(period, "AM")
	filtered := make([]models.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		for _, slot := range doctor.AvailableTimes {
			if (am && slot < "12:00") || (!am && slot >= "12:00") {
				filtered = append(filtered, doctor)
				break
			}
		}
	}
	return filtered
}

// filterPresent treats empty, whitespace-only and the literal "null" as an
// absent filter. Naive clients serialize missing values as "null".
func filterPresent(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && !strings.EqualFold(trimmed, "null")
}
