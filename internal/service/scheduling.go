package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
)

// SlotValidation is the outcome of checking a proposed appointment time
// against a doctor's declared slots.
type SlotValidation int

const (
	SlotValid SlotValidation = iota
	SlotInvalid
	SlotDoctorUnknown
)

// SchedulingService coordinates booking, rescheduling, cancellation, status
// transitions and appointment queries.
type SchedulingService struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	tokens       *TokenService
	availability *DoctorService

	// strictStatus limits ChangeStatus to the scheduled -> fulfilled
	// transition. With it off any integer write goes through, matching the
	// legacy system.
	strictStatus bool
}

// NewSchedulingService creates a new SchedulingService.
func NewSchedulingService(
	appointments repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	tokens *TokenService,
	availability *DoctorService,
	strictStatus bool,
) *SchedulingService {
	return &SchedulingService{
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		tokens:       tokens,
		availability: availability,
		strictStatus: strictStatus,
	}
}

// Validate checks whether the proposed time matches one of the doctor's
// declared slots. The check is an exact string match of
// "HH:MM-HH:MM" (start plus one hour) against the configured list, not an
// interval-overlap test: a 09:15 start does not validate against a
// "09:00-10:00" slot. Lookup failures other than a missing doctor collapse
// to SlotInvalid.
func (s *SchedulingService) Validate(ctx context.Context, doctorID string, at time.Time) SlotValidation {
	doctor, err := s.doctors.FindByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SlotDoctorUnknown
		}
		return SlotInvalid
	}

	slots := s.availability.Availability(ctx, doctor.ID, at)
	slot := at.Format("15:04") + "-" + at.Add(time.Hour).Format("15:04")
	if slices.Contains(slots, slot) {
		return SlotValid
	}
	return SlotInvalid
}

// Book inserts a new appointment with status scheduled. Slot validation is
// the caller's precondition; failures here are storage failures, except a
// concurrent booking of the same doctor and time which surfaces as
// ErrConflict through the unique index.
func (s *SchedulingService) Book(ctx context.Context, doctorID, patientID string, at time.Time) (*models.Appointment, error) {
	appt := &models.Appointment{
		DoctorID:        doctorID,
		PatientID:       patientID,
		AppointmentTime: at,
		Status:          models.StatusScheduled,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, ErrInternal
	}
	return appt, nil
}

// Update moves an existing appointment to a new time. Both the stored
// patient id and the stored doctor id must match the request; the new time
// is re-validated against the doctor's slots.
func (s *SchedulingService) Update(ctx context.Context, id string, newTime time.Time, patientID, doctorID string) (*models.Appointment, error) {
	existing, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	if existing.PatientID != patientID || existing.DoctorID != doctorID {
		return nil, ErrUnauthorized
	}

	if s.Validate(ctx, existing.DoctorID, newTime) != SlotValid {
		return nil, ErrInvalidTime
	}

	existing.AppointmentTime = newTime
	if err := s.appointments.Save(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, ErrInternal
	}
	return existing, nil
}

// Cancel hard-deletes an appointment. The acting patient is resolved from
// the token subject and must own the appointment.
func (s *SchedulingService) Cancel(ctx context.Context, id, token string) error {
	subject := s.tokens.Subject(token)
	if subject == "" {
		return ErrUnauthorized
	}

	patient, err := s.patients.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	if appt.PatientID != patient.ID {
		return ErrUnauthorized
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	return nil
}

// ListForDoctor returns the appointments of the doctor resolved from the
// token, ascending by time. Filters combine most specific first: patient
// name and date, then name only, then date only, then none. An empty or
// "null" patient name counts as absent.
func (s *SchedulingService) ListForDoctor(ctx context.Context, token, patientName string, date *time.Time) ([]models.AppointmentDetail, error) {
	subject := s.tokens.Subject(token)
	if subject == "" {
		return nil, ErrUnauthorized
	}

	doctor, err := s.doctors.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	hasName := filterPresent(patientName)

	var appts []models.Appointment
	switch {
	case hasName && date != nil:
		start, end := dayBounds(*date)
		appts, err = s.appointments.ListForDoctorByPatientNameBetween(ctx, doctor.ID, patientName, start, end)
	case hasName:
		appts, err = s.appointments.ListForDoctorByPatientName(ctx, doctor.ID, patientName)
	case date != nil:
		start, end := dayBounds(*date)
		appts, err = s.appointments.ListForDoctorBetween(ctx, doctor.ID, start, end)
	default:
		appts, err = s.appointments.ListForDoctor(ctx, doctor.ID)
	}
	if err != nil {
		return nil, ErrInternal
	}
	return toDetails(appts), nil
}

// ListForPatient returns the appointments of the patient resolved from the
// token, ascending by time.
func (s *SchedulingService) ListForPatient(ctx context.Context, token string) ([]models.AppointmentDetail, error) {
	patient, err := s.patientFromToken(ctx, token)
	if err != nil {
		return nil, err
	}

	appts, err := s.appointments.ListForPatient(ctx, patient.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return toDetails(appts), nil
}

// FilterForPatient narrows the patient's appointment history by condition
// ("future" is scheduled, "past" is fulfilled) and/or doctor-name
// substring. Any other condition value yields ErrInvalidInput.
func (s *SchedulingService) FilterForPatient(ctx context.Context, token, condition, doctorName string) ([]models.AppointmentDetail, error) {
	patient, err := s.patientFromToken(ctx, token)
	if err != nil {
		return nil, err
	}

	hasCondition := filterPresent(condition)
	hasDoctor := filterPresent(doctorName)

	status := -1
	if hasCondition {
		switch strings.ToLower(condition) {
		case "future":
			status = models.StatusScheduled
		case "past":
			status = models.StatusFulfilled
		default:
			return nil, ErrInvalidInput
		}
	}

	var appts []models.Appointment
	switch {
	case hasCondition && hasDoctor:
		appts, err = s.appointments.ListForPatientByDoctorNameAndStatus(ctx, patient.ID, doctorName, status)
	case hasCondition:
		appts, err = s.appointments.ListForPatientByStatus(ctx, patient.ID, status)
	case hasDoctor:
		appts, err = s.appointments.ListForPatientByDoctorName(ctx, patient.ID, doctorName)
	default:
		appts, err = s.appointments.ListForPatient(ctx, patient.ID)
	}
	if err != nil {
		return nil, ErrInternal
	}
	return toDetails(appts), nil
}

// ChangeStatus writes a new status for the appointment. With strict
// transitions enabled only scheduled -> fulfilled is allowed (writing the
// current status again is a no-op); otherwise the value is written as-is.
func (s *SchedulingService) ChangeStatus(ctx context.Context, id string, status int) error {
	if s.strictStatus {
		appt, err := s.appointments.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return ErrInternal
		}
		if status == appt.Status {
			return nil
		}
		if appt.Status != models.StatusScheduled || status != models.StatusFulfilled {
			return ErrInvalidInput
		}
	}

	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func (s *SchedulingService) patientFromToken(ctx context.Context, token string) (*models.Patient, error) {
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

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

func toDetails(appts []models.Appointment) []models.AppointmentDetail {
	details := make([]models.AppointmentDetail, len(appts))
	for i := range appts {
		details[i] = appts[i].Detail()
	}
	return details
}
