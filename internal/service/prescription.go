package service

import (
	"context"
	"errors"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
)

// PrescriptionService stores prescriptions in the document store and marks
// the prescribed appointment as fulfilled.
type PrescriptionService struct {
	prescriptions repository.PrescriptionRepository
	appointments  repository.AppointmentRepository
	scheduling    *SchedulingService
}

// NewPrescriptionService creates a new PrescriptionService.
func NewPrescriptionService(prescriptions repository.PrescriptionRepository, appointments repository.AppointmentRepository, scheduling *SchedulingService) *PrescriptionService {
	return &PrescriptionService{prescriptions: prescriptions, appointments: appointments, scheduling: scheduling}
}

// Save stores a prescription against an existing appointment, at most one
// per appointment, then moves the appointment to fulfilled.
func (s *PrescriptionService) Save(ctx context.Context, prescription *models.Prescription) error {
	if _, err := s.appointments.FindByID(ctx, prescription.AppointmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	if err := s.prescriptions.Insert(ctx, prescription); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrConflict
		}
		return ErrInternal
	}

	return s.scheduling.ChangeStatus(ctx, prescription.AppointmentID, models.StatusFulfilled)
}

// ByAppointment returns the prescriptions recorded for an appointment
// (zero or one given the uniqueness constraint).
func (s *PrescriptionService) ByAppointment(ctx context.Context, appointmentID string) ([]models.Prescription, error) {
	prescriptions, err := s.prescriptions.FindByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, ErrInternal
	}
	if prescriptions == nil {
		prescriptions = []models.Prescription{}
	}
	return prescriptions, nil
}
