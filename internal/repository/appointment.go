package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// AppointmentStore is the MySQL-backed AppointmentRepository.
type AppointmentStore struct {
	DB *gorm.DB
}

// NewAppointmentStore creates a new AppointmentStore.
func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{DB: db}
}

func (s *AppointmentStore) Create(ctx context.Context, appt *models.Appointment) error {
	err := s.DB.WithContext(ctx).Create(appt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s *AppointmentStore) Save(ctx context.Context, appt *models.Appointment) error {
	err := s.DB.WithContext(ctx).Save(appt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s *AppointmentStore) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.DB.WithContext(ctx).
		Preload("Doctor").Preload("Patient").
		First(&appt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (s *AppointmentStore) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Appointment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *AppointmentStore) DeleteAllByDoctor(ctx context.Context, doctorID string) error {
	return s.DB.WithContext(ctx).Delete(&models.Appointment{}, "doctor_id = ?", doctorID).Error
}

func (s *AppointmentStore) UpdateStatus(ctx context.Context, id string, status int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *AppointmentStore) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.doctorQuery(ctx, doctorID).Find(&appts).Error
	return appts, err
}

func (s *AppointmentStore) ListForDoctorByPatientName(ctx context.Context, doctorID, patientName string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.doctorQuery(ctx, doctorID).
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("LOWER(patients.name) LIKE ?", like(patientName)).
		Find(&appts).Error
	return appts, err
}

func (s *AppointmentStore) ListForDoctorBetween(ctx context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.doctorQuery(ctx, doctorID).
		Where("appointment_time >= ? AND appointment_time < ?", start, end).
		Find(&appts).Error
	return appts, err
}

func (s *AppointmentStore) ListForDoctorByPatientNameBetween(ctx context.Context, doctorID, patientName string, start, end time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.doctorQuery(ctx, doctorID).
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("LOWER(patients.name) LIKE ?", like(patientName)).
		Where("appointment_time >= ? AND appointment_time < ?", start, end).
		Find(&appts).Error
	return appts, err
}

func (s *AppointmentStore) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.patientQuery(ctx, patientID).Find(&appts).Error
	return appts, err
}

func (s *AppointmentStore) ListForPatientByStatus(ctx context.Context, patientID string, status int) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.patientQuery(ctx, patientID).
		Where("status = ?", status).
		Find(&appts).Error
	return appts, err
}

func (s *AppointmentStore) ListForPatientByDoctorName(ctx context.Context, patientID, doctorName string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.patientQuery(ctx, patientID).
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("LOWER(doctors.name) LIKE ?", like(doctorName)).
		Find(&appts).Error
	return appts, err
}

func (s *AppointmentStore) ListForPatientByDoctorNameAndStatus(ctx context.Context, patientID, doctorName string, status int) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.patientQuery(ctx, patientID).
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("LOWER(doctors.name) LIKE ?", like(doctorName)).
		Where("status = ?", status).
		Find(&appts).Error
	return appts, err
}

func (s *AppointmentStore) doctorQuery(ctx context.Context, doctorID string) *gorm.DB {
	return s.DB.WithContext(ctx).
		Preload("Doctor").Preload("Patient").
		Where("appointments.doctor_id = ?", doctorID).
		Order("appointment_time asc")
}

func (s *AppointmentStore) patientQuery(ctx context.Context, patientID string) *gorm.DB {
	return s.DB.WithContext(ctx).
		Preload("Doctor").Preload("Patient").
		Where("appointments.patient_id = ?", patientID).
		Order("appointment_time asc")
}
