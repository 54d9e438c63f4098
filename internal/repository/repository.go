package repository

import (
	"context"
	"errors"
	"time"

	"clinic-app-server/internal/models"
)

// Sentinel errors shared by all backing stores so services never depend on
// driver-specific error values.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// AdminRepository resolves admin accounts, keyed by username.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// DoctorRepository manages doctor records, keyed by id or email.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	Save(ctx context.Context, doctor *models.Doctor) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.Doctor, error)
	FindByNameLike(ctx context.Context, name string) ([]models.Doctor, error)
	FindBySpecialty(ctx context.Context, specialty string) ([]models.Doctor, error)
	FindByNameLikeAndSpecialty(ctx context.Context, name, specialty string) ([]models.Doctor, error)
}

// PatientRepository manages patient records, keyed by id or email.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	FindByID(ctx context.Context, id string) (*models.Patient, error)
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*models.Patient, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AppointmentRepository is the persistence gateway for appointments. All
// list queries return rows ordered ascending by appointment time with the
// doctor and patient relations populated.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	Save(ctx context.Context, appt *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
	DeleteAllByDoctor(ctx context.Context, doctorID string) error
	UpdateStatus(ctx context.Context, id string, status int) error

	ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListForDoctorByPatientName(ctx context.Context, doctorID, patientName string) ([]models.Appointment, error)
	ListForDoctorBetween(ctx context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error)
	ListForDoctorByPatientNameBetween(ctx context.Context, doctorID, patientName string, start, end time.Time) ([]models.Appointment, error)

	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListForPatientByStatus(ctx context.Context, patientID string, status int) ([]models.Appointment, error)
	ListForPatientByDoctorName(ctx context.Context, patientID, doctorName string) ([]models.Appointment, error)
	ListForPatientByDoctorNameAndStatus(ctx context.Context, patientID, doctorName string, status int) ([]models.Appointment, error)
}

// PrescriptionRepository is the document-store gateway for prescriptions.
type PrescriptionRepository interface {
	Insert(ctx context.Context, prescription *models.Prescription) error
	FindByAppointment(ctx context.Context, appointmentID string) ([]models.Prescription, error)
}
