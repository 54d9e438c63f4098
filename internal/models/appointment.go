package models

import (
	"time"
)

// Appointment status values. A prescription moves an appointment from
// scheduled to fulfilled; there is no stored cancelled state, cancellation
// deletes the row.
const (
	StatusScheduled = 0
	StatusFulfilled = 1
)

// Appointment represents a booked visit with a doctor.
//
// The unique index over (doctor_id, appointment_time) keeps two concurrent
// bookings for the same doctor and slot from both inserting.
type Appointment struct {
	BaseModel
	DoctorID        string    `gorm:"size:36;index;uniqueIndex:idx_doctor_slot" json:"doctorId"`
	PatientID       string    `gorm:"size:36;index" json:"patientId"`
	AppointmentTime time.Time `gorm:"uniqueIndex:idx_doctor_slot" json:"appointmentTime"`
	Status          int       `gorm:"default:0" json:"status"`

	// Relations
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}

// EndTime is derived, never stored: every appointment lasts one hour.
func (a *Appointment) EndTime() time.Time {
	return a.AppointmentTime.Add(time.Hour)
}

// Slot renders the appointment as the "HH:MM-HH:MM" form used in a doctor's
// configured availability list.
func (a *Appointment) Slot() string {
	return a.AppointmentTime.Format("15:04") + "-" + a.EndTime().Format("15:04")
}

// AppointmentDetail is the wire representation handed to clients. End time
// and date fields are always derived client-side, never transmitted.
type AppointmentDetail struct {
	ID              string    `json:"id"`
	DoctorID        string    `json:"doctorId"`
	DoctorName      string    `json:"doctorName"`
	PatientID       string    `json:"patientId"`
	PatientName     string    `json:"patientName"`
	PatientEmail    string    `json:"patientEmail"`
	PatientPhone    string    `json:"patientPhone"`
	PatientAddress  string    `json:"patientAddress"`
	AppointmentTime time.Time `json:"appointmentTime"`
	Status          int       `json:"status"`
}

// Detail builds the wire representation from a preloaded appointment.
func (a *Appointment) Detail() AppointmentDetail {
	return AppointmentDetail{
		ID:              a.ID,
		DoctorID:        a.DoctorID,
		DoctorName:      a.Doctor.Name,
		PatientID:       a.PatientID,
		PatientName:     a.Patient.Name,
		PatientEmail:    a.Patient.Email,
		PatientPhone:    a.Patient.Phone,
		PatientAddress:  a.Patient.Address,
		AppointmentTime: a.AppointmentTime,
		Status:          a.Status,
	}
}
