package models

// Prescription lives in the document store, one per appointment.
type Prescription struct {
	ID            string `bson:"_id,omitempty" json:"id"`
	PatientName   string `bson:"patientName" json:"patientName"`
	AppointmentID string `bson:"appointmentId" json:"appointmentId"`
	Medication    string `bson:"medication" json:"medication"`
	Dosage        string `bson:"dosage" json:"dosage"`
	DoctorNotes   string `bson:"doctorNotes,omitempty" json:"doctorNotes,omitempty"`
}
