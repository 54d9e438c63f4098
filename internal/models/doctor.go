package models

// Doctor represents a clinician patients can book.
//
// AvailableTimes is the sole source of bookable slots. Each entry has the
// exact form "HH:MM-HH:MM" and booking does not remove entries; the list is
// managed only through the doctor CRUD endpoints.
type Doctor struct {
	BaseModel
	Name           string   `gorm:"size:100;not null" json:"name"`
	Specialty      string   `gorm:"size:50;not null" json:"specialty"`
	Email          string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password       string   `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Phone          string   `gorm:"size:20" json:"phone"`
	AvailableTimes []string `gorm:"serializer:json" json:"availableTimes"`

	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}

// SetPassword hashes a password and sets it on the doctor
func (d *Doctor) SetPassword(password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	d.Password = hashed
	return nil
}

// CheckPassword compares a password with the doctor's hashed password
func (d *Doctor) CheckPassword(password string) bool {
	return passwordMatches(d.Password, password)
}
