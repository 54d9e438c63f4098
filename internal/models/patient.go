package models

// Patient represents a registered patient account.
type Patient struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`

	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}

// SetPassword hashes a password and sets it on the patient
func (p *Patient) SetPassword(password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	p.Password = hashed
	return nil
}

// CheckPassword compares a password with the patient's hashed password
func (p *Patient) CheckPassword(password string) bool {
	return passwordMatches(p.Password, password)
}
