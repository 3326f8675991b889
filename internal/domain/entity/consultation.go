package entity

import "time"

// Consultation is the medical record of one visit: what was diagnosed and
// prescribed. Optionally linked to the appointment that produced it.
type Consultation struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID *int64    `gorm:"index" json:"appointment_id,omitempty"`
	PatientID     int64     `gorm:"not null;index" json:"patient_id"`
	DoctorID      int64     `gorm:"not null;index" json:"doctor_id"`
	Diagnosis     string    `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment     string    `gorm:"type:text" json:"treatment,omitempty"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}
