package entity

import "time"

// Patient represents a clinic patient record
type Patient struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName  string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName   string    `gorm:"type:varchar(100);not null" json:"last_name"`
	DocumentID string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"document_id"`
	Email      string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone      string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	BirthDate  time.Time `gorm:"type:date" json:"birth_date"`
	Gender     string    `gorm:"type:char(1)" json:"gender,omitempty"`
	Address    string    `gorm:"type:text" json:"address,omitempty"`
	ClinicTag  string    `gorm:"type:varchar(50);not null" json:"clinic_tag"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// FullName joins first and last name for display and document rendering.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)
