package entity

import "time"

// Doctor represents a doctor practicing at the clinic
type Doctor struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName     string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Specialty     string    `gorm:"type:varchar(100);not null" json:"specialty"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	Phone         string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	LicenseNumber string    `gorm:"type:varchar(50);uniqueIndex" json:"license_number,omitempty"`
	ClinicTag     string    `gorm:"type:varchar(50);not null" json:"clinic_tag"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// FullName joins first and last name for display.
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
