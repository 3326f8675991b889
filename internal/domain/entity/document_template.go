package entity

import "time"

// DocumentTemplate is a reusable medical-history document body with
// {{.Field}} placeholders filled in from patient and consultation data.
type DocumentTemplate struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DocumentTemplate) TableName() string {
	return "document_templates"
}
