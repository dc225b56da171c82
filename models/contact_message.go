package models

import "time"

// ContactMessage is a submission of the public contact form
type ContactMessage struct {
	Base
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Subject   string    `json:"subject" db:"subject" gorm:"type:text;not null"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Read      bool      `json:"read" db:"read" gorm:"not null;default:false"`
}

const ContactMessageOrder = "created_at DESC"
