package models

import "gorm.io/datatypes"

// Experience is a job on the about page timeline
type Experience struct {
	Base
	Company     string          `json:"company" db:"company" gorm:"type:text;not null"`
	Position    string          `json:"position" db:"position" gorm:"type:text;not null"`
	Description string          `json:"description" db:"description" gorm:"type:text;not null"`
	StartDate   datatypes.Date  `json:"startDate" db:"start_date" gorm:"not null"`
	EndDate     *datatypes.Date `json:"endDate,omitempty" db:"end_date"`
	Current     bool            `json:"current" db:"current" gorm:"not null;default:false"`
	Location    string          `json:"location" db:"location" gorm:"type:text"`
}

// Education is a degree on the about page timeline
type Education struct {
	Base
	Institution string          `json:"institution" db:"institution" gorm:"type:text;not null"`
	Degree      string          `json:"degree" db:"degree" gorm:"type:text;not null"`
	Field       string          `json:"field" db:"field" gorm:"type:text;not null"`
	StartDate   datatypes.Date  `json:"startDate" db:"start_date" gorm:"not null"`
	EndDate     *datatypes.Date `json:"endDate,omitempty" db:"end_date"`
	Current     bool            `json:"current" db:"current" gorm:"not null;default:false"`
	Description string          `json:"description" db:"description" gorm:"type:text"`
}

const TimelineOrder = "start_date DESC"
