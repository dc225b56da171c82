package models

import "github.com/google/uuid"

type SkillCategory string

const (
	SkillFrontend SkillCategory = "frontend"
	SkillBackend  SkillCategory = "backend"
	SkillTools    SkillCategory = "tools"
	SkillDesign   SkillCategory = "design"
)

func (c SkillCategory) Valid() bool {
	switch c {
	case SkillFrontend, SkillBackend, SkillTools, SkillDesign:
		return true
	}
	return false
}

// Skill is a technology with a self-assessed level from 0 to 100
type Skill struct {
	Base
	Name      string        `json:"name" db:"name" gorm:"type:text;not null"`
	Level     int           `json:"level" db:"level" gorm:"type:integer;not null;default:0"`
	Category  SkillCategory `json:"category" db:"category" gorm:"type:text;not null"`
	Icon      string        `json:"icon" db:"icon" gorm:"type:text"`
	ProfileID *uuid.UUID    `json:"profileId,omitempty" db:"profile_id" gorm:"type:uuid;index"`
}
