package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile holds the personal information shown on the home and about pages
type Profile struct {
	Base
	UserID    uuid.UUID       `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	User      *User           `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Bio       string          `json:"bio" db:"bio" gorm:"type:text;not null"`
	Location  string          `json:"location" db:"location" gorm:"type:text"`
	BirthDate *datatypes.Date `json:"birthDate,omitempty" db:"birth_date"`
	AvatarURL string          `json:"avatarUrl" db:"avatar_url" gorm:"type:text"`
	CVURL     string          `json:"cvUrl" db:"cv_url" gorm:"type:text"`

	GithubURL    string `json:"githubUrl" db:"github_url" gorm:"type:text"`
	LinkedinURL  string `json:"linkedinUrl" db:"linkedin_url" gorm:"type:text"`
	TwitterURL   string `json:"twitterUrl" db:"twitter_url" gorm:"type:text"`
	InstagramURL string `json:"instagramUrl" db:"instagram_url" gorm:"type:text"`
	WebsiteURL   string `json:"websiteUrl" db:"website_url" gorm:"type:text"`

	Phone     string    `json:"phone" db:"phone" gorm:"type:text"`
	Email     string    `json:"email" db:"email" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
