package models

const DefaultCategoryColor = "#3B82F6"

// Category groups blog posts. Deleting a category leaves its posts uncategorized.
type Category struct {
	Base
	Name        string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Slug        string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description string `json:"description" db:"description" gorm:"type:text"`
	Color       string `json:"color" db:"color" gorm:"type:varchar(7);not null;default:'#3B82F6'"`
}

// Tag labels blog posts
type Tag struct {
	Base
	Name string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Slug string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
}
