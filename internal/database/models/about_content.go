package models

import "time"

// AboutContent holds the editable text of the public About page
type AboutContent struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"not null;size:255" json:"title"`
	Subtitle     string    `gorm:"size:500" json:"subtitle"`
	Mission      string    `gorm:"type:text" json:"mission"`
	ContactEmail string    `gorm:"size:255" json:"contactEmail"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `gorm:"index" json:"updatedAt"`
}

// TableName overrides the table name
func (AboutContent) TableName() string {
	return "about_content"
}

// DefaultAboutContent returns the content used when none has been saved yet
func DefaultAboutContent() *AboutContent {
	return &AboutContent{
		Title:        "Capstone Project Archive",
		Subtitle:     "A searchable catalog of student capstone papers",
		Mission:      "We preserve and share the capstone work of our students so future classes can learn from it.",
		ContactEmail: "archive@example.edu",
	}
}
