package models

import (
	"time"
)

// ProjectState is the lifecycle state derived from the delete flag
type ProjectState string

const (
	ProjectStateActive  ProjectState = "active"
	ProjectStateTrashed ProjectState = "trashed"
)

// Project represents a capstone paper in the catalog.
// Title and author are unique together across active and trashed rows.
type Project struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	Title      string     `gorm:"not null;size:500;uniqueIndex:idx_projects_title_author" json:"title"`
	Author     string     `gorm:"not null;size:255;uniqueIndex:idx_projects_title_author" json:"author"`
	Year       int        `gorm:"not null;index" json:"year"`
	Field      string     `gorm:"not null;size:255;index" json:"field"`
	FileURL    string     `gorm:"not null;size:2048" json:"fileUrl"`
	UploadedBy uint       `gorm:"not null;index" json:"uploadedBy"`
	IsDeleted  bool       `gorm:"not null;default:false;index" json:"isDeleted"`
	DeletedAt  *time.Time `json:"deletedAt"`
	CreatedAt  time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// Relationships
	Uploader *User `gorm:"foreignKey:UploadedBy" json:"-"`
}

// TableName overrides the table name
func (Project) TableName() string {
	return "projects"
}

// State returns the lifecycle state of the project
func (p *Project) State() ProjectState {
	if p.IsDeleted {
		return ProjectStateTrashed
	}
	return ProjectStateActive
}

// IsTrashed returns true if the project is soft-deleted
func (p *Project) IsTrashed() bool {
	return p.IsDeleted
}
