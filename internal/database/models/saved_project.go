package models

import "time"

// SavedProject is a student's bookmark of a catalog entry.
// A user can hold at most one bookmark per project.
type SavedProject struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saved_projects_user_project" json:"userId"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_saved_projects_user_project;index" json:"projectId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	// Relationships
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (SavedProject) TableName() string {
	return "saved_projects"
}
