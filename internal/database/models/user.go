package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of account kinds
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ErrInvalidRole is returned when a value is neither admin nor student
var ErrInvalidRole = errors.New("invalid role")

// ParseRole converts a raw string into a Role
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, value)
	}
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStudent:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return errors.New("invalid role type")
	}
	role, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, string(r))
	}
	return string(r), nil
}

// User represents an account of the archive
type User struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	FullName         string     `gorm:"not null;size:255" json:"fullName"`
	ContactNumber    string     `gorm:"size:32" json:"contactNumber"`
	Email            string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	Role             Role       `gorm:"type:varchar(16);not null" json:"role"`
	ResetToken       *string    `gorm:"type:text" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPendingReset reports whether a reset token is stored and not yet expired
func (u *User) HasPendingReset(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpiry != nil && now.Before(*u.ResetTokenExpiry)
}

// UploaderView is the reduced user shape embedded in catalog responses
type UploaderView struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// AsUploader returns the reduced public view of the user
func (u *User) AsUploader() UploaderView {
	return UploaderView{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}
