package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user profile
type User struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	PasswordHash    string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet     bool      `json:"password_set" db:"password_set"`
	Industry        *string   `json:"industry,omitempty"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Skills          []string  `json:"skills"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Profile holds the onboarding fields of a user
type Profile struct {
	Industry        string
	ExperienceYears *int
	Bio             string
	Skills          []string
}

// IndustryName returns the user's industry, or "" when none was chosen
func (u *User) IndustryName() string {
	if u == nil || u.Industry == nil {
		return ""
	}
	return *u.Industry
}
