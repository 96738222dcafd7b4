// Package types holds the request, response and domain types shared across the service.
package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest represents the request to create a new user with password authentication.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is the public view of a user; the password hash never leaves the db package.
type User struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Skills          []string  `json:"skills"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdateProfileRequest is the onboarding form.
type UpdateProfileRequest struct {
	Industry        string   `json:"industry" validate:"required,max=100"`
	SubIndustry     string   `json:"sub_industry,omitempty" validate:"max=100"`
	ExperienceYears *int     `json:"experience_years,omitempty" validate:"omitempty,min=0,max=60"`
	Bio             string   `json:"bio,omitempty" validate:"max=2000"`
	Skills          []string `json:"skills,omitempty" validate:"max=50,dive,required,max=100"`
}

// IndustryKey combines industry and sub-industry into the stored industry
// name, e.g. "tech" + "Software Development" -> "tech-software-development".
func (r *UpdateProfileRequest) IndustryKey() string {
	industry := strings.TrimSpace(r.Industry)
	sub := strings.TrimSpace(r.SubIndustry)
	if sub == "" {
		return industry
	}
	return industry + "-" + strings.Join(strings.Fields(strings.ToLower(sub)), "-")
}

// OnboardingStatus reports whether the user has chosen an industry.
type OnboardingStatus struct {
	IsOnboarded bool `json:"is_onboarded"`
}
