package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
)

// UserStore is the user persistence the API needs. *db.DB implements it.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, p db.Profile) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// UserService provides registration, login and onboarding
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// toPublicUser converts db.User to types.User, excluding password hash
func toPublicUser(u *db.User) *types.User {
	if u == nil {
		return nil
	}
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return &types.User{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		Industry:        u.IndustryName(),
		ExperienceYears: u.ExperienceYears,
		Bio:             u.Bio,
		Skills:          skills,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	email := normalizeEmail(req.Email)
	exists, err := s.store.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.store.CreateUser(ctx, strings.TrimSpace(req.Name), email, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.store.UpdatePassword(ctx, userID, passwordHash); err != nil {
		// A user without a password cannot log in; drop the half-created row
		_ = s.store.DeleteUser(ctx, userID)
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	return s.Get(ctx, userID)
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.store.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Unknown email and wrong password are indistinguishable to the caller
	if dbUser == nil || !dbUser.PasswordSet {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return toPublicUser(dbUser), nil
}

// Get returns the public view of a user.
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	dbUser, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPublicUser(dbUser), nil
}

// UpdateProfile stores the onboarding form and returns the updated user.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.User, error) {
	if _, err := s.lookup(ctx, userID); err != nil {
		return nil, err
	}

	skills := make([]string, 0, len(req.Skills))
	for _, skill := range req.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}

	profile := db.Profile{
		Industry:        req.IndustryKey(),
		ExperienceYears: req.ExperienceYears,
		Bio:             strings.TrimSpace(req.Bio),
		Skills:          skills,
	}
	if err := s.store.UpdateProfile(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.Get(ctx, userID)
}

// OnboardingStatus reports whether the user has chosen an industry.
func (s *UserService) OnboardingStatus(ctx context.Context, userID uuid.UUID) (*types.OnboardingStatus, error) {
	dbUser, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &types.OnboardingStatus{IsOnboarded: dbUser.IndustryName() != ""}, nil
}

// Profile returns the stored user with profile fields, for features that
// need the raw industry and skills.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*db.User, error) {
	return s.lookup(ctx, userID)
}

func (s *UserService) lookup(ctx context.Context, userID uuid.UUID) (*db.User, error) {
	dbUser, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return dbUser, nil
}
