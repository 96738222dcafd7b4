package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
)

// memoryUserStore is an in-memory UserStore.
type memoryUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*db.User

	getErr      error
	passwordErr error
	deleted     []uuid.UUID
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[uuid.UUID]*db.User)}
}

func (m *memoryUserStore) CreateUser(_ context.Context, name, email, phone string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	id := uuid.New()
	m.users[id] = &db.User{ID: id, Name: name, Email: email, Phone: phone, Skills: []string{}, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (m *memoryUserStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (m *memoryUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memoryUserStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *memoryUserStore) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.passwordErr != nil {
		return m.passwordErr
	}
	u := m.users[id]
	u.PasswordHash = hash
	u.PasswordSet = true
	return nil
}

func (m *memoryUserStore) UpdateProfile(_ context.Context, id uuid.UUID, p db.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	industry := p.Industry
	u.Industry = &industry
	u.ExperienceYears = p.ExperienceYears
	u.Bio = p.Bio
	u.Skills = p.Skills
	return nil
}

func (m *memoryUserStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// addUser stores a user with an optional industry and returns its ID.
func (m *memoryUserStore) addUser(industry string, skills ...string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	u := &db.User{ID: id, Name: "Test User", Email: id.String() + "@example.com", Skills: skills}
	if industry != "" {
		u.Industry = &industry
	}
	m.users[id] = u
	return id
}

type insightsFunc func(ctx context.Context, userID uuid.UUID) (*types.StoredInsight, error)

func (f insightsFunc) ForUser(ctx context.Context, userID uuid.UUID) (*types.StoredInsight, error) {
	return f(ctx, userID)
}

// memoryAssessmentStore is an in-memory quiz.Store.
type memoryAssessmentStore struct {
	mu          sync.Mutex
	assessments []types.Assessment
	createErr   error
}

func (m *memoryAssessmentStore) CreateAssessment(_ context.Context, a *types.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.assessments = append([]types.Assessment{*a}, m.assessments...)
	return nil
}

func (m *memoryAssessmentStore) ListAssessments(_ context.Context, userID uuid.UUID) ([]types.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.Assessment
	for _, a := range m.assessments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type archivedFile struct {
	userID   uuid.UUID
	filename string
	mimeType string
	data     []byte
}

type memoryArchive struct {
	files []archivedFile
	err   error
}

func (m *memoryArchive) Put(_ context.Context, userID uuid.UUID, filename, mimeType string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.files = append(m.files, archivedFile{userID: userID, filename: filename, mimeType: mimeType, data: data})
	return "resumes/" + userID.String() + "/" + filename, nil
}
