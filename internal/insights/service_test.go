package insights

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/llm/llmtest"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*db.User
	insights map[string]*types.StoredInsight
	upserts  int
	getErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*db.User),
		insights: make(map[string]*types.StoredInsight),
	}
}

func (f *fakeStore) addUser(industry string) uuid.UUID {
	id := uuid.New()
	u := &db.User{ID: id, Name: "Test"}
	if industry != "" {
		u.Industry = &industry
	}
	f.users[id] = u
	return id
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetInsight(_ context.Context, industry string) (*types.StoredInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.insights[industry], nil
}

func (f *fakeStore) UpsertInsight(_ context.Context, industry string, insight types.IndustryInsight, next time.Time) (*types.StoredInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	s := &types.StoredInsight{IndustryInsight: insight, ID: uuid.New(), Industry: industry, NextUpdate: next}
	f.insights[industry] = s
	return s, nil
}

func (f *fakeStore) ListStaleIndustries(_ context.Context, now time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for industry, s := range f.insights {
		if s.Stale(now) {
			out = append(out, industry)
		}
	}
	return out, nil
}

func TestForUser_GeneratesAndStores(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser("tech-software-development")
	client := llmtest.Reply(healthcareReply)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(store, NewGenerator(client), 0, nil)
	svc.now = func() time.Time { return now }

	got, err := svc.ForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "tech-software-development", got.Industry)
	assert.Equal(t, types.DemandHigh, got.DemandLevel)
	assert.Equal(t, now.Add(7*24*time.Hour), got.NextUpdate)

	// Second request is served from storage
	_, err = svc.ForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, client.Calls())
	assert.Equal(t, 1, store.upserts)
}

func TestForUser_StoresFallbackOnOracleFailure(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser("Healthcare")

	svc := NewService(store, NewGenerator(llmtest.Fail(llm.KindQuota)), 0, nil)

	got, err := svc.ForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, Fallback(), got.IndustryInsight)
}

func TestForUser_Errors(t *testing.T) {
	store := newFakeStore()
	noIndustry := store.addUser("")
	svc := NewService(store, NewGenerator(llmtest.Reply("{}")), 0, nil)

	_, err := svc.ForUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.ForUser(context.Background(), noIndustry)
	assert.ErrorIs(t, err, ErrNoIndustry)
	assert.Equal(t, "Please select an industry in your profile settings", err.Error())

	withIndustry := store.addUser("Retail")
	store.getErr = errors.New("connection reset")
	_, err = svc.ForUser(context.Background(), withIndustry)
	assert.ErrorContains(t, err, "connection reset")
}

func TestRefreshStale(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	for _, industry := range []string{"Retail", "Finance", "Energy"} {
		_, _ = store.UpsertInsight(context.Background(), industry, Fallback(), now.Add(-time.Hour))
	}
	_, _ = store.UpsertInsight(context.Background(), "Fresh", Fallback(), now.Add(time.Hour))
	store.upserts = 0

	client := &llmtest.MockClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			if strings.Contains(prompt, "the Energy industry") {
				return "", &llm.OracleError{Kind: llm.KindUnavailable, Message: "boom"}
			}
			return `{"growthRate": 3.3, "demandLevel": "Low"}`, nil
		},
	}

	svc := NewService(store, NewGenerator(client), 0, nil)
	svc.now = func() time.Time { return now }

	report, err := svc.RefreshStale(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Finance", "Retail"}, report.Refreshed)
	assert.Equal(t, []string{"Energy"}, report.Failed)
	assert.Equal(t, 2, store.upserts)

	retail, _ := store.GetInsight(context.Background(), "Retail")
	assert.Equal(t, 3.3, retail.GrowthRate)
	assert.Equal(t, types.DemandLow, retail.DemandLevel)
	assert.Equal(t, now.Add(DefaultTTL), retail.NextUpdate)

	energy, _ := store.GetInsight(context.Background(), "Energy")
	assert.Equal(t, Fallback().GrowthRate, energy.GrowthRate, "failed refresh keeps the previous insight")
}
