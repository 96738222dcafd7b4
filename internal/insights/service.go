package insights

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultTTL is how long a stored insight stays current.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrUserNotFound means the requesting user does not exist
	ErrUserNotFound = errors.New("user not found")
	// ErrNoIndustry means the user has not chosen an industry yet
	ErrNoIndustry = errors.New("Please select an industry in your profile settings")
)

// Store is the persistence the insights service needs.
type Store interface {
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetInsight(ctx context.Context, industry string) (*types.StoredInsight, error)
	UpsertInsight(ctx context.Context, industry string, insight types.IndustryInsight, nextUpdate time.Time) (*types.StoredInsight, error)
	ListStaleIndustries(ctx context.Context, now time.Time) ([]string, error)
}

// Service ties generation to storage.
type Service struct {
	store     Store
	generator *Generator
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// NewService creates a Service. A zero ttl means DefaultTTL.
func NewService(store Store, generator *Generator, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		generator: generator,
		ttl:       ttl,
		now:       time.Now,
		logger:    logger,
	}
}

// ForUser returns the stored insight for the user's industry, generating and
// storing it on first request.
func (s *Service) ForUser(ctx context.Context, userID uuid.UUID) (*types.StoredInsight, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	industry := user.IndustryName()
	if industry == "" {
		return nil, ErrNoIndustry
	}

	existing, err := s.store.GetInsight(ctx, industry)
	if err != nil {
		return nil, fmt.Errorf("failed to load insight: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	insight := s.generator.Generate(ctx, industry)
	stored, err := s.store.UpsertInsight(ctx, industry, insight, s.now().Add(s.ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to store insight: %w", err)
	}
	s.logger.Info("stored new industry insight", zap.String("industry", industry))
	return stored, nil
}

// RefreshReport summarizes a RefreshStale run.
type RefreshReport struct {
	Refreshed []string `json:"refreshed"`
	Failed    []string `json:"failed"`
}

// RefreshStale regenerates every stored insight whose next update is due, at
// most concurrency at a time. A failed industry keeps its previous insight and
// is listed in the report; it does not stop the others.
func (s *Service) RefreshStale(ctx context.Context, concurrency int) (*RefreshReport, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	industries, err := s.store.ListStaleIndustries(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list stale insights: %w", err)
	}

	var (
		mu     sync.Mutex
		report = &RefreshReport{Refreshed: []string{}, Failed: []string{}}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, industry := range industries {
		g.Go(func() error {
			err := s.refreshOne(gctx, industry)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("insight refresh failed", zap.String("industry", industry), zap.Error(err))
				report.Failed = append(report.Failed, industry)
				return nil
			}
			report.Refreshed = append(report.Refreshed, industry)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(report.Refreshed)
	sort.Strings(report.Failed)
	s.logger.Info("insight refresh finished",
		zap.Int("refreshed", len(report.Refreshed)),
		zap.Int("failed", len(report.Failed)))
	return report, nil
}

func (s *Service) refreshOne(ctx context.Context, industry string) error {
	insight, err := s.generator.Regenerate(ctx, industry)
	if err != nil {
		return err
	}
	_, err = s.store.UpsertInsight(ctx, industry, insight, s.now().Add(s.ttl))
	return err
}
