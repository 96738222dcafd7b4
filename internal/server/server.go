// Package server provides the HTTP REST API for the career coach.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/quiz"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxUploadBytes  = 5 << 20
	maxJSONBodyBytes       = 1 << 20
)

// InsightsProvider returns the industry insight for a user.
type InsightsProvider interface {
	ForUser(ctx context.Context, userID uuid.UUID) (*types.StoredInsight, error)
}

// QuizGenerator produces quiz questions.
type QuizGenerator interface {
	Generate(ctx context.Context, req quiz.Request) ([]types.Question, error)
}

// AssessmentService grades, stores and summarizes quiz attempts.
type AssessmentService interface {
	SaveResult(ctx context.Context, userID uuid.UUID, req types.SaveAssessmentRequest) (*types.Assessment, error)
	List(ctx context.Context, userID uuid.UUID) ([]types.Assessment, error)
	Stats(ctx context.Context, userID uuid.UUID) (*types.AssessmentStats, error)
}

// ResumeScorer reviews resume text.
type ResumeScorer interface {
	ScoreResume(ctx context.Context, text string) (*types.ResumeScore, error)
}

// ResumeArchive keeps a copy of uploaded resume files.
type ResumeArchive interface {
	Put(ctx context.Context, userID uuid.UUID, filename, mimeType string, data []byte) (string, error)
}

// Options holds transport settings.
type Options struct {
	Port            int
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
	// RateLimit may be nil to disable limiting.
	RateLimit *ratelimit.Config
	// APIKey is only reported, masked, by the credential-status endpoint.
	APIKey string
	Logger *zap.Logger
}

// Services are the collaborators behind the routes. Archive may be nil.
type Services struct {
	Users       UserStore
	Passwords   *config.PasswordConfig
	JWT         *config.JWTConfig
	Insights    InsightsProvider
	Quizzes     QuizGenerator
	Assessments AssessmentService
	Resumes     ResumeScorer
	Archive     ResumeArchive
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	handler         http.Handler
	logger          *zap.Logger
	validate        *validator.Validate
	rateLimiter     *ratelimit.Limiter
	shutdownTimeout time.Duration
	maxUploadBytes  int64
	apiKey          string

	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	insights    InsightsProvider
	quizzes     QuizGenerator
	assessments AssessmentService
	resumes     ResumeScorer
	archive     ResumeArchive
}

// New creates a new server instance
func New(opts Options, svc Services) *Server {
	s := &Server{
		logger:          logger.OrNop(opts.Logger),
		validate:        validator.New(),
		shutdownTimeout: opts.ShutdownTimeout,
		maxUploadBytes:  opts.MaxUploadBytes,
		apiKey:          opts.APIKey,
		insights:        svc.Insights,
		quizzes:         svc.Quizzes,
		assessments:     svc.Assessments,
		resumes:         svc.Resumes,
		archive:         svc.Archive,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = defaultMaxUploadBytes
	}
	if opts.RateLimit != nil && opts.RateLimit.Enabled {
		s.rateLimiter = ratelimit.NewLimiter(opts.RateLimit)
	}

	s.userService = NewUserService(svc.Users, svc.Passwords)
	s.jwtService = NewJWTService(svc.JWT)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, s.logger)

	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator(), s.logger)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	mux.Handle("GET /users/me", protected(s.handleGetMe))
	mux.Handle("PUT /users/me/profile", protected(s.handleUpdateProfile))
	mux.Handle("GET /users/me/onboarding", protected(s.handleOnboardingStatus))

	mux.Handle("GET /insights", protected(s.handleInsights))

	mux.Handle("POST /quiz", protected(s.handleGenerateQuiz))
	mux.Handle("POST /assessments", protected(s.handleSaveAssessment))
	mux.Handle("GET /assessments", protected(s.handleListAssessments))
	mux.Handle("GET /assessments/stats", protected(s.handleAssessmentStats))

	mux.Handle("POST /resume/score", protected(s.handleScoreResume))
	mux.Handle("GET /resume/credential-status", protected(s.handleCredentialStatus))

	s.handler = s.withLogging(s.withRateLimit(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second, // oracle calls can take a while
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their per-endpoint budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.rateLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// withLogging logs one line per request
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", s.extractClientID(r)),
		}
		if rec.status >= http.StatusInternalServerError {
			s.logger.Warn("request completed", fields...)
			return
		}
		s.logger.Info("request completed", fields...)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data, s.logger)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status and writes it. Server errors are logged with the
// cause; the client only sees a generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}
	s.errorResponse(w, status, publicMessage(err))
}

// decodeJSON reads a bounded JSON body into v and validates it. It writes the
// error response and returns false on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.fail(w, r, toValidationError(err))
		return false
	}
	return true
}

// userID returns the authenticated user, writing 401 when absent.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

// extractClientID uses the IP address from RemoteAddr.
// X-Forwarded-For is ignored since it is client-controlled without a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		// Round up so clients never retry a moment too early
		seconds := int((info.RetryAfter + time.Second - 1) / time.Second)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Info("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
		zap.Duration("retry_after", info.RetryAfter))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

func writeJSON(w http.ResponseWriter, status int, data any, l *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.OrNop(l).Warn("failed to encode JSON response", zap.Error(err))
	}
}

// toValidationError reports the first failed field of a validator error.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ErrValidation{Field: verrs[0].Field(), Message: verrs[0].Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid request"}
}
