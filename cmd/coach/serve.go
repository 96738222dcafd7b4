package main

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/insights"
	"github.com/jonathan/career-coach/internal/quiz"
	"github.com/jonathan/career-coach/internal/resume"
	"github.com/jonathan/career-coach/internal/server"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing authentication, onboarding, insights, quiz and resume review endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg := rt.cfg

	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	jwtConfig, err := cfg.JWT()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := cfg.Password()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()
	if cfg.Database.Migrate {
		if err := database.Migrate(ctx); err != nil {
			return err
		}
	}

	generator, closeCache, err := rt.insightsGenerator(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	quizzes := quiz.NewGenerator(rt.oracle, rt.logger)
	services := server.Services{
		Users:       database,
		Passwords:   passwordConfig,
		JWT:         jwtConfig,
		Insights:    insights.NewService(database, generator, cfg.Insights.TTL, rt.logger),
		Quizzes:     quizzes,
		Assessments: quiz.NewService(database, quizzes, rt.logger),
		Resumes:     resume.NewScorer(rt.oracle, rt.logger),
	}

	archive, err := resume.NewArchive(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if archive != nil {
		services.Archive = archive
		rt.logger.Info("resume archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	port := cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	srv := server.New(server.Options{
		Port:            port,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		RateLimit:       ratelimit.NewConfig(cfg.RateLimit),
		APIKey:          cfg.LLM.APIKey,
		Logger:          rt.logger,
	}, services)
	return srv.Start()
}
