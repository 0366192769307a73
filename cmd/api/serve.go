package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/story-bias/internal/config"
	"alfredoptarigan/story-bias/internal/repositories"
	"alfredoptarigan/story-bias/internal/server"
	"alfredoptarigan/story-bias/internal/services"
)

const janitorInterval = 10 * time.Minute

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var (
		flashRepo repositories.FlashRepository
		storage   fiber.Storage
	)
	if cfg.UseDatabase() {
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := config.CloseDatabase(db); err != nil {
				log.Warn("failed to close database", zap.Error(err))
			}
		}()
		flashRepo = repositories.NewFlashRepository(db, cfg.Session.Expiration)
		storage = repositories.NewSessionStorage(db)
	} else {
		log.Info("DB_HOST not configured, keeping sessions in memory")
		flashRepo = repositories.NewMemoryFlashRepository(cfg.Session.Expiration)
	}

	if cfg.Analyzer.URL == "" {
		log.Warn("ANALYZER_URL not configured, every analysis will fail")
	}
	analyzer := services.NewAnalyzer(cfg.Analyzer.URL, cfg.Analyzer.Timeout)

	pool := services.NewAnalysisPool(analyzer, cfg.Analyzer.Concurrency, log)
	pool.Start()
	defer pool.Stop()

	reportService := services.NewReportService(pool, flashRepo, log)

	app := server.New(reportService, server.Options{
		Session:   cfg.Session,
		Storage:   storage,
		AccessLog: os.Stdout,
	}, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	janitor := services.NewFlashJanitor(flashRepo, janitorInterval, log)
	janitor.Start(ctx)
	defer janitor.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := ":" + cfg.Server.Port
		log.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))
		return app.Listen(addr)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		return app.Shutdown()
	})

	return g.Wait()
}
