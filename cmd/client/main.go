package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/planner/internal/buildinfo"
	"github.com/dmitrijs2005/planner/internal/client/cli"
	"github.com/dmitrijs2005/planner/internal/client/client"
	"github.com/dmitrijs2005/planner/internal/client/config"
	"github.com/dmitrijs2005/planner/internal/client/credentials"
	"github.com/dmitrijs2005/planner/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/planner/internal/client/services"
	"github.com/dmitrijs2005/planner/internal/client/syncer"
	"github.com/dmitrijs2005/planner/internal/filex"
	"github.com/dmitrijs2005/planner/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	if cfg.DataDir != "" {
		if _, err := filex.EnsureDir(cfg.DataDir); err != nil {
			return fmt.Errorf("data dir: %w", err)
		}
	}

	logger, closer := logging.NewFileLogger(logging.FileOptions{
		Path:       cfg.LogPath(),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Level:      cfg.LogLevel,
	})
	defer closer.Close()

	db, err := client.InitDatabase(ctx, cfg.DatabasePath())
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return err
	}
	defer db.Close()

	httpClient := &http.Client{}
	api := client.NewHTTPClient(httpClient, cfg.ServerURL)
	creds := credentials.NewStore(metadata.NewSQLiteRepository(db))

	reconciler := syncer.NewReconciler(db, api, creds, logger.With("component", "download"))
	uploader := syncer.NewUploader(db, api, creds, logger.With("component", "upload"), syncer.UploaderOptions{
		Concurrency: cfg.UploadConcurrency,
		HTTPClient:  httpClient,
	})
	orch := syncer.NewOrchestrator(reconciler, logger.With("component", "sync"))

	app := cli.NewApp(
		cfg,
		services.NewAuthService(api, creds),
		services.NewPlannerService(db, uploader, orch),
		orch,
		logger,
		os.Stdin,
		os.Stdout,
	)
	app.Run(ctx)

	// Let queued uploads and deletes finish before the store is closed.
	uploader.Wait()
	return nil
}
