package cmd

import (
	"context"
	"errors"
	"fmt"

	"gearsync/core/archive"
	"gearsync/core/config"
	"gearsync/core/database"
	"gearsync/core/logger"
	"gearsync/core/storage"
	"gearsync/feature/buoy"
	"gearsync/feature/hub"
	syncfeature "gearsync/feature/sync"
	"gearsync/feature/sync/journal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var windowDays int

// syncCmd runs a single reconciliation pass and exits.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass",
	Long: `Runs a single bidirectional reconciliation pass: downloads hub gear
sets and replays missing state changes onto the tracking platform, then
uploads locally-owned gear back to the hub.

Examples:
  # Full pass over the configured window
  gearsync sync

  # Only look at the last week of updates
  gearsync sync --window-days 7`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntVar(&windowDays, "window-days", 0, "Override the sync window in days (0 uses the configured value)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if windowDays > 0 {
		cfg.Sync.WindowDays = windowDays
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !cfg.Server.IsValidDestination() {
		return fmt.Errorf("invalid destination label: %q", cfg.Server.Destination)
	}
	l = l.With(zap.String("destination", cfg.Server.Destination))

	// Journal and archive are optional for a one-shot pass.
	var store *journal.Store
	if db, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Journal database unavailable, run will not be recorded", zap.Error(err))
	} else if store, err = journal.NewStore(db); err != nil {
		l.Warn("Journal migration failed, run will not be recorded", zap.Error(err))
		store = nil
	}

	var archiver *archive.Archiver
	if client, err := storage.NewClient(cfg.Storage); err != nil {
		l.Warn("Storage unavailable, payload snapshots disabled", zap.Error(err))
	} else {
		archiver = archive.New(client, cfg.Storage.Bucket, cfg.Archive, cfg.Server.Destination, l)
		if err := archiver.EnsureBucket(ctx); err != nil {
			l.Warn("Snapshot bucket not ready", zap.Error(err))
		}
	}

	hubClient, err := hub.NewClient(cfg.Hub, l)
	if err != nil {
		return fmt.Errorf("failed to create hub client: %w", err)
	}
	buoyClient, err := buoy.NewClient(cfg.Buoy, l)
	if err != nil {
		return fmt.Errorf("failed to create buoy client: %w", err)
	}

	svc := syncfeature.NewService(hubClient, buoyClient, store, archiver, cfg.Sync, cfg.Hub.Tag, cfg.Server.Destination, l)

	l.Info("Starting reconciliation pass", zap.Time("since", svc.WindowStart()))
	report := svc.RunSync(ctx, svc.WindowStart())

	printSyncReport(l, report)

	if !report.Succeeded() {
		return errors.New("sync pass finished with errors")
	}
	return nil
}

// printSyncReport prints a formatted pass report using the logger.
func printSyncReport(l *zap.Logger, report *syncfeature.Report) {
	l.Info("Pass report",
		zap.Int("sets_downloaded", report.SetsDownloaded),
		zap.Int("events_emitted", report.EventsEmitted),
		zap.Int("events_skipped", report.EventsSkipped),
		zap.Int("sets_uploaded", report.SetsUploaded),
		zap.Int("traps_accepted", report.TrapsAccepted),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
	)

	if len(report.FailedSets) > 0 {
		l.Warn("Hub rejected sets", zap.Strings("set_ids", report.FailedSets))
	}

	if len(report.ItemErrors) > 0 {
		// Show a sample of the per-item failures (max 5 for the logger)
		maxShow := 5
		if len(report.ItemErrors) < maxShow {
			maxShow = len(report.ItemErrors)
		}
		l.Warn("Items skipped due to errors", zap.Int("count", len(report.ItemErrors)))
		for i := 0; i < maxShow; i++ {
			e := report.ItemErrors[i]
			l.Warn("Item error",
				zap.String("set_id", e.SetID),
				zap.String("trap_id", e.TrapID),
				zap.String("reason", e.Reason),
			)
		}
	}

	if report.DownloadError != "" {
		l.Error("Download phase failed", zap.String("error", report.DownloadError))
	}
	if report.UploadError != "" {
		l.Error("Upload phase failed", zap.String("error", report.UploadError))
	}
}
