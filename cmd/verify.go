package cmd

import (
	"context"
	"errors"
	"fmt"

	"gearsync/core/config"
	"gearsync/core/database"
	"gearsync/core/logger"
	"gearsync/core/storage"
	"gearsync/feature/buoy"
	"gearsync/feature/hub"
	"gearsync/feature/status"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// verifyCmd checks every configured dependency and reports what works.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify credentials and connectivity",
	Long: `Checks the hub API key, the tracking platform token, the journal
database and the snapshot archive, and reports the health of each.`,
	RunE: runVerify,
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Build what can be built; anything unconfigured is reported by the
	// check itself rather than aborting the command.
	var hubChecker status.HubChecker
	if client, err := hub.NewClient(cfg.Hub, l); err != nil {
		l.Warn("Hub client not configured", zap.Error(err))
	} else {
		hubChecker = client
	}

	var buoyChecker status.BuoyChecker
	if client, err := buoy.NewClient(cfg.Buoy, l); err != nil {
		l.Warn("Buoy client not configured", zap.Error(err))
	} else {
		buoyChecker = client
	}

	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Journal database unreachable", zap.Error(err))
	} else {
		db = conn
	}

	var storageClient storage.Client
	if client, err := storage.NewClient(cfg.Storage); err != nil {
		l.Warn("Storage client not configured", zap.Error(err))
	} else {
		storageClient = client
	}

	svc := status.NewService(hubChecker, buoyChecker, db, storageClient, cfg.Storage.Bucket, l)
	st := svc.Check(ctx)

	printDependency(l, "hub", st.Hub)
	printDependency(l, "buoy", st.Buoy)
	printDependency(l, "database", st.Database)
	printDependency(l, "archive", st.Archive)

	if !st.Healthy() {
		return errors.New("verification failed")
	}
	l.Info("All dependencies verified")
	return nil
}

func printDependency(l *zap.Logger, name string, dep status.DependencyStatus) {
	if dep.OK {
		if dep.Detail != "" {
			l.Info("Dependency healthy", zap.String("dependency", name), zap.String("detail", dep.Detail))
		} else {
			l.Info("Dependency healthy", zap.String("dependency", name))
		}
		return
	}
	l.Error("Dependency unhealthy", zap.String("dependency", name), zap.String("detail", dep.Detail))
}
