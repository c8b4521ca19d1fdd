package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gearsync/core/archive"
	"gearsync/core/config"
	"gearsync/core/database"
	"gearsync/core/loader"
	"gearsync/core/logger"
	"gearsync/core/middleware/auth"
	"gearsync/core/middleware/rayid"
	"gearsync/core/storage"

	"gearsync/feature/buoy"
	"gearsync/feature/hub"
	"gearsync/feature/status"
	syncfeature "gearsync/feature/sync"
	"gearsync/feature/sync/journal"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "gearsync/docs/swagger"
)

// @title Gear Sync API
// @version 1.0
// @description API for reconciling fishing gear deployments between rmwHub and the local tracking platform.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gear sync server",
	Long:  `Starts the HTTP server exposing the sync trigger, run history and status endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// The destination label ends up in journal rows and archive
		// object keys, so reject anything that would not survive there.
		if !cfg.Server.IsValidDestination() {
			logg.Fatal("Invalid destination label", zap.String("destination", cfg.Server.Destination))
		}
		logg = logg.With(zap.String("destination", cfg.Server.Destination))

		// 3. Connect to the journal database (optional)
		var db *gorm.DB
		var store *journal.Store
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Journal database unavailable, runs will not be recorded", zap.Error(err))
		} else {
			db = conn
			if store, err = journal.NewStore(db); err != nil {
				logg.Warn("Journal migration failed, runs will not be recorded", zap.Error(err))
				store = nil
			} else {
				logg.Info("Connected to journal database")
			}
		}

		// 4. Connect to the snapshot archive (optional)
		var archiver *archive.Archiver
		var storageClient storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage unavailable, payload snapshots disabled", zap.Error(err))
		} else {
			storageClient = client
			archiver = archive.New(client, cfg.Storage.Bucket, cfg.Archive, cfg.Server.Destination, logg)
			if err := archiver.EnsureBucket(context.Background()); err != nil {
				logg.Warn("Snapshot bucket not ready", zap.Error(err))
			}
		}

		// 5. API clients (both required; without them there is nothing to sync)
		hubClient, err := hub.NewClient(cfg.Hub, logg)
		if err != nil {
			logg.Fatal("Failed to create hub client", zap.Error(err))
		}
		buoyClient, err := buoy.NewClient(cfg.Buoy, logg)
		if err != nil {
			logg.Fatal("Failed to create buoy client", zap.Error(err))
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(syncfeature.NewFeature(hubClient, buoyClient, store, archiver, cfg.Sync, cfg.Hub.Tag, cfg.Server.Destination, logg))
		mgr.Register(status.NewFeature(hubClient, buoyClient, db, storageClient, cfg.Storage.Bucket, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
