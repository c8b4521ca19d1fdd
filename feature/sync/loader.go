package sync

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gearsync/core/archive"
	"gearsync/feature/sync/journal"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Sync feature.
func NewFeature(hubAPI HubAPI, buoyAPI BuoyAPI, store *journal.Store, archiver *archive.Archiver, cfg Config, hubTag, destination string, logger *zap.Logger) *Feature {
	svc := NewService(hubAPI, buoyAPI, store, archiver, cfg, hubTag, destination, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
