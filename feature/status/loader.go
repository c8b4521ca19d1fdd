package status

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gearsync/core/storage"
)

type Feature struct {
	service *Service
	handler *Handler
}

func NewFeature(hub HubChecker, buoy BuoyChecker, db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Feature {
	service := NewService(hub, buoy, db, client, bucket, logger)
	return &Feature{
		service: service,
		handler: NewHandler(service),
	}
}

func (f *Feature) Name() string {
	return "status"
}

func (f *Feature) IsEnabled() bool {
	return true
}

func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
