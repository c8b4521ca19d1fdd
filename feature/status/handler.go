package status

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gearsync/core/logger"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/status/", h.HandleStatus)
}

// HandleStatus godoc
// @Summary Dependency health
// @Description Probes the hub, the tracking platform, the journal database and the snapshot archive, and reports per-dependency health.
// @Tags status
// @Produce json
// @Success 200 {object} Status
// @Failure 503 {object} Status
// @Router /status/ [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	st := h.service.Check(c.Context())
	if !st.Healthy() {
		l.Warn("Status check found unhealthy dependencies",
			zap.Bool("hub", st.Hub.OK),
			zap.Bool("buoy", st.Buoy.OK),
			zap.Bool("database", st.Database.OK),
			zap.Bool("archive", st.Archive.OK),
		)
		return c.Status(fiber.StatusServiceUnavailable).JSON(st)
	}

	l.Debug("Status check passed")
	return c.JSON(st)
}
