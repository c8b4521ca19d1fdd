package sync

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gearsync/core/archive"
	"gearsync/core/logger"
)

// Handler handles HTTP requests for sync operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/", h.HandleTrigger)
	group.Get("/runs", h.HandleRecentRuns)
	group.Get("/snapshots/latest", h.HandleLatestSnapshot)
}

// HandleTrigger runs one sync pass for the configured destination.
// @Summary Trigger Sync Pass
// @Description Runs a full download+upload reconciliation pass over the configured window. Concurrent triggers share a single run. This operation may take a long time.
// @Tags sync
// @Accept json
// @Produce json
// @Success 200 {object} sync.Report "Pass Report"
// @Router /sync [post]
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering sync pass", zap.String("destination", h.service.destination))

	report := h.service.Trigger(c.Context())
	return c.JSON(report)
}

// HandleRecentRuns lists the latest journal rows.
// @Summary List Recent Sync Runs
// @Description Returns the most recent sync runs for the configured destination, newest first.
// @Tags sync
// @Accept json
// @Produce json
// @Param limit query int false "Maximum rows to return (default 20)"
// @Success 200 {array} journal.SyncRun "Recent Runs"
// @Failure 503 {object} map[string]string "Journal Not Configured"
// @Router /sync/runs [get]
func (h *Handler) HandleRecentRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.RecentRuns(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		if errors.Is(err, ErrJournalDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Failed to list sync runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(runs)
}

// HandleLatestSnapshot serves the newest archived payload.
// @Summary Fetch Latest Snapshot
// @Description Returns the newest archived payload of the requested kind (download or upload).
// @Tags sync
// @Accept json
// @Produce json
// @Param kind query string false "Snapshot kind: download or upload (default download)"
// @Success 200 {object} map[string]interface{} "Snapshot Payload"
// @Failure 400 {object} map[string]string "Unknown Kind"
// @Failure 404 {object} map[string]string "No Snapshots"
// @Failure 503 {object} map[string]string "Archive Not Configured"
// @Router /sync/snapshots/latest [get]
func (h *Handler) HandleLatestSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	kind := c.Query("kind", archive.KindDownload)
	if kind != archive.KindDownload && kind != archive.KindUpload {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown snapshot kind: " + kind})
	}

	rc, name, err := h.service.LatestSnapshot(c.Context(), kind)
	if err != nil {
		switch {
		case errors.Is(err, ErrArchiveDisabled):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, archive.ErrNoSnapshots):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			l.Error("Failed to fetch latest snapshot", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	defer rc.Close()

	payload, err := io.ReadAll(rc)
	if err != nil {
		l.Error("Failed to read snapshot", zap.String("object", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}
