package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"gearsync/core/archive"
	"gearsync/core/utils"
	"gearsync/feature/buoy"
	"gearsync/feature/hub"
	"gearsync/feature/sync/journal"
)

// Sentinel errors for optional collaborators that were not configured.
var (
	ErrJournalDisabled = errors.New("sync run journal is not configured")
	ErrArchiveDisabled = errors.New("snapshot archive is not configured")
)

// HubAPI is the hub surface the service consumes.
type HubAPI interface {
	SearchHub(ctx context.Context, since time.Time) ([]hub.GearSet, error)
	UploadDeployments(ctx context.Context, sets []hub.GearSet) (*hub.UploadResult, error)
}

// BuoyAPI is the platform surface the service consumes.
type BuoyAPI interface {
	ListGears(ctx context.Context) ([]buoy.Gear, error)
	StreamGears(ctx context.Context, since time.Time, state string) <-chan buoy.GearItem
	CreateEvents(ctx context.Context, events []buoy.Event) error
}

// Report aggregates one pass for one destination. A pass always produces
// a report; phase failures are recorded on it rather than returned.
type Report struct {
	Destination    string      `json:"destination"`
	StartedAt      time.Time   `json:"started_at"`
	FinishedAt     time.Time   `json:"finished_at"`
	SetsDownloaded int         `json:"sets_downloaded"`
	EventsEmitted  int         `json:"events_emitted"`
	EventsSkipped  int         `json:"events_skipped"`
	SetsUploaded   int         `json:"sets_uploaded"`
	TrapsAccepted  int         `json:"traps_accepted"`
	FailedSets     []string    `json:"failed_sets,omitempty"`
	ItemErrors     []ItemError `json:"item_errors,omitempty"`
	DownloadError  string      `json:"download_error,omitempty"`
	UploadError    string      `json:"upload_error,omitempty"`
}

// Succeeded reports whether both phases completed.
func (r *Report) Succeeded() bool {
	return r.DownloadError == "" && r.UploadError == ""
}

// Service orchestrates sync passes for one destination. Distinct
// destinations get their own Service; nothing is shared between them.
type Service struct {
	hub         HubAPI
	buoy        BuoyAPI
	journal     *journal.Store
	archiver    *archive.Archiver
	reconciler  *Reconciler
	transformer *Transformer
	cfg         Config
	destination string
	logger      *zap.Logger
	group       singleflight.Group
}

// NewService wires the orchestrator. store and archiver may be nil; the
// pass then runs without audit artifacts.
func NewService(hubAPI HubAPI, buoyAPI BuoyAPI, store *journal.Store, archiver *archive.Archiver, cfg Config, hubTag, destination string, logger *zap.Logger) *Service {
	return &Service{
		hub:         hubAPI,
		buoy:        buoyAPI,
		journal:     store,
		archiver:    archiver,
		reconciler:  NewReconciler(logger),
		transformer: NewTransformer(hubTag, nil),
		cfg:         cfg,
		destination: destination,
		logger:      logger,
	}
}

// Trigger runs a pass over the configured window, collapsing concurrent
// triggers for the same destination into a single run whose report all
// callers share.
func (s *Service) Trigger(ctx context.Context) *Report {
	v, _, _ := s.group.Do(s.destination, func() (any, error) {
		return s.RunSync(ctx, s.WindowStart()), nil
	})
	return v.(*Report)
}

// WindowStart returns the earliest update time a pass considers.
func (s *Service) WindowStart() time.Time {
	days := s.cfg.WindowDays
	if days <= 0 {
		days = 90
	}
	return time.Now().UTC().AddDate(0, 0, -days)
}

// RunSync executes one pass: download reconciliation first, then upload.
// The two phases are independent; a failure in one never blocks the
// other, and no failure short of a panic escapes the report.
func (s *Service) RunSync(ctx context.Context, since time.Time) *Report {
	report := &Report{Destination: s.destination, StartedAt: time.Now().UTC()}

	var run *journal.SyncRun
	if s.journal != nil {
		var err error
		if run, err = s.journal.Begin(ctx, s.destination); err != nil {
			s.logger.Warn("Failed to record sync run start", zap.Error(err))
			run = nil
		}
	}

	s.runDownload(ctx, since, report)
	s.runUpload(ctx, since, report)
	s.pruneArchive(ctx)

	report.FinishedAt = time.Now().UTC()

	if run != nil {
		s.finishRun(ctx, run, report)
	}

	s.logger.Info("Sync pass finished",
		zap.String("destination", s.destination),
		zap.Bool("succeeded", report.Succeeded()),
		zap.Int("sets_downloaded", report.SetsDownloaded),
		zap.Int("events_emitted", report.EventsEmitted),
		zap.Int("sets_uploaded", report.SetsUploaded),
		zap.Int("traps_accepted", report.TrapsAccepted),
		zap.Int("item_errors", len(report.ItemErrors)),
	)
	return report
}

// runDownload fetches both snapshots concurrently, reconciles them and
// delivers the resulting events in fixed-size batches.
func (s *Service) runDownload(ctx context.Context, since time.Time, report *Report) {
	var (
		sets  []hub.GearSet
		gears []buoy.Gear
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if sets, err = s.hub.SearchHub(gctx, since); err != nil {
			return fmt.Errorf("hub fetch failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if gears, err = s.buoy.ListGears(gctx); err != nil {
			return fmt.Errorf("local gear fetch failed: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		report.DownloadError = err.Error()
		s.logger.Error("Download phase aborted", zap.Error(err))
		return
	}

	report.SetsDownloaded = len(sets)
	if len(sets) == 0 {
		s.logger.Info("No hub updates in window", zap.Time("since", since))
		return
	}

	s.archiveSnapshot(ctx, archive.KindDownload, sets)

	outcome := s.reconciler.Reconcile(sets, BuildDeviceIndex(gears))
	report.EventsSkipped = outcome.Skipped
	report.ItemErrors = append(report.ItemErrors, outcome.Errors...)

	for _, batch := range utils.Batches(outcome.Events, s.cfg.EventBatchSize) {
		if err := s.buoy.CreateEvents(ctx, batch); err != nil {
			report.DownloadError = fmt.Sprintf("event delivery failed: %s", err)
			s.logger.Error("Event batch delivery failed",
				zap.Int("delivered", report.EventsEmitted),
				zap.Error(err),
			)
			return
		}
		report.EventsEmitted += len(batch)
	}
}

// runUpload streams local gear per lifecycle state, transforms it and
// pushes the accumulated sets to the hub in one call.
func (s *Service) runUpload(ctx context.Context, since time.Time, report *Report) {
	var sets []hub.GearSet

	for _, state := range []string{buoy.StateDeployed, buoy.StateHauled} {
		for item := range s.buoy.StreamGears(ctx, since, state) {
			if item.Err != nil {
				report.UploadError = fmt.Sprintf("local gear stream failed: %s", item.Err)
				s.logger.Error("Upload phase aborted",
					zap.String("state", state),
					zap.Error(item.Err),
				)
				return
			}

			set, err := s.transformer.Build(item.Gear)
			if err != nil {
				report.ItemErrors = append(report.ItemErrors, ItemError{GearID: item.Gear.ID, Reason: err.Error()})
				s.logger.Warn("Skipping gear that could not be transformed",
					zap.String("gear_id", item.Gear.ID),
					zap.Error(err),
				)
				continue
			}
			if set == nil {
				// Hub-owned gear never flows back to the hub.
				s.logger.Debug("Excluding hub-owned gear from upload", zap.String("gear_id", item.Gear.ID))
				continue
			}
			sets = append(sets, *set)
		}
	}

	if len(sets) == 0 {
		s.logger.Info("No local gear to upload", zap.Time("since", since))
		return
	}

	s.archiveSnapshot(ctx, archive.KindUpload, sets)

	result, err := s.hub.UploadDeployments(ctx, sets)
	if err != nil {
		report.UploadError = fmt.Sprintf("hub upload failed: %s", err)
		s.logger.Error("Upload phase aborted", zap.Error(err))
		return
	}

	report.SetsUploaded = len(sets)
	report.TrapsAccepted = result.TrapCount
	report.FailedSets = result.FailedSets
	if len(result.FailedSets) > 0 {
		s.logger.Warn("Hub rejected some uploaded sets", zap.Strings("set_ids", result.FailedSets))
	}
}

// RecentRuns lists the latest journal rows for this destination.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]journal.SyncRun, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.Recent(ctx, s.destination, limit)
}

// LatestSnapshot opens the newest archived payload of the given kind.
func (s *Service) LatestSnapshot(ctx context.Context, kind string) (io.ReadCloser, string, error) {
	if s.archiver == nil {
		return nil, "", ErrArchiveDisabled
	}
	return s.archiver.Latest(ctx, kind)
}

// archiveSnapshot stores a payload copy for audit. Archive failures are
// logged and swallowed: audit artifacts never fail a pass.
func (s *Service) archiveSnapshot(ctx context.Context, kind string, payload any) {
	if s.archiver == nil {
		return
	}
	name, err := s.archiver.SaveSnapshot(ctx, kind, payload)
	if err != nil {
		s.logger.Warn("Failed to archive snapshot", zap.String("kind", kind), zap.Error(err))
		return
	}
	s.logger.Debug("Archived snapshot", zap.String("object", name))
}

func (s *Service) pruneArchive(ctx context.Context) {
	if s.archiver == nil {
		return
	}
	removed, err := s.archiver.PruneExpired(ctx)
	if err != nil {
		s.logger.Warn("Archive retention pruning failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Debug("Pruned expired archive snapshots", zap.Int("removed", removed))
	}
}

func (s *Service) finishRun(ctx context.Context, run *journal.SyncRun, report *Report) {
	run.Status = journal.StatusSucceeded
	if !report.Succeeded() {
		run.Status = journal.StatusFailed
	}
	run.SetsDownloaded = report.SetsDownloaded
	run.EventsEmitted = report.EventsEmitted
	run.SetsUploaded = report.SetsUploaded
	run.TrapsAccepted = report.TrapsAccepted
	run.ItemFailures = len(report.ItemErrors)
	run.SetFailedSets(report.FailedSets)

	var phaseErrors []string
	if report.DownloadError != "" {
		phaseErrors = append(phaseErrors, report.DownloadError)
	}
	if report.UploadError != "" {
		phaseErrors = append(phaseErrors, report.UploadError)
	}
	run.Error = strings.Join(phaseErrors, "; ")

	if err := s.journal.Finish(ctx, run); err != nil {
		s.logger.Warn("Failed to finalize sync run", zap.Error(err))
	}
}
