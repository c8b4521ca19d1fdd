package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gearsync/core/database"
	"gearsync/core/storage"
	"gearsync/feature/sync/journal"
)

// HubChecker verifies hub credentials with a live round-trip.
type HubChecker interface {
	ValidateCredentials(ctx context.Context) error
}

// BuoyChecker verifies platform connectivity and token validity.
type BuoyChecker interface {
	Ping(ctx context.Context) error
}

// DependencyStatus is the health of one collaborator.
type DependencyStatus struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Status is the aggregate health of every collaborator a sync pass
// touches.
type Status struct {
	Hub      DependencyStatus `json:"hub"`
	Buoy     DependencyStatus `json:"buoy"`
	Database DependencyStatus `json:"database"`
	Archive  DependencyStatus `json:"archive"`
}

// Healthy reports whether a sync pass can run right now. The database
// and archive are optional collaborators, but when configured they must
// answer.
func (s Status) Healthy() bool {
	return s.Hub.OK && s.Buoy.OK && s.Database.OK && s.Archive.OK
}

// journalColumns are the sync_runs columns a migrated journal carries.
var journalColumns = []string{
	"id", "destination", "status", "started_at", "finished_at",
	"sets_downloaded", "events_emitted", "sets_uploaded", "traps_accepted",
	"failed_sets", "item_failures", "error",
}

// Service runs the dependency checks. Any collaborator may be nil; it is
// then reported as not configured.
type Service struct {
	hub     HubChecker
	buoy    BuoyChecker
	db      *gorm.DB
	storage storage.Client
	bucket  string
	logger  *zap.Logger
}

// NewService creates a status service.
func NewService(hub HubChecker, buoy BuoyChecker, db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		hub:     hub,
		buoy:    buoy,
		db:      db,
		storage: client,
		bucket:  bucket,
		logger:  logger,
	}
}

// Check probes every collaborator and returns the aggregate.
func (s *Service) Check(ctx context.Context) Status {
	return Status{
		Hub:      s.checkHub(ctx),
		Buoy:     s.checkBuoy(ctx),
		Database: s.checkDatabase(ctx),
		Archive:  s.checkArchive(ctx),
	}
}

func (s *Service) checkHub(ctx context.Context) DependencyStatus {
	// Both APIs are mandatory: without them there is nothing to sync.
	if s.hub == nil {
		return DependencyStatus{Detail: "not configured"}
	}
	if err := s.hub.ValidateCredentials(ctx); err != nil {
		return DependencyStatus{Detail: err.Error()}
	}
	return DependencyStatus{OK: true}
}

func (s *Service) checkBuoy(ctx context.Context) DependencyStatus {
	if s.buoy == nil {
		return DependencyStatus{Detail: "not configured"}
	}
	if err := s.buoy.Ping(ctx); err != nil {
		return DependencyStatus{Detail: err.Error()}
	}
	return DependencyStatus{OK: true}
}

func (s *Service) checkDatabase(ctx context.Context) DependencyStatus {
	if s.db == nil {
		return DependencyStatus{OK: true, Detail: "not configured"}
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return DependencyStatus{Detail: err.Error()}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return DependencyStatus{Detail: fmt.Sprintf("ping failed: %s", err)}
	}

	table := journal.SyncRun{}.TableName()
	if !database.HasTable(s.db, table) {
		return DependencyStatus{Detail: fmt.Sprintf("%s table missing", table)}
	}

	columns, err := database.GetTableColumns(s.db, table)
	if err != nil {
		return DependencyStatus{Detail: err.Error()}
	}
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col.Field] = true
	}

	var missing []string
	for _, name := range journalColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return DependencyStatus{Detail: fmt.Sprintf("%s missing columns: %s", table, strings.Join(missing, ", "))}
	}

	return DependencyStatus{OK: true}
}

func (s *Service) checkArchive(ctx context.Context) DependencyStatus {
	if s.storage == nil {
		return DependencyStatus{OK: true, Detail: "not configured"}
	}

	exists, err := s.storage.BucketExists(ctx, s.bucket)
	if err != nil {
		return DependencyStatus{Detail: err.Error()}
	}
	if !exists {
		return DependencyStatus{Detail: fmt.Sprintf("bucket %s missing", s.bucket)}
	}
	return DependencyStatus{OK: true}
}
