package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// SyncRun is one row in the sync_runs table, one per reconciliation pass.
type SyncRun struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	Destination    string    `gorm:"column:destination;index" json:"destination"`
	Status         string    `gorm:"column:status" json:"status"`
	StartedAt      time.Time `gorm:"column:started_at" json:"started_at"`
	FinishedAt     time.Time `gorm:"column:finished_at" json:"finished_at"`
	SetsDownloaded int       `gorm:"column:sets_downloaded" json:"sets_downloaded"`
	EventsEmitted  int       `gorm:"column:events_emitted" json:"events_emitted"`
	SetsUploaded   int       `gorm:"column:sets_uploaded" json:"sets_uploaded"`
	TrapsAccepted  int       `gorm:"column:traps_accepted" json:"traps_accepted"`
	// FailedSets holds the identifiers the hub rejected, comma-joined.
	FailedSets   string `gorm:"column:failed_sets" json:"failed_sets,omitempty"`
	ItemFailures int    `gorm:"column:item_failures" json:"item_failures"`
	Error        string `gorm:"column:error" json:"error,omitempty"`
}

// TableName overrides the table name used by GORM.
func (SyncRun) TableName() string {
	return "sync_runs"
}

// SetFailedSets stores the rejected set identifiers on the row.
func (r *SyncRun) SetFailedSets(ids []string) {
	r.FailedSets = strings.Join(ids, ",")
}

// Store persists sync runs.
type Store struct {
	db *gorm.DB
}

// NewStore migrates the sync_runs table and returns a store.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&SyncRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sync_runs table: %w", err)
	}
	return &Store{db: db}, nil
}

// Begin inserts a running row for a new pass and returns it.
func (s *Store) Begin(ctx context.Context, destination string) (*SyncRun, error) {
	run := &SyncRun{
		ID:          uuid.NewString(),
		Destination: destination,
		Status:      StatusRunning,
		StartedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to record sync run: %w", err)
	}
	return run, nil
}

// Finish stamps the end time and writes the completed row back.
func (s *Store) Finish(ctx context.Context, run *SyncRun) error {
	run.FinishedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(run).Error; err != nil {
		return fmt.Errorf("failed to finalize sync run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first. An empty destination
// returns runs for every destination.
func (s *Store) Recent(ctx context.Context, destination string, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Order("started_at desc").Limit(limit)
	if destination != "" {
		query = query.Where("destination = ?", destination)
	}

	var runs []SyncRun
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	return runs, nil
}
