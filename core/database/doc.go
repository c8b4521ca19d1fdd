// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure connections for the sync run journal. MySQL is
// the production driver; SQLite (including ":memory:") is supported for
// development and tests.
//
// # Connect
//
// Connect establishes a connection for the configured driver. The journal
// database is optional at runtime: when the connection fails the service
// keeps running and sync passes are simply not recorded.
//
// # Schema Inspection
//
// GetTableColumns retrieves normalized column definitions for a table. The
// status feature uses it to verify that the journal schema matches what the
// application expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("journal database unavailable", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "sync_runs")
package database
