// Package iocache persists the amend journal: one row per commit rewrite.
package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
)

// JournalStoreManager holds the process-wide journal store.
type JournalStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	journal      contract.JournalStore
}

// GetJournalStore returns the journal store, or nil before InitJournal.
func (mgr *JournalStoreManager) GetJournalStore() contract.JournalStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.journal
}

// Global Manager instance for main logic.
var (
	Manager   = &JournalStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for the journal.
func GetDBFilePath() string {
	return contract.GetJournalDBFilePath()
}

// InitJournal initializes the global journal store.
func InitJournal(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		store, err := NewJournalStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize amend journal: %w", err)
			return
		}
		Manager.Lock()
		Manager.journal = store
		Manager.Unlock()
	})

	return initErr
}

// CloseJournal should be called on application shutdown.
func CloseJournal() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.journal != nil {
			_ = Manager.journal.Close()
		}
	})
}

// ClearJournal removes every journal entry for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearJournal(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = GetDBFilePath()
		}
		if dbFilePath == ":memory:" {
			return nil
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, journalTable, backend)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, journalTable, backend)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported journal backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string, backend schema.DatabaseBackend) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
