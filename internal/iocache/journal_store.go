package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// journalTable is the name of the table holding amend journal entries.
const journalTable = "coauthor_journal"

const journalColumns = "entry_id, recorded_at, repo_path, action, old_hash, new_hash, trailers"

// JournalStoreImpl records commit rewrites in a SQL database.
type JournalStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.JournalStore = &JournalStoreImpl{} // Compile-time check

// NewJournalStore creates a new JournalStore with the specified backend.
func NewJournalStore(backend schema.DatabaseBackend, connStr string) (contract.JournalStore, error) {
	if err := validateTableName(journalTable); err != nil {
		return nil, err
	}

	db, driverName, err := openDatabase(backend, connStr)
	if err != nil {
		return nil, err
	}
	if db == nil {
		// Return a no-op store for a disabled journal
		return &JournalStoreImpl{backend: backend}, nil
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is writable."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createJournalTable(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &JournalStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// openDatabase opens the database for a backend. It returns a nil *sql.DB for
// NoneBackend.
func openDatabase(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, "sqlite", nil

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse MySQL connection string: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		// DATETIME columns are scanned into time.Time
		cfg.ParseTime = true
		db, err := sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			return nil, "", fmt.Errorf("failed to open MySQL database: %w", err)
		}
		return db, "mysql", nil

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=coauthor
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... port=... user=... password=... dbname=...", err)
		}
		return db, "pgx", nil

	case schema.NoneBackend:
		return nil, "", nil

	default:
		return nil, "", fmt.Errorf("unsupported journal backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// createJournalTable applies the first migration's DDL so a fresh database
// works without running `journal migrate`.
func createJournalTable(db *sql.DB, backend schema.DatabaseBackend) error {
	ddl, err := migrationsFS.ReadFile(fmt.Sprintf("migrations/%s/000001_create_journal.up.sql", backend))
	if err != nil {
		return fmt.Errorf("failed to read journal schema: %w", err)
	}
	if _, err := db.Exec(string(ddl)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", journalTable, err)
	}
	return nil
}

// Record stores one rewrite.
func (js *JournalStoreImpl) Record(entry schema.JournalEntry) error {
	// Skip for NoneBackend
	if js.backend == schema.NoneBackend || js.db == nil {
		return nil
	}

	trailers := entry.Trailers
	if trailers == nil {
		trailers = []string{}
	}
	trailersJSON, err := json.Marshal(trailers)
	if err != nil {
		return fmt.Errorf("failed to marshal trailers: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteTableName(journalTable, js.backend),
		journalColumns,
		strings.Join(placeholders(js.backend, 7), ", "))
	_, err = js.db.Exec(query,
		entry.ID, formatTime(entry.Time, js.backend), entry.RepoPath,
		string(entry.Action), entry.OldHash, entry.NewHash, string(trailersJSON))
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

// List returns the most recent entries first, at most limit (0 = all).
func (js *JournalStoreImpl) List(limit int) ([]schema.JournalEntry, error) {
	// Skip for NoneBackend
	if js.backend == schema.NoneBackend || js.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY entry_seq DESC", journalColumns, quoteTableName(journalTable, js.backend))
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := js.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.JournalEntry
	for rows.Next() {
		entry, err := js.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entries: %w", err)
	}
	return results, nil
}

// scanEntry reads one row selected with journalColumns.
func (js *JournalStoreImpl) scanEntry(rows *sql.Rows) (schema.JournalEntry, error) {
	var entry schema.JournalEntry
	var action, trailersJSON string

	switch js.backend {
	case schema.SQLiteBackend:
		var recordedAt string
		if err := rows.Scan(&entry.ID, &recordedAt, &entry.RepoPath, &action, &entry.OldHash, &entry.NewHash, &trailersJSON); err != nil {
			return entry, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return entry, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		entry.Time = t
	default: // MySQL and PostgreSQL store as native datetime
		if err := rows.Scan(&entry.ID, &entry.Time, &entry.RepoPath, &action, &entry.OldHash, &entry.NewHash, &trailersJSON); err != nil {
			return entry, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entry.Time = entry.Time.UTC()
	}

	entry.Action = schema.Action(action)
	if err := json.Unmarshal([]byte(trailersJSON), &entry.Trailers); err != nil {
		return entry, fmt.Errorf("failed to unmarshal trailers of entry %s: %w", entry.ID, err)
	}
	return entry, nil
}

// Close closes the underlying connection.
func (js *JournalStoreImpl) Close() error {
	if js.db != nil {
		return js.db.Close()
	}
	return nil
}

// GetStatus returns status information about the journal store.
func (js *JournalStoreImpl) GetStatus() (schema.JournalStatus, error) {
	status := schema.JournalStatus{
		Backend:   string(js.backend),
		Connected: js.db != nil,
	}

	if js.backend == schema.NoneBackend || js.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(journalTable, js.backend)

	// Get total entries
	row := js.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}

	if status.TotalEntries == 0 {
		return status, nil
	}

	last, err := js.entryTime(fmt.Sprintf("SELECT recorded_at FROM %s ORDER BY entry_seq DESC LIMIT 1", quotedTableName))
	if err != nil {
		return status, fmt.Errorf("failed to get last entry time: %w", err)
	}
	status.LastEntryTime = last

	oldest, err := js.entryTime(fmt.Sprintf("SELECT recorded_at FROM %s ORDER BY entry_seq ASC LIMIT 1", quotedTableName))
	if err != nil {
		return status, fmt.Errorf("failed to get oldest entry time: %w", err)
	}
	status.OldestEntryTime = oldest

	return status, nil
}

// entryTime runs a query selecting a single recorded_at value.
func (js *JournalStoreImpl) entryTime(query string) (time.Time, error) {
	row := js.db.QueryRow(query)
	if js.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, s)
	}
	var t time.Time
	if err := row.Scan(&t); err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
