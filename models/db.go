package models

import (
	"database/sql"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

var (
	db   *sql.DB
	dbMu sync.RWMutex // protect concurrent access during writes
)

// DDLCreateAppStateTable holds app-level key/value blobs, principally the
// snapshot under SnapshotKey. A single-row-per-key table mirrors the
// get/set semantics the rest of the code expects.
const DDLCreateAppStateTable = `
CREATE TABLE IF NOT EXISTS app_state (
    key        VARCHAR PRIMARY KEY,
    value      VARCHAR NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitDB opens the DuckDB database at the given path and ensures the schema.
func InitDB(path string) error {
	var err error

	db, err = sql.Open("duckdb", path)
	if err != nil {
		return serr.Wrap(err, "failed to open database")
	}

	if _, err = db.Exec(DDLCreateAppStateTable); err != nil {
		return serr.Wrap(err, "failed to migrate app_state table")
	}

	logger.Info("Database ready", "path", path)
	return nil
}

// InitTestDB opens a database for tests at the given path. Same as InitDB;
// kept as a distinct entry point so test setup reads clearly.
func InitTestDB(path string) error {
	return InitDB(path)
}

// CloseDB closes the database connection.
func CloseDB() {
	if db != nil {
		db.Close()
		db = nil
	}
}

// GetState reads a blob by key. A missing key returns an empty string, not
// an error — absence of stored state is a normal first-run condition.
func GetState(key string) (string, error) {
	dbMu.RLock()
	defer dbMu.RUnlock()

	if db == nil {
		return "", serr.New("database is not initialized")
	}

	var value string
	err := db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", serr.Wrap(err, "failed to read app state")
	}
	return value, nil
}

// SetState overwrites the blob stored under key.
func SetState(key, value string) error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db == nil {
		return serr.New("database is not initialized")
	}

	_, err := db.Exec(`
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return serr.Wrap(err, "failed to write app state")
	}
	return nil
}
