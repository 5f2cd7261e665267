package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"rts/internal/config"
	"rts/internal/domain"
)

// HistoryStore records run summaries in a MySQL database so mismatch rates
// can be compared across agent versions and project-set changes over time.
type HistoryStore struct {
	config *config.Config
}

// NewHistoryStore creates a new HistoryStore
func NewHistoryStore(cfg *config.Config) *HistoryStore {
	return &HistoryStore{config: cfg}
}

var dbNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// open connects to the MySQL server and ensures the history database and
// table exist. Connection settings come from the environment (optionally a
// .env in the projects directory): RTS_DB_HOST, RTS_DB_PORT,
// RTS_DB_USERNAME, RTS_DB_PASSWORD, RTS_DB_DATABASE.
func (h *HistoryStore) open() (*sql.DB, error) {
	envPath := filepath.Join(h.config.GetProjectsPath(), ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	host := envOr("RTS_DB_HOST", "127.0.0.1")
	port := envOr("RTS_DB_PORT", "3306")
	user := envOr("RTS_DB_USERNAME", "root")
	password := os.Getenv("RTS_DB_PASSWORD")
	dbName := envOr("RTS_DB_DATABASE", "rts_history")

	if !dbNamePattern.MatchString(dbName) {
		return nil, fmt.Errorf("invalid history database name: %s", dbName)
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/", user, password, host, port)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history database: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("USE `%s`", dbName)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to select history database: %w", err)
	}
	if _, err := db.Exec(createRunsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}
	return db, nil
}

const createRunsTable = `CREATE TABLE IF NOT EXISTS runs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	total_projects INT NOT NULL,
	matched_projects INT NOT NULL,
	mismatched_projects INT NOT NULL,
	errored_projects INT NOT NULL,
	duration_seconds DOUBLE NOT NULL,
	workers INT NOT NULL,
	ran_at VARCHAR(64) NOT NULL
)`

// Record inserts one run summary.
func (h *HistoryStore) Record(meta domain.ResultsMeta) error {
	db, err := h.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(
		`INSERT INTO runs (total_projects, matched_projects, mismatched_projects,
			errored_projects, duration_seconds, workers, ran_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.TotalProjects, meta.MatchedProjects, meta.MismatchedProjects,
		meta.ErroredProjects, meta.DurationSeconds, meta.Workers, meta.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// List returns the most recent run records, newest first.
func (h *HistoryStore) List(limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	db, err := h.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT id, total_projects, matched_projects, mismatched_projects,
			errored_projects, duration_seconds, workers, ran_at
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var r domain.RunRecord
		if err := rows.Scan(&r.ID, &r.TotalProjects, &r.MatchedProjects,
			&r.MismatchedProjects, &r.ErroredProjects, &r.DurationSeconds,
			&r.Workers, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
