package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/migration"
	"github.com/julianstephens/nightly/internal/models"
	"github.com/julianstephens/nightly/migrations"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string
	db   *sql.DB

	watchMu   sync.Mutex
	watchers  map[string]map[int]func(Change)
	watchSeq  int
	watchStop chan struct{}
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path:     path,
		watchers: make(map[string]map[int]func(Change)),
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed default settings on first run. The generated user id scopes
	// all habits and logs written by this installation.
	if _, err := s.GetSettings(); err != nil {
		defaults := models.AppSettings{
			UserID:     uuid.New().String(),
			AppVersion: constants.Version,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'nightly init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	s.stopWatching()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) runMigrations() error {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return err
	}
	runner := migration.NewRunner(s.db, sub)
	_, err = runner.Apply(nil)
	return err
}

func (s *SQLiteStore) validateSchemaVersion() error {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return err
	}
	return migration.NewRunner(s.db, sub).ValidateVersion()
}
