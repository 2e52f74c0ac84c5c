package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/google/uuid"
	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/migration"
	"github.com/julianstephens/nightly/internal/models"
	"github.com/julianstephens/nightly/migrations"
	"github.com/lib/pq"
)

type PostgresStore struct {
	connStr string
	db      *sql.DB

	listenMu   sync.Mutex
	listener   *pq.Listener
	listenDone chan struct{}
	listenSubs map[string]map[int]func(Change)
	listenSeq  int
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr:    connStr,
		listenSubs: make(map[string]map[int]func(Change)),
	}
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *PostgresStore) Close() error {
	s.stopListening()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetConfigPath returns a redacted form of the connection target.
func (s *PostgresStore) GetConfigPath() string {
	return "postgres://" + redactConnStr(s.connStr)
}

func (s *PostgresStore) GetDB() *sql.DB {
	return s.db
}

func (s *PostgresStore) runMigrations() error {
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return err
	}
	runner := migration.NewPostgresRunner(s.db, sub)
	_, err = runner.Apply(nil)
	return err
}

func (s *PostgresStore) validateSchemaVersion() error {
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return err
	}
	return migration.NewPostgresRunner(s.db, sub).ValidateVersion()
}
