package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyRunsPendingMigrationsInOrder(t *testing.T) {
	db := newTestDB(t)
	fsys := fstest.MapFS{
		"002_add_column.sql": {Data: []byte("ALTER TABLE people ADD COLUMN age INTEGER;")},
		"001_init.sql":       {Data: []byte("CREATE TABLE people (id TEXT PRIMARY KEY);")},
	}

	runner := NewRunner(db, fsys)
	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// ALTER only works if 001 ran first, so a successful insert into the
	// new column proves the ordering.
	if _, err := db.Exec("INSERT INTO people (id, age) VALUES ('a', 30)"); err != nil {
		t.Errorf("schema incomplete after migrations: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE things (id TEXT PRIMARY KEY);")},
	}

	runner := NewRunner(db, fsys)
	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}

	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Apply applied %d migrations, want 0", applied)
	}
}

func TestApplyRejectsNewerDatabase(t *testing.T) {
	db := newTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE things (id TEXT PRIMARY KEY);")},
	}

	runner := NewRunner(db, fsys)
	if _, err := db.Exec("CREATE TABLE schema_version (version INTEGER PRIMARY KEY)"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (99)"); err != nil {
		t.Fatal(err)
	}

	if _, err := runner.Apply(nil); err == nil {
		t.Error("Apply should refuse a database newer than the latest migration")
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion should refuse a database newer than the latest migration")
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	db := newTestDB(t)

	for _, name := range []string{"init.sql", "abc_init.sql", "000_init.sql"} {
		fsys := fstest.MapFS{name: {Data: []byte("SELECT 1;")}}
		if _, err := NewRunner(db, fsys).ReadMigrationFiles(); err == nil {
			t.Errorf("filename %q should be rejected", name)
		}
	}
}

func TestReadMigrationFilesRejectsDuplicateVersions(t *testing.T) {
	db := newTestDB(t)
	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1;")},
		"001_b.sql": {Data: []byte("SELECT 1;")},
	}
	if _, err := NewRunner(db, fsys).ReadMigrationFiles(); err == nil {
		t.Error("duplicate versions should be rejected")
	}
}

func TestFailedMigrationRollsBack(t *testing.T) {
	db := newTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE ok (id TEXT);")},
		"002_bad.sql":  {Data: []byte("THIS IS NOT SQL;")},
	}

	runner := NewRunner(db, fsys)
	applied, err := runner.Apply(nil)
	if err == nil {
		t.Fatal("Apply should fail on invalid SQL")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1 (only the valid migration)", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1 after partial failure", version)
	}
}
