package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/foundersandcoders/lift/migrations"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func files(m map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range m {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestCurrentVersion(t *testing.T) {
	r := NewRunner(openDB(t), files(nil), SQLite)

	v, err := r.CurrentVersion()
	if err != nil || v != 0 {
		t.Fatalf("CurrentVersion() = %d, %v, want 0", v, err)
	}
	if err := r.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if v, _ := r.CurrentVersion(); v != 5 {
		t.Errorf("CurrentVersion() = %d, want 5", v)
	}
}

func TestApplyIncremental(t *testing.T) {
	db := openDB(t)
	fsys := files(map[string]string{
		"001_entries.sql": "CREATE TABLE entries (id TEXT PRIMARY KEY);",
		"README.md":       "ignored",
	})

	n, err := NewRunner(db, fsys, SQLite).Apply(nil)
	if err != nil || n != 1 {
		t.Fatalf("Apply() = %d, %v, want 1", n, err)
	}

	fsys["002_settings.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT);")}
	var logs []string
	n, err = NewRunner(db, fsys, SQLite).Apply(func(s string) { logs = append(logs, s) })
	if err != nil || n != 1 {
		t.Fatalf("second Apply() = %d, %v, want 1", n, err)
	}
	if len(logs) == 0 || !strings.Contains(logs[0], "migration 2: settings") {
		t.Errorf("logs = %v", logs)
	}

	if n, _ := NewRunner(db, fsys, SQLite).Apply(nil); n != 0 {
		t.Errorf("third Apply() = %d, want 0", n)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := openDB(t)
	r := NewRunner(db, files(map[string]string{
		"001_ok.sql":  "CREATE TABLE a (id INTEGER);",
		"002_bad.sql": "CREATE TABLE b (id INTEGER); NOT VALID SQL;",
	}), SQLite)

	n, err := r.Apply(nil)
	if err == nil {
		t.Fatal("expected error from invalid migration")
	}
	if n != 1 {
		t.Errorf("applied = %d, want 1", n)
	}
	if v, _ := r.CurrentVersion(); v != 1 {
		t.Errorf("version = %d, want 1", v)
	}
}

func TestValidateNewerDatabase(t *testing.T) {
	r := NewRunner(openDB(t), files(map[string]string{"001_a.sql": "SELECT 1;"}), SQLite)
	if err := r.SetVersion(3); err != nil {
		t.Fatal(err)
	}
	if err := r.Validate(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Validate() = %v, want ErrSchemaTooNew", err)
	}
	if _, err := r.Apply(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Apply() = %v, want ErrSchemaTooNew", err)
	}
}

func TestMigrationFilenames(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"missing underscore", map[string]string{"001.sql": "SELECT 1;"}},
		{"not a number", map[string]string{"abc_x.sql": "SELECT 1;"}},
		{"zero version", map[string]string{"000_x.sql": "SELECT 1;"}},
		{"duplicate", map[string]string{"001_a.sql": "SELECT 1;", "1_b.sql": "SELECT 1;"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(nil, files(tt.files), SQLite).Migrations(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRebind(t *testing.T) {
	if got := Rebind(Postgres, "INSERT INTO t (a, b) VALUES (?, ?)"); got != "INSERT INTO t (a, b) VALUES ($1, $2)" {
		t.Errorf("Rebind(Postgres) = %q", got)
	}
	if got := Rebind(SQLite, "?"); got != "?" {
		t.Errorf("Rebind(SQLite) = %q", got)
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	sub, err := migrations.SQLite()
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(openDB(t), sub, SQLite)
	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("embedded migrations failed: %v", err)
	}
	latest, _ := r.LatestVersion()
	if v, _ := r.CurrentVersion(); v != latest || v == 0 {
		t.Errorf("version = %d, want %d", v, latest)
	}
}
