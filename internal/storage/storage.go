package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"ticklist/internal/task"
)

const (
	KeyTasks    = "tasks"
	KeyDarkMode = "darkMode"
)

// ErrLocked is returned by Open when another process holds the database.
var ErrLocked = errors.New("database is in use by another ticklist process")

// Store is a small key-value table in SQLite. Values are strings; the task
// collection is stored as a JSON array under KeyTasks.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}

	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", dbPath, err)
	}
	if !locked {
		return nil, ErrLocked
	}

	// modernc.org/sqlite uses driver name "sqlite" and prefers a file: DSN.
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, lock: lock}
	if err := s.ensureSchema(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	var err error
	if s.db != nil {
		err = s.db.Close()
		s.db = nil
	}
	if s.lock != nil {
		if uerr := s.lock.Unlock(); uerr != nil && err == nil {
			err = uerr
		}
		s.lock = nil
	}
	return err
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Get returns the value for key. found is false when the key was never set.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`, key, value, now)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// LoadTasks decodes the stored collection. found is false on first launch.
func (s *Store) LoadTasks() ([]task.Task, bool, error) {
	raw, found, err := s.Get(KeyTasks)
	if err != nil || !found {
		return nil, found, err
	}
	tasks := []task.Task{}
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, true, fmt.Errorf("decode %s: %w", KeyTasks, err)
	}
	return tasks, true, nil
}

func (s *Store) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyTasks, err)
	}
	return s.Set(KeyTasks, string(data))
}

// LoadDarkMode returns the theme flag. Anything other than "true",
// including a missing key, means light mode.
func (s *Store) LoadDarkMode() (bool, error) {
	raw, found, err := s.Get(KeyDarkMode)
	if err != nil || !found {
		return false, err
	}
	return raw == "true", nil
}

func (s *Store) SaveDarkMode(dark bool) error {
	return s.Set(KeyDarkMode, strconv.FormatBool(dark))
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
