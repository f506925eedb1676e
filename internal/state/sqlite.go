package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/handiism/album-catalog/internal/router"
)

const (
	appName      = "album-catalog"
	dbFileName   = "state.db"
	saveDebounce = 500 * time.Millisecond
)

// Verify both stores satisfy the router's contract at compile time.
var (
	_ router.MarkerStore = (*SQLiteStore)(nil)
	_ router.MarkerStore = (*MemoryStore)(nil)
)

// SQLiteStore persists the marker of one session. Saves are debounced;
// Load always sees the latest Save, flushed or not.
type SQLiteStore struct {
	db        *sql.DB
	sessionID string
	debounce  time.Duration

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *string

	// flushMu orders database writes; it is taken before saveMu.
	flushMu  sync.Mutex
	timerErr error
}

// DefaultPath returns the database location under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Open opens (creating if needed) the database at path and binds the store
// to sessionID. An empty path selects DefaultPath; an empty sessionID
// starts a new session.
func Open(path, sessionID string) (*SQLiteStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve state path: %w", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	store, err := OpenDB(db, sessionID)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// OpenDB binds a store to an already opened database and ensures the schema.
func OpenDB(db *sql.DB, sessionID string) (*SQLiteStore, error) {
	if err := initSchema(db); err != nil {
		return nil, fmt.Errorf("init state schema: %w", err)
	}
	if sessionID == "" {
		sessionID = NewSessionID()
	} else if _, err := uuid.Parse(sessionID); err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", sessionID, err)
	}
	return &SQLiteStore{db: db, sessionID: sessionID, debounce: saveDebounce}, nil
}

// SessionID returns the session the store is bound to.
func (s *SQLiteStore) SessionID() string {
	return s.sessionID
}

// SetDebounce changes the save delay. Zero writes synchronously.
func (s *SQLiteStore) SetDebounce(d time.Duration) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.debounce = d
}

// Load returns the session's marker, or "" if none was ever saved.
func (s *SQLiteStore) Load() (string, error) {
	s.saveMu.Lock()
	if s.pending != nil {
		m := *s.pending
		s.saveMu.Unlock()
		return m, nil
	}
	s.saveMu.Unlock()

	var marker string
	err := s.db.QueryRow(`SELECT marker FROM navigation_marker WHERE session_id = ?`, s.sessionID).Scan(&marker)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return marker, nil
}

// Save records the marker. The write happens after the debounce delay;
// only the latest marker of a burst reaches the database.
func (s *SQLiteStore) Save(marker string) error {
	s.saveMu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	s.pending = &marker
	if s.debounce <= 0 {
		s.saveMu.Unlock()
		return s.Flush()
	}
	s.saveTimer = time.AfterFunc(s.debounce, s.flushFromTimer)
	s.saveMu.Unlock()
	return nil
}

func (s *SQLiteStore) flushFromTimer() {
	if err := s.Flush(); err != nil {
		s.flushMu.Lock()
		s.timerErr = errors.Join(s.timerErr, err)
		s.flushMu.Unlock()
	}
}

// Flush writes a pending marker now. It waits for a write already in
// progress, so a marker taken by a concurrent flush is on disk when Flush
// returns.
func (s *SQLiteStore) Flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.saveMu.Lock()
	pending := s.pending
	s.pending = nil
	s.saveMu.Unlock()

	if pending == nil {
		return nil
	}
	return saveMarker(s.db, s.sessionID, *pending)
}

// LatestSession returns the most recently updated session id, or "" when
// the database holds none.
func (s *SQLiteStore) LatestSession() (string, error) {
	var id string
	err := s.db.QueryRow(`
		SELECT session_id FROM navigation_marker ORDER BY updated_at DESC LIMIT 1
	`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

// Prune deletes markers of sessions not updated within maxAge.
func (s *SQLiteStore) Prune(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).UnixNano()
	res, err := s.db.Exec(`DELETE FROM navigation_marker WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close flushes any pending marker and closes the database. A write error
// from a debounced flush that ran earlier is reported here.
func (s *SQLiteStore) Close() error {
	s.saveMu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	s.saveMu.Unlock()

	flushErr := s.Flush()

	s.flushMu.Lock()
	timerErr := s.timerErr
	s.timerErr = nil
	s.flushMu.Unlock()

	closeErr := s.db.Close()
	return errors.Join(timerErr, flushErr, closeErr)
}

func saveMarker(db *sql.DB, sessionID, marker string) error {
	_, err := db.Exec(`
		INSERT INTO navigation_marker (session_id, marker, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			marker = excluded.marker,
			updated_at = excluded.updated_at
	`, sessionID, marker, time.Now().UnixNano())
	return err
}
