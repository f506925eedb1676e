package state

import "database/sql"

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS navigation_marker (
			session_id TEXT PRIMARY KEY,
			marker TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_marker_updated_at ON navigation_marker(updated_at);
	`)
	return err
}
