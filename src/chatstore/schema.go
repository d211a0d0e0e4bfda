package chatstore

// Migrations are applied in order inside a transaction each, tracked in
// schema_migrations.
var migrations = []struct {
	version int
	sql     string
}{
	{1, `
	CREATE TABLE IF NOT EXISTS chats (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		share_path TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		messages TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS chat_index (
		owner_id TEXT NOT NULL,
		chat_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		PRIMARY KEY (owner_id, chat_id)
	);

	CREATE INDEX IF NOT EXISTS idx_chat_index_owner_score ON chat_index (owner_id, score DESC);
	`},
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return err
	}

	applied := make(map[int]bool)
	rows, err := s.db.Query(`SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return err
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, migration := range migrations {
		if applied[migration.version] {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migration.sql); err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, migration.version); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
