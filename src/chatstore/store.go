// Package chatstore persists chat sessions. Each session has two artifacts:
// the chat record itself and the owner's reverse-chronological index entry.
// Every write updates both in one transaction, or neither.
package chatstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned for sessions that do not exist or are not
	// visible to the requesting user. Cross-user loads are deliberately
	// indistinguishable from truly missing sessions.
	ErrNotFound = errors.New("chat not found")

	// ErrUnauthorized is returned when the caller is not the owner of the
	// session it is trying to write. Distinct from ErrNotFound and from
	// transient storage failures so callers can branch on it.
	ErrUnauthorized = errors.New("not the chat owner")
)

const titleLimit = 100

// Store is a sqlite-backed chat session store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at the given path and applies
// pending migrations. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists the session. The session's owner must equal the
// authenticated principal or the call is refused with ErrUnauthorized before
// any write. The chat record and the owner index entry are written in one
// transaction; the index score is the save time in unix milliseconds.
func (s *Store) Save(ctx context.Context, principal string, chat *Chat) error {
	if principal == "" || chat.OwnerID != principal {
		return ErrUnauthorized
	}
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = time.Now()
	}
	if chat.Title == "" && len(chat.Messages) > 0 {
		chat.Title = truncateTitle(chat.Messages[0].Content)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// An existing record owned by someone else must not be overwritten. The
	// check runs inside the write transaction so the owner cannot change
	// between the read and the upsert.
	var existingOwner string
	err = sqlscan.Get(ctx, tx, &existingOwner, `SELECT owner_id FROM chats WHERE id = ?`, chat.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if err == nil && existingOwner != principal {
		return ErrUnauthorized
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chats (id, owner_id, title, share_path, created_at, messages)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, messages = excluded.messages`,
		chat.ID, chat.OwnerID, chat.Title, chat.SharePath, chat.CreatedAt, chat.Messages)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chat_index (owner_id, chat_id, score)
		VALUES (?, ?, ?)
		ON CONFLICT(owner_id, chat_id) DO UPDATE SET score = excluded.score`,
		chat.OwnerID, chat.ID, time.Now().UnixMilli())
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Load returns the session if it exists and is owned by userID. A session
// owned by someone else reports ErrNotFound, never the data.
func (s *Store) Load(ctx context.Context, id, userID string) (*Chat, error) {
	chat, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if chat.OwnerID != userID {
		return nil, ErrNotFound
	}
	return chat, nil
}

// Remove deletes the record and its index entry. The owner check happens
// before either deletion proceeds.
func (s *Store) Remove(ctx context.Context, principal, id string) error {
	chat, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if chat.OwnerID != principal {
		return ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_index WHERE chat_id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// ListForOwner returns all session summaries for an owner, most recent
// first, ordered by the index score of the last successful save.
func (s *Store) ListForOwner(ctx context.Context, ownerID string) ([]Summary, error) {
	var summaries []Summary
	err := sqlscan.Select(ctx, s.db, &summaries, `
		SELECT c.id, c.owner_id, c.title, c.created_at, i.score AS saved_at
		FROM chat_index i
		JOIN chats c ON c.id = i.chat_id
		WHERE i.owner_id = ?
		ORDER BY i.score DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Clear removes every session belonging to the principal, records and index
// entries together.
func (s *Store) Clear(ctx context.Context, principal string) error {
	if principal == "" {
		return ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE owner_id = ?`, principal); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_index WHERE owner_id = ?`, principal); err != nil {
		return err
	}
	return tx.Commit()
}

// Share marks the session shareable and returns it with its share path set.
func (s *Store) Share(ctx context.Context, principal, id string) (*Chat, error) {
	chat, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if chat.OwnerID != principal {
		return nil, ErrUnauthorized
	}

	chat.SharePath = "/share/" + chat.ID
	_, err = s.db.ExecContext(ctx, `UPDATE chats SET share_path = ? WHERE id = ?`, chat.SharePath, id)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// LoadShared returns a session by id if it has been shared. No owner check;
// unshared sessions report ErrNotFound.
func (s *Store) LoadShared(ctx context.Context, id string) (*Chat, error) {
	chat, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if chat.SharePath == "" {
		return nil, ErrNotFound
	}
	return chat, nil
}

func (s *Store) get(ctx context.Context, id string) (*Chat, error) {
	var chat Chat
	err := sqlscan.Get(ctx, s.db, &chat,
		`SELECT id, owner_id, title, share_path, created_at, messages FROM chats WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func truncateTitle(content string) string {
	runes := []rune(content)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit])
	}
	return content
}
