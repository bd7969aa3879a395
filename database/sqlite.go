package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

// SQLiteStore implements Store on a single SQLite file. It is meant for local
// runs and tests; timestamps are stored as unix milliseconds.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// newID returns strictly increasing ids, so ordering by id follows insert
// order within one millisecond. Guarded because the entropy is not goroutine
// safe.
func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		email           TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		created_at      INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS chat_logs (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		message    TEXT NOT NULL,
		mood       TEXT NOT NULL,
		confidence REAL NOT NULL,
		ai_reply   TEXT NOT NULL,
		timestamp  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_logs_user_ts ON chat_logs(user_id, timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func (s *SQLiteStore) CreateUser(ctx context.Context, user *model.User) (string, error) {
	id := s.newID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, hashed_password, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, user.Name, user.Email, user.HashedPassword, toMillis(user.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", fmt.Errorf("%w: email %s", ErrDuplicate, user.Email)
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return id, nil
}

func (s *SQLiteStore) findUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var (
		u       model.User
		created int64
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, hashed_password, created_at FROM users WHERE `+where+` = ?`, arg)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.HashedPassword, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.CreatedAt = fromMillis(created)
	return &u, nil
}

func (s *SQLiteStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findUser(ctx, "email", email)
}

func (s *SQLiteStore) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.findUser(ctx, "id", id)
}

func (s *SQLiteStore) InsertChat(ctx context.Context, chat *model.ChatRecord) (string, error) {
	if !chat.Mood.IsValid() {
		return "", fmt.Errorf("insert chat: %w: %q", ErrInvalidMood, chat.Mood)
	}
	id := s.newID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_logs (id, user_id, message, mood, confidence, ai_reply, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, chat.UserID, chat.Message, chat.Mood.String(), chat.Confidence, chat.AIReply, toMillis(chat.Timestamp),
	)
	if err != nil {
		return "", fmt.Errorf("insert chat: %w", err)
	}
	chat.ID = id
	return id, nil
}

func (s *SQLiteStore) queryChats(ctx context.Context, query string, args ...any) ([]model.ChatRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find chats: %w", err)
	}
	defer rows.Close()

	out := []model.ChatRecord{}
	for rows.Next() {
		var (
			c    model.ChatRecord
			mood string
			ts   int64
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.Message, &mood, &c.Confidence, &c.AIReply, &ts); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		c.Mood, _ = model.ParseMood(mood)
		c.Timestamp = fromMillis(ts)
		out = append(out, c)
	}
	return out, rows.Err()
}

const chatColumns = `id, user_id, message, mood, confidence, ai_reply, timestamp`

func (s *SQLiteStore) RecentChats(ctx context.Context, userID string, limit int) ([]model.ChatRecord, error) {
	// id breaks ties between records with the same timestamp
	return s.queryChats(ctx,
		`SELECT `+chatColumns+` FROM chat_logs WHERE user_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		userID, limit)
}

func (s *SQLiteStore) ChatsBetween(ctx context.Context, userID string, from, to time.Time) ([]model.ChatRecord, error) {
	return s.queryChats(ctx,
		`SELECT `+chatColumns+` FROM chat_logs WHERE user_id = ? AND timestamp >= ? AND timestamp <= ? ORDER BY timestamp ASC, id ASC`,
		userID, toMillis(from), toMillis(to))
}

func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}
