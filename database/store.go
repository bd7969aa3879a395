// Package database holds the persistence backends for users and chat logs.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

const (
	userCollection = "users"
	chatCollection = "chat_logs"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidMood rejects chat records whose mood is outside the taxonomy.
	ErrInvalidMood = errors.New("invalid mood")
)

// Store is what the services need from persistence. Implementations must be
// safe for concurrent use.
type Store interface {
	CreateUser(ctx context.Context, user *model.User) (string, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id string) (*model.User, error)

	InsertChat(ctx context.Context, chat *model.ChatRecord) (string, error)
	// RecentChats returns at most limit records, newest first.
	RecentChats(ctx context.Context, userID string, limit int) ([]model.ChatRecord, error)
	// ChatsBetween returns records with from <= timestamp <= to, oldest first.
	ChatsBetween(ctx context.Context, userID string, from, to time.Time) ([]model.ChatRecord, error)

	Close(ctx context.Context) error
}

// Open picks a backend by driver name.
func Open(ctx context.Context, driver, mongoURL, dbName, sqlitePath string) (Store, error) {
	switch driver {
	case "mongo":
		s, err := NewMongoStore(ctx, mongoURL, dbName)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := NewSQLiteStore(sqlitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.New("unknown storage driver: " + driver)
	}
}
