package model

import (
	"time"
)

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// ChatRecord is one user message together with its classified mood and the
// generated reply. Records are written once and never updated.
type ChatRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Message    string    `json:"message"`
	Mood       Mood      `json:"mood"`
	Confidence float64   `json:"confidence"`
	AIReply    string    `json:"ai_reply"`
	Timestamp  time.Time `json:"timestamp"`
}
