package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/database"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

const (
	MaxMessageLength    = 2000
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type MoodDetail struct {
	Detected   model.Mood `json:"detected"`
	Confidence float64    `json:"confidence"`
	Emoji      string     `json:"emoji"`
	Quote      string     `json:"quote"`
}

type UIHints struct {
	Theme              string `json:"theme"`
	BackgroundGradient string `json:"background_gradient"`
}

type ChatResponse struct {
	UserMessage string               `json:"user_message"`
	AIResponse  string               `json:"ai_response"`
	Mood        MoodDetail           `json:"mood"`
	UI          UIHints              `json:"ui"`
	Suggestions model.MoodSuggestion `json:"suggestions"`
	Timestamp   time.Time            `json:"timestamp"`
}

type HistoryEntry struct {
	ID        string     `json:"id"`
	Message   string     `json:"message"`
	Mood      model.Mood `json:"mood"`
	AIReply   string     `json:"ai_reply"`
	Timestamp time.Time  `json:"timestamp"`
}

type ChatService struct {
	store      database.Store
	classifier *Classifier
	responder  *Responder
	dbTimeout  time.Duration
	now        func() time.Time
}

func NewChatService(store database.Store, classifier *Classifier, responder *Responder, dbTimeout time.Duration) *ChatService {
	return &ChatService{
		store:      store,
		classifier: classifier,
		responder:  responder,
		dbTimeout:  dbTimeout,
		now:        time.Now,
	}
}

// ValidateMessage checks the 1-2000 character bound and returns the message
// reduced to plain text.
func ValidateMessage(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	n := utf8.RuneCountInString(trimmed)
	if n == 0 {
		return "", fmt.Errorf("%w: message must not be empty", ErrValidation)
	}
	if n > MaxMessageLength {
		return "", fmt.Errorf("%w: message must be at most %d characters", ErrValidation, MaxMessageLength)
	}
	plain := libs.PlainText(trimmed)
	if plain == "" {
		return "", fmt.Errorf("%w: message has no text content", ErrValidation)
	}
	return plain, nil
}

// SendMessage classifies text, generates a reply and stores both. Only
// validation and storage errors are returned.
func (s *ChatService) SendMessage(ctx context.Context, userID, text string) (*ChatResponse, error) {
	message, err := ValidateMessage(text)
	if err != nil {
		return nil, err
	}

	mood := s.classifier.Classify(ctx, message)
	reply := s.responder.Respond(ctx, message, mood.Mood, mood.Confidence)

	record := &model.ChatRecord{
		UserID:     userID,
		Message:    message,
		Mood:       mood.Mood,
		Confidence: mood.Confidence,
		AIReply:    reply,
		// stores keep millisecond precision
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	if _, err := s.store.InsertChat(dbCtx, record); err != nil {
		return nil, fmt.Errorf("save chat log: %w", err)
	}

	return &ChatResponse{
		UserMessage: message,
		AIResponse:  reply,
		Mood: MoodDetail{
			Detected:   mood.Mood,
			Confidence: mood.Confidence,
			Emoji:      mood.Emoji,
			Quote:      mood.Quote,
		},
		UI: UIHints{
			Theme:              mood.Theme.Theme,
			BackgroundGradient: mood.Theme.Gradient,
		},
		Suggestions: mood.Suggestions,
		Timestamp:   record.Timestamp,
	}, nil
}

// ClampHistoryLimit maps non-positive limits to the default and caps large ones.
func ClampHistoryLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

// History returns the user's latest chats in oldest-first order.
func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	records, err := s.store.RecentChats(dbCtx, userID, ClampHistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	out := make([]HistoryEntry, len(records))
	for i, r := range records {
		out[len(records)-1-i] = HistoryEntry{
			ID:        r.ID,
			Message:   r.Message,
			Mood:      r.Mood,
			AIReply:   r.AIReply,
			Timestamp: r.Timestamp,
		}
	}
	return out, nil
}
