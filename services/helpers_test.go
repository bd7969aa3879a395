package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/database"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

var errModelDown = errors.New("model unavailable")

// fakeGenerator answers classification prompts with classify and every other
// prompt with reply.
type fakeGenerator struct {
	classify string
	reply    string
	err      error

	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if strings.Contains(prompt, "emotion classification assistant") {
		return f.classify, nil
	}
	return f.reply, nil
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func newTestStore(t *testing.T) *database.SQLiteStore {
	t.Helper()
	s, err := database.NewSQLiteStore(filepath.Join(t.TempDir(), "services.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

// failingStore rejects every write.
type failingStore struct {
	database.Store
}

func (failingStore) InsertChat(ctx context.Context, chat *model.ChatRecord) (string, error) {
	return "", errors.New("disk full")
}
