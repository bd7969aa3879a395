package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/config"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/database"
)

type closeRecorder struct {
	database.Store
	closed bool
}

func (c *closeRecorder) Close(ctx context.Context) error {
	c.closed = true
	return nil
}

func TestServeClosesStoreOnSetupFailure(t *testing.T) {
	rec := &closeRecorder{}
	orig := openStore
	openStore = func(ctx context.Context, driver, mongoURL, dbName, sqlitePath string) (database.Store, error) {
		return rec, nil
	}
	t.Cleanup(func() { openStore = orig })

	conf := config.Config{
		Port:          "0",
		StorageDriver: "sqlite",
		LLMProvider:   "unknown",
		LLMAPIKey:     "key",
		LLMTimeout:    time.Second,
		DBTimeout:     time.Second,
	}
	err := serve(context.Background(), conf, zap.NewNop().Sugar())
	if err == nil || !strings.Contains(err.Error(), "model client") {
		t.Fatalf("err=%v", err)
	}
	if !rec.closed {
		t.Fatal("store left open after setup failure")
	}
}
