package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

func TestRespondUsesModelText(t *testing.T) {
	r := NewResponder(&fakeGenerator{reply: "  That sounds hard.  "}, time.Second, testLogger())
	if got := r.Respond(context.Background(), "rough day", model.Sad, 0.8); got != "That sounds hard." {
		t.Fatalf("got %q", got)
	}
}

func TestRespondFallsBackToCannedReply(t *testing.T) {
	r := NewResponder(&fakeGenerator{err: errModelDown}, time.Second, testLogger())
	for _, m := range model.AllMoods {
		if got := r.Respond(context.Background(), "hi", m, 0.5); got != m.CannedReply() {
			t.Errorf("%s: got %q", m, got)
		}
	}
}

func TestCriticalFallbackEncouragesHelp(t *testing.T) {
	got := resolveReply(model.Critical, libs.Completion{Err: errModelDown})
	if !strings.Contains(strings.ToLower(got), "reach out") {
		t.Fatalf("got %q", got)
	}
}

func TestResolveReplyUnknownMood(t *testing.T) {
	if got := resolveReply(model.Mood("Elated"), libs.Completion{Err: errModelDown}); got != model.DefaultReply {
		t.Fatalf("got %q", got)
	}
}

func TestBuildResponsePrompt(t *testing.T) {
	p := BuildResponsePrompt("help", model.Critical, 1)
	if !strings.Contains(p, "Detected mood: Critical") || !strings.Contains(p, "Confidence: 1.00") {
		t.Errorf("header missing:\n%s", p)
	}
	if !strings.Contains(p, "Special Instructions for Critical mood") {
		t.Errorf("critical instructions missing")
	}
	if strings.Contains(BuildResponsePrompt("ok", model.Happy, 0.9), "Special Instructions") {
		t.Errorf("critical instructions on non-critical prompt")
	}
}
