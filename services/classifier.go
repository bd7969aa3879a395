package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

const (
	defaultConfidence = 0.7
	defaultQuote      = "Every moment is a fresh beginning."

	fallbackConfidence = 0.5
	fallbackQuote      = "Take a moment to breathe."

	crisisQuote = "You don't have to carry this alone. Reaching out is a sign of strength."
)

const moodDetectionPrompt = `
You are an emotion classification assistant for MindScope AI.

Classify the user's emotional state into exactly ONE of the following:
%s

Special Rule:
- If the message contains self-harm, suicide, or emergency intent, classify as "Critical"

Rules:
- No medical diagnosis
- No new labels
- Choose the closest emotion
- Output JSON only

User message:
"%s"

Output ONLY valid JSON:
{
  "mood": "<one label from the list>",
  "confidence": <number between 0.0 and 1.0>,
  "quote": "<one short motivational or supportive quote matching the mood>"
}
`

// crisisPhrases are matched case-insensitively before any model call.
var crisisPhrases = []string{
	"end it all",
	"end my life",
	"kill myself",
	"killing myself",
	"suicide",
	"suicidal",
	"want to die",
	"better off dead",
	"hurt myself",
	"harm myself",
	"self harm",
	"self-harm",
	"no reason to live",
	"take my own life",
}

// ClassificationResult is the mood reading of one message.
type ClassificationResult struct {
	Mood        model.Mood           `json:"mood"`
	Confidence  float64              `json:"confidence"`
	Quote       string               `json:"quote"`
	Theme       model.MoodTheme      `json:"theme"`
	Suggestions model.MoodSuggestion `json:"suggestions"`
	Emoji       string               `json:"emoji"`
}

// classificationPayload is the object the model is asked to return.
type classificationPayload struct {
	Mood       string  `json:"mood" jsonschema:"enum=Happy,enum=Motivated,enum=Neutral,enum=Sad,enum=Stressed,enum=Anxious,enum=Angry,enum=Fear,enum=Confused,enum=Burnout,enum=Critical"`
	Confidence float64 `json:"confidence" jsonschema:"minimum=0,maximum=1"`
	Quote      string  `json:"quote"`
}

var classificationSchema = libs.GenerateSchema[classificationPayload]()

type Classifier struct {
	gen     libs.Generator
	timeout time.Duration
	log     *zap.SugaredLogger
}

func NewClassifier(gen libs.Generator, timeout time.Duration, log *zap.SugaredLogger) *Classifier {
	return &Classifier{gen: gen, timeout: timeout, log: log}
}

// Classify never fails: every problem with the model call or its output
// resolves to a fixed Neutral reading.
func (c *Classifier) Classify(ctx context.Context, message string) ClassificationResult {
	if IsCrisis(message) {
		c.log.Warnw("crisis phrase detected, skipping model classification")
		return newResult(model.Critical, 1.0, crisisQuote)
	}

	completion := libs.CompleteJSON(ctx, c.gen, c.timeout, BuildClassificationPrompt(message), "MoodClassification", classificationSchema)
	result, err := resolveClassification(completion)
	if err != nil {
		c.log.Warnw("mood classification fell back to neutral", "error", err)
	}
	return result
}

// IsCrisis reports whether message contains a known self-harm phrase.
func IsCrisis(message string) bool {
	lower := strings.ToLower(message)
	for _, p := range crisisPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func BuildClassificationPrompt(message string) string {
	labels := make([]string, 0, len(model.SelectableMoods()))
	for _, m := range model.SelectableMoods() {
		labels = append(labels, m.String())
	}
	return fmt.Sprintf(moodDetectionPrompt, strings.Join(labels, ", "), message)
}

// FallbackClassification is returned whenever the model cannot be used.
func FallbackClassification() ClassificationResult {
	return newResult(model.Neutral, fallbackConfidence, fallbackQuote)
}

// resolveClassification picks the result for a completion. The error is only
// informational; the returned result is always usable.
func resolveClassification(c libs.Completion) (ClassificationResult, error) {
	if !c.OK() {
		return FallbackClassification(), c.Err
	}
	result, err := ParseClassification(c.Text)
	if err != nil {
		return FallbackClassification(), err
	}
	return result, nil
}

// ParseClassification decodes raw model text into a validated result.
func ParseClassification(raw string) (ClassificationResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &fields); err != nil {
		return ClassificationResult{}, fmt.Errorf("decode classification: %w", err)
	}
	if fields == nil {
		return ClassificationResult{}, errors.New("decode classification: not a JSON object")
	}

	var moodLabel string
	if v, ok := fields["mood"]; ok {
		_ = json.Unmarshal(v, &moodLabel)
	}
	mood, _ := model.ParseMood(strings.TrimSpace(moodLabel))

	confidence := defaultConfidence
	if v, ok := fields["confidence"]; ok {
		if f, ok := parseConfidence(v); ok {
			confidence = f
		}
	}

	quote := defaultQuote
	if v, ok := fields["quote"]; ok {
		var q string
		if json.Unmarshal(v, &q) == nil && strings.TrimSpace(q) != "" {
			quote = strings.TrimSpace(q)
		}
	}

	return newResult(mood, confidence, quote), nil
}

// parseConfidence accepts JSON numbers and numeric strings, clamped to [0,1].
// A JSON null counts as missing.
func parseConfidence(raw json.RawMessage) (float64, bool) {
	if string(bytes.TrimSpace(raw)) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return math.Max(0, math.Min(1, f)), true
}

// stripCodeFence removes a ```json ... ``` wrapper if the model added one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if end := strings.Index(s, "```"); end >= 0 {
		s = s[:end]
	}
	s = strings.TrimSpace(s)
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	return strings.TrimSpace(s)
}

func newResult(mood model.Mood, confidence float64, quote string) ClassificationResult {
	theme := mood.Theme()
	return ClassificationResult{
		Mood:        mood,
		Confidence:  confidence,
		Quote:       quote,
		Theme:       theme,
		Suggestions: mood.Suggestions(),
		Emoji:       theme.Emoji,
	}
}
