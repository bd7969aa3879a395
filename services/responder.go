package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

const aiResponsePrompt = `
You are MindScope AI, an empathetic emotional wellbeing companion.

Detected mood: %s
Confidence: %.2f

Guidelines:
- Use a calm, supportive, and warm tone
- Do NOT give medical or clinical advice
- Do NOT diagnose any condition
- Do NOT exaggerate positivity for negative moods
- Keep response under 80 words
- End with a gentle supportive or reflective sentence
- Be human, not robotic
%s
User message:
"%s"

Respond naturally:
`

const criticalInstructions = `
Special Instructions for Critical mood:
- Express care and concern
- Encourage reaching out to a trusted person
- Mention that professional help is available
- Do NOT provide any harmful information
`

type Responder struct {
	gen     libs.Generator
	timeout time.Duration
	log     *zap.SugaredLogger
}

func NewResponder(gen libs.Generator, timeout time.Duration, log *zap.SugaredLogger) *Responder {
	return &Responder{gen: gen, timeout: timeout, log: log}
}

// Respond returns the model's reply, or the canned reply for mood when the
// model cannot be used.
func (r *Responder) Respond(ctx context.Context, message string, mood model.Mood, confidence float64) string {
	completion := libs.Complete(ctx, r.gen, r.timeout, BuildResponsePrompt(message, mood, confidence))
	if !completion.OK() {
		r.log.Warnw("reply generation fell back to canned reply", "mood", mood, "error", completion.Err)
	}
	return resolveReply(mood, completion)
}

func BuildResponsePrompt(message string, mood model.Mood, confidence float64) string {
	extra := ""
	if mood == model.Critical {
		extra = criticalInstructions
	}
	return fmt.Sprintf(aiResponsePrompt, mood, confidence, extra, message)
}

func resolveReply(mood model.Mood, c libs.Completion) string {
	if !c.OK() {
		return mood.CannedReply()
	}
	return c.Text
}
