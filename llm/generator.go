package llm

import (
	"context"
	"strings"
)

// Request carries what a stage wants narrated.
type Request struct {
	System  string // persona and task framing
	User    string // findings and context to narrate
	Summary string // deterministic one-line rendering of the findings
}

// Generator turns a stage's findings into a short human-readable message.
// Stages receive one by injection so tests and offline runs can swap the
// backend without touching the calculators.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// TemplateGenerator is the deterministic backend. It renders the request's
// prepared summary line instead of calling out, which makes it the choice
// for tests, the demo endpoint, and runs without an API key.
type TemplateGenerator struct{}

func (TemplateGenerator) Generate(_ context.Context, req Request) (string, error) {
	if s := strings.TrimSpace(req.Summary); s != "" {
		return s, nil
	}
	return strings.TrimSpace(req.User), nil
}
