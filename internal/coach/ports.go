package coach

import (
	"context"
	"errors"
)

var (
	ErrEmptyName           = errors.New("coach: empty name")
	ErrEmptyMessage        = errors.New("coach: empty message")
	ErrUnknownSupportLevel = errors.New("coach: unknown support level")
	ErrSessionNotFound     = errors.New("coach: session not found")
	ErrNoPlan              = errors.New("coach: plan not generated yet")
	// ErrSynthesis marks a failed plan synthesis after a committed turn.
	ErrSynthesis = errors.New("coach: plan synthesis failed")
)

// TurnResult is what one user message produced.
type TurnResult struct {
	Reply string
	// Plan is set on the turn that synthesized it.
	Plan string
}

// Service runs the conversational flow.
type Service interface {
	Start(name string, level SupportLevel) (*Conversation, error)
	Reply(ctx context.Context, conv *Conversation, text string) (TurnResult, error)
}
