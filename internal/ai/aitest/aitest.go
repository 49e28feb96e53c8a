// Package aitest provides a scripted ai.Completer for tests.
package aitest

import (
	"context"
	"fmt"
	"sync"

	"github.com/Vovarama1992/ai-dietician/internal/ai"
)

// Recorder returns scripted replies in order and records every call.
// When the script runs out it answers "reply N". A non-nil entry in Errs at
// the call's index fails that call.
type Recorder struct {
	mu      sync.Mutex
	Replies []string
	Errs    map[int]error
	calls   [][]ai.Message
}

func (r *Recorder) Complete(_ context.Context, history []ai.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := len(r.calls)
	r.calls = append(r.calls, append([]ai.Message(nil), history...))

	if err := r.Errs[idx]; err != nil {
		return "", err
	}
	if idx < len(r.Replies) {
		return r.Replies[idx], nil
	}
	return fmt.Sprintf("reply %d", idx+1), nil
}

// Calls returns a copy of the recorded histories.
func (r *Recorder) Calls() [][]ai.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]ai.Message(nil), r.calls...)
}

func (r *Recorder) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Gate holds every call until Release is closed. Each call first signals on
// Started, which is buffered so the first signal never blocks.
type Gate struct {
	Started chan struct{}
	Release chan struct{}
	Reply   string
}

func NewGate(reply string) *Gate {
	return &Gate{
		Started: make(chan struct{}, 1),
		Release: make(chan struct{}),
		Reply:   reply,
	}
}

func (g *Gate) Complete(ctx context.Context, _ []ai.Message) (string, error) {
	select {
	case g.Started <- struct{}{}:
	default:
	}

	select {
	case <-g.Release:
		return g.Reply, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
