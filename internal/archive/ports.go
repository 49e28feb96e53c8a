package archive

import (
	"context"
	"time"
)

type Kind string

const (
	KindAdvisor Kind = "advisor"
	KindCoach   Kind = "coach"
)

// Record is one finished plan artifact. Conversations are never archived.
type Record struct {
	ID        string
	Kind      Kind
	Owner     string
	Content   string
	CreatedAt time.Time
}

// Repo persists plan records.
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, rec *Record) error
}
