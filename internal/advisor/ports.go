package advisor

import (
	"context"
	"errors"
)

var ErrEmptyInput = errors.New("advisor: empty health info")

// Plan holds the three independent results of one single-shot run.
type Plan struct {
	Tips   string
	Meal   string
	Weekly string
}

// Service runs the single-shot flow.
type Service interface {
	GeneratePlan(ctx context.Context, info string) (Plan, error)
}
