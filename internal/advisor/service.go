package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/ai-dietician/internal/ai"
	"github.com/Vovarama1992/ai-dietician/internal/archive"
)

type service struct {
	ai      ai.Completer
	archive archive.Repo
	log     zerolog.Logger
}

func NewService(aiClient ai.Completer, archiveRepo archive.Repo, log zerolog.Logger) Service {
	if archiveRepo == nil {
		archiveRepo = archive.Nop()
	}
	return &service{
		ai:      aiClient,
		archive: archiveRepo,
		log:     log.With().Str("component", "advisor").Logger(),
	}
}

type step struct {
	name  string
	build func(string) []ai.Message
	out   *string
}

// GeneratePlan runs tips, meal and weekly plan one after another. The first
// failure aborts the run and no partial plan is returned.
func (s *service) GeneratePlan(ctx context.Context, info string) (Plan, error) {
	if strings.TrimSpace(info) == "" {
		return Plan{}, ErrEmptyInput
	}

	var plan Plan
	steps := []step{
		{name: "tips", build: TipsMessages, out: &plan.Tips},
		{name: "meal", build: MealMessages, out: &plan.Meal},
		{name: "weekly", build: WeeklyPlanMessages, out: &plan.Weekly},
	}

	start := time.Now()
	for _, st := range steps {
		reply, err := s.ai.Complete(ctx, st.build(info))
		if err != nil {
			s.log.Error().Err(err).Str("step", st.name).Msg("plan generation aborted")
			return Plan{}, fmt.Errorf("advisor: %s: %w", st.name, err)
		}
		*st.out = reply
	}

	s.log.Info().Dur("elapsed", time.Since(start)).Msg("plan generated")

	if err := s.archive.Save(ctx, &archive.Record{
		Kind:    archive.KindAdvisor,
		Content: plan.Text(),
	}); err != nil {
		s.log.Warn().Err(err).Msg("archive plan")
	}

	return plan, nil
}
