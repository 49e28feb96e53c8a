package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/ai-dietician/internal/ai/aitest"
	"github.com/Vovarama1992/ai-dietician/internal/archive"
)

type recordingArchive struct {
	saved []archive.Record
	err   error
}

func (a *recordingArchive) EnsureSchema(context.Context) error { return nil }

func (a *recordingArchive) Save(_ context.Context, rec *archive.Record) error {
	a.saved = append(a.saved, *rec)
	return a.err
}

func TestGeneratePlan_ThreeSequentialCalls(t *testing.T) {
	fake := &aitest.Recorder{Replies: []string{"Tip 1: walk", "Salmon bowl", "Day 1: rest"}}
	arch := &recordingArchive{}
	svc := NewService(fake, arch, zerolog.Nop())

	info := "I am a 30 year old man wanting to lose 10 lbs"
	plan, err := svc.GeneratePlan(context.Background(), info)
	require.NoError(t, err)

	assert.Equal(t, Plan{Tips: "Tip 1: walk", Meal: "Salmon bowl", Weekly: "Day 1: rest"}, plan)

	calls := fake.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, TipsMessages(info), calls[0])
	assert.Equal(t, MealMessages(info), calls[1])
	assert.Equal(t, WeeklyPlanMessages(info), calls[2])

	require.Len(t, arch.saved, 1)
	assert.Equal(t, archive.KindAdvisor, arch.saved[0].Kind)
	assert.Equal(t, plan.Text(), arch.saved[0].Content)
}

func TestGeneratePlan_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		fake := &aitest.Recorder{}
		svc := NewService(fake, nil, zerolog.Nop())

		_, err := svc.GeneratePlan(context.Background(), in)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Zero(t, fake.CallCount())
	}
}

func TestGeneratePlan_FailureAborts(t *testing.T) {
	boom := errors.New("401 unauthorized")
	fake := &aitest.Recorder{Errs: map[int]error{1: boom}}
	arch := &recordingArchive{}
	svc := NewService(fake, arch, zerolog.Nop())

	plan, err := svc.GeneratePlan(context.Background(), "lose weight")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "meal")
	assert.Equal(t, Plan{}, plan)
	assert.Equal(t, 2, fake.CallCount())
	assert.Empty(t, arch.saved)
}

func TestGeneratePlan_ArchiveErrorIsNotFatal(t *testing.T) {
	fake := &aitest.Recorder{}
	svc := NewService(fake, &recordingArchive{err: errors.New("db down")}, zerolog.Nop())

	plan, err := svc.GeneratePlan(context.Background(), "lose weight")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(plan.Tips, "reply"))
}
