package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
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
		log:     log.With().Str("component", "coach").Logger(),
	}
}

// Start seeds a conversation with the persona for level and the greeting.
// No model call is made.
func (s *service) Start(name string, level SupportLevel) (*Conversation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	persona, err := level.Persona(name)
	if err != nil {
		return nil, err
	}

	conv := &Conversation{
		ID:        uuid.NewString(),
		Name:      name,
		Level:     level,
		CreatedAt: time.Now().UTC(),
		messages: []ai.Message{
			{Role: ai.RoleSystem, Text: persona},
			{Role: ai.RoleAssistant, Text: Greeting(name)},
		},
	}

	s.log.Info().Str("conversation", conv.ID).Str("level", string(level)).Msg("conversation started")
	return conv, nil
}

// Reply runs one turn over the whole history. A failed call withdraws the
// user message so the history stays persona, greeting, then complete pairs.
// Once the trigger phrase has been seen the plan is synthesized exactly once.
func (s *service) Reply(ctx context.Context, conv *Conversation, text string) (TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return TurnResult{}, ErrEmptyMessage
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()

	conv.messages = append(conv.messages, ai.Message{Role: ai.RoleUser, Text: text})

	reply, err := s.ai.Complete(ctx, append([]ai.Message(nil), conv.messages...))
	if err != nil {
		conv.messages = conv.messages[:len(conv.messages)-1]
		s.log.Error().Err(err).Str("conversation", conv.ID).Msg("turn aborted")
		return TurnResult{}, fmt.Errorf("coach: reply: %w", err)
	}

	conv.messages = append(conv.messages, ai.Message{Role: ai.RoleAssistant, Text: reply})
	res := TurnResult{Reply: reply}

	if conv.synthesized || !conv.triggerSeen() {
		return res, nil
	}

	plan, err := s.ai.Complete(ctx, SynthesisMessages(conv.Name, conv.userContext()))
	if err != nil {
		s.log.Error().Err(err).Str("conversation", conv.ID).Msg("plan synthesis failed")
		return res, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	conv.plan = plan
	conv.synthesized = true
	res.Plan = plan

	s.log.Info().Str("conversation", conv.ID).Int("turns", len(conv.userMessages())).Msg("plan synthesized")

	if err := s.archive.Save(ctx, &archive.Record{
		Kind:    archive.KindCoach,
		Owner:   conv.Name,
		Content: plan,
	}); err != nil {
		s.log.Warn().Err(err).Msg("archive plan")
	}

	return res, nil
}
