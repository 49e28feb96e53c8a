package coach

import (
	"fmt"

	"github.com/Vovarama1992/ai-dietician/internal/ai"
)

// TriggerPhrase ends data collection once any user message contains it.
const TriggerPhrase = "generate my plan"

func Greeting(name string) string {
	return fmt.Sprintf("Hi %s! 👋 I'm excited to work with you today. What is your main health or fitness goal right now?", name)
}

func synthesisPersona(name string) string {
	return fmt.Sprintf("You are a professional AI health coach specializing in recommendations based on the Canadian Food Guide, speaking supportively to %s.", name)
}

const synthesisPrompt = `Based on this information about %s:

%s

Generate a personalized health improvement plan. Include:
- 3 beginner-friendly first steps aligned with the Canadian Food Guide
- 1 healthy, balanced meal suggestion following the Canadian Food Guide principles
- A 7-day health plan (Day 1 to Day 7)
Format it nicely with headings for each section.`

// SynthesisMessages builds the fresh persona+prompt pair used for the final
// plan; userContext is every user message joined by newlines.
func SynthesisMessages(name, userContext string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Text: synthesisPersona(name)},
		{Role: ai.RoleUser, Text: fmt.Sprintf(synthesisPrompt, name, userContext)},
	}
}
