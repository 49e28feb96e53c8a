package coach

import (
	"fmt"
	"strings"
)

// SupportLevel is the coaching tone chosen before the conversation starts.
type SupportLevel string

const (
	Normal SupportLevel = "normal"
	High   SupportLevel = "high"
	Ultra  SupportLevel = "ultra"
)

type levelDef struct {
	label   string
	persona func(name string) string
}

var levels = map[SupportLevel]levelDef{
	Normal: {
		label: "Normal Support 🧠",
		persona: func(name string) string {
			return fmt.Sprintf("You are a friendly and knowledgeable AI health coach talking to %s. "+
				"Base all advice primarily on the Canadian Food Guide. Be supportive and practical.", name)
		},
	},
	High: {
		label: "High Support 💛",
		persona: func(name string) string {
			return fmt.Sprintf("You are an extra gentle, warm, and encouraging AI health coach helping %s. "+
				"Always provide supportive, uplifting advice. Base your advice on the Canadian Food Guide.", name)
		},
	},
	Ultra: {
		label: "Ultra Support 🫶",
		persona: func(name string) string {
			return fmt.Sprintf("You are a very sensitive, therapeutic AI health coach guiding %s. "+
				"Speak with extreme kindness, patience, and emotional sensitivity. "+
				"Be as uplifting and compassionate as possible while still basing health advice on the Canadian Food Guide.", name)
		},
	},
}

// Levels in display order.
var Levels = []SupportLevel{Normal, High, Ultra}

// ParseSupportLevel accepts the key ("high") or the label ("High Support 💛").
func ParseSupportLevel(s string) (SupportLevel, error) {
	s = strings.TrimSpace(s)
	if l := SupportLevel(strings.ToLower(s)); l.Valid() {
		return l, nil
	}
	for l, def := range levels {
		if s == def.label {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSupportLevel, s)
}

func (l SupportLevel) Valid() bool {
	_, ok := levels[l]
	return ok
}

func (l SupportLevel) Label() string {
	return levels[l].label
}

// Persona renders the system instruction for name.
func (l SupportLevel) Persona(name string) (string, error) {
	def, ok := levels[l]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSupportLevel, string(l))
	}
	return def.persona(name), nil
}
