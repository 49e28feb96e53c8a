package ai

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of a dialogue.
type Message struct {
	Role Role
	Text string
}

// Completer is the only remote collaborator: an ordered dialogue in,
// one generated reply out. Calls may take several seconds.
type Completer interface {
	Complete(ctx context.Context, history []Message) (string, error)
}

// Temperature used for every completion.
const Temperature float32 = 0.7
