package coach

import (
	"strings"
	"sync"
	"time"

	"github.com/Vovarama1992/ai-dietician/internal/ai"
	"github.com/Vovarama1992/ai-dietician/internal/web"
)

// Conversation is owned by one session. The first message is always the
// persona, the second the greeting; later messages are only ever appended
// as user/assistant pairs.
type Conversation struct {
	ID        string
	Name      string
	Level     SupportLevel
	CreatedAt time.Time

	mu          sync.Mutex
	messages    []ai.Message
	plan        string
	synthesized bool
}

// Messages returns a copy of the history.
func (c *Conversation) Messages() []ai.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ai.Message(nil), c.messages...)
}

// Plan returns the synthesized plan, if any.
func (c *Conversation) Plan() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plan, c.synthesized
}

func (c *Conversation) UserMessages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userMessages()
}

func (c *Conversation) TriggerSeen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.triggerSeen()
}

// FileName of the downloadable plan.
func (c *Conversation) FileName() string {
	return web.SafeFileName(c.Name) + "_health_plan.txt"
}

func (c *Conversation) userMessages() []string {
	var out []string
	for _, m := range c.messages {
		if m.Role == ai.RoleUser {
			out = append(out, m.Text)
		}
	}
	return out
}

func (c *Conversation) triggerSeen() bool {
	for _, text := range c.userMessages() {
		if strings.Contains(strings.ToLower(text), TriggerPhrase) {
			return true
		}
	}
	return false
}

func (c *Conversation) userContext() string {
	return strings.Join(c.userMessages(), "\n")
}
