package coach

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/ai-dietician/internal/ai"
	"github.com/Vovarama1992/ai-dietician/internal/session"
	"github.com/Vovarama1992/ai-dietician/internal/web"
)

const (
	emptyNameWarning = "Please tell me what name you'd like me to use."
	turnFailed       = "Sorry, I couldn't reply just now. Please send your message again."
	synthesisFailed  = "Sorry, I couldn't create your plan just now. Send another message to try again."
)

// Handler serves both the browser flow and the JSON API. Conversations are
// keyed by their own id; links maps a browser session id to the id of the
// conversation that browser is having.
type Handler struct {
	svc      Service
	pages    *web.Renderer
	sessions *session.Manager
	convs    *session.Store[*Conversation]
	links    *session.Store[string]
	log      zerolog.Logger
}

func NewHandler(
	svc Service,
	pages *web.Renderer,
	sessions *session.Manager,
	convs *session.Store[*Conversation],
	links *session.Store[string],
	log zerolog.Logger,
) *Handler {
	return &Handler{
		svc:      svc,
		pages:    pages,
		sessions: sessions,
		convs:    convs,
		links:    links,
		log:      log.With().Str("component", "coach_http").Logger(),
	}
}

type levelOption struct {
	Key     SupportLevel
	Label   string
	Checked bool
}

type setupData struct {
	Name    string
	Warning string
	Trigger string
	Levels  []levelOption
}

type chatData struct {
	Name     string
	Level    string
	Trigger  string
	Messages []ai.Message
	Plan     string
	Error    string
}

// Show renders the setup form, or the running conversation.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	if conv, ok := h.current(r); ok {
		h.renderChat(w, http.StatusOK, conv, "")
		return
	}
	h.renderSetup(w, http.StatusOK, "", Normal, "")
}

// Start moves the session from setup to conversing.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.Error(w, http.StatusBadRequest, "The form could not be read.")
		return
	}
	name := r.PostFormValue("name")

	level, err := ParseSupportLevel(r.PostFormValue("support_level"))
	if err != nil {
		h.renderSetup(w, http.StatusBadRequest, name, Normal, "Please choose a support level.")
		return
	}

	id, err := h.sessions.ID(w, r)
	if err != nil {
		h.log.Error().Err(err).Msg("session")
		h.pages.Error(w, http.StatusInternalServerError, "Your session could not be started.")
		return
	}

	conv, err := h.svc.Start(name, level)
	if errors.Is(err, ErrEmptyName) {
		h.renderSetup(w, http.StatusBadRequest, name, level, emptyNameWarning)
		return
	}
	if err != nil {
		h.renderSetup(w, http.StatusBadRequest, name, level, err.Error())
		return
	}

	if old, ok := h.links.Get(id); ok {
		h.convs.Delete(old)
	}
	h.convs.Put(conv.ID, conv)
	h.links.Put(id, conv.ID)
	http.Redirect(w, r, "/coach", http.StatusSeeOther)
}

// Message handles one conversational turn.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessions.Keep(w, r)
	if err != nil {
		http.Redirect(w, r, "/coach", http.StatusSeeOther)
		return
	}
	conv, ok := h.linked(id)
	if !ok {
		http.Redirect(w, r, "/coach", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.pages.Error(w, http.StatusBadRequest, "The form could not be read.")
		return
	}

	_, err = h.svc.Reply(r.Context(), conv, r.PostFormValue("text"))

	// A reset during the turn removed both entries; Touch leaves them gone.
	h.convs.Touch(conv.ID, conv)
	h.links.Touch(id, conv.ID)

	switch {
	case errors.Is(err, ErrEmptyMessage):
		// nothing to send, nothing changes
	case errors.Is(err, ErrSynthesis):
		h.renderChat(w, http.StatusBadGateway, conv, synthesisFailed)
		return
	case err != nil:
		h.renderChat(w, http.StatusBadGateway, conv, turnFailed)
		return
	}

	http.Redirect(w, r, "/coach", http.StatusSeeOther)
}

// Download sends the synthesized plan as a text file.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.current(r)
	if !ok {
		http.Error(w, "no conversation", http.StatusNotFound)
		return
	}
	plan, ok := conv.Plan()
	if !ok {
		http.Error(w, ErrNoPlan.Error(), http.StatusNotFound)
		return
	}
	web.Download(w, conv.FileName(), plan)
}

// Reset discards the conversation of this browser session.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if id, err := h.sessions.Lookup(r); err == nil {
		if convID, ok := h.links.Get(id); ok {
			h.convs.Delete(convID)
		}
		h.links.Delete(id)
	}
	http.Redirect(w, r, "/coach", http.StatusSeeOther)
}

func (h *Handler) current(r *http.Request) (*Conversation, bool) {
	id, err := h.sessions.Lookup(r)
	if err != nil {
		return nil, false
	}
	return h.linked(id)
}

func (h *Handler) linked(sessionID string) (*Conversation, bool) {
	convID, ok := h.links.Get(sessionID)
	if !ok {
		return nil, false
	}
	return h.convs.Get(convID)
}

func (h *Handler) renderSetup(w http.ResponseWriter, status int, name string, selected SupportLevel, warning string) {
	opts := make([]levelOption, 0, len(Levels))
	for _, l := range Levels {
		opts = append(opts, levelOption{Key: l, Label: l.Label(), Checked: l == selected})
	}

	data := setupData{Name: name, Warning: warning, Trigger: TriggerPhrase, Levels: opts}
	if err := h.pages.Render(w, status, "coach_setup", data); err != nil {
		h.log.Error().Err(err).Msg("render setup page")
	}
}

func (h *Handler) renderChat(w http.ResponseWriter, status int, conv *Conversation, errMsg string) {
	var visible []ai.Message
	for _, m := range conv.Messages() {
		if m.Role != ai.RoleSystem {
			visible = append(visible, m)
		}
	}
	plan, _ := conv.Plan()

	data := chatData{
		Name:     conv.Name,
		Level:    conv.Level.Label(),
		Trigger:  TriggerPhrase,
		Messages: visible,
		Plan:     plan,
		Error:    errMsg,
	}
	if err := h.pages.Render(w, status, "coach_chat", data); err != nil {
		h.log.Error().Err(err).Msg("render chat page")
	}
}
