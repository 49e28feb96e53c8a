package coach

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/ai-dietician/internal/ai"
	"github.com/Vovarama1992/ai-dietician/internal/web"
)

type messageView struct {
	Role    ai.Role `json:"role"`
	Content string  `json:"content"`
}

type conversationView struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	SupportLevel SupportLevel  `json:"support_level"`
	Messages     []messageView `json:"messages"`
	Plan         string        `json:"plan,omitempty"`
	Synthesized  bool          `json:"synthesized"`
}

type turnView struct {
	conversationView
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

func viewOf(conv *Conversation) conversationView {
	msgs := conv.Messages()
	out := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageView{Role: m.Role, Content: m.Text})
	}
	plan, done := conv.Plan()
	return conversationView{
		ID:           conv.ID,
		Name:         conv.Name,
		SupportLevel: conv.Level,
		Messages:     out,
		Plan:         plan,
		Synthesized:  done,
	}
}

// CreateSession is the JSON counterpart of Start.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name         string `json:"name"`
		SupportLevel string `json:"support_level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	level, err := ParseSupportLevel(payload.SupportLevel)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.svc.Start(payload.Name, level)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.convs.Put(conv.ID, conv)
	writeJSON(w, http.StatusCreated, viewOf(conv))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.byID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(conv))
}

// PostMessage is the JSON counterpart of Message.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.byID(w, r)
	if !ok {
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	res, err := h.svc.Reply(r.Context(), conv, payload.Text)
	switch {
	case errors.Is(err, ErrEmptyMessage):
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrSynthesis):
		h.convs.Touch(conv.ID, conv)
		writeJSON(w, http.StatusBadGateway, turnView{
			conversationView: viewOf(conv),
			Reply:            res.Reply,
			Error:            ErrSynthesis.Error(),
		})
		return
	case err != nil:
		writeJSONError(w, http.StatusBadGateway, "reply failed")
		return
	}

	h.convs.Touch(conv.ID, conv)
	writeJSON(w, http.StatusOK, turnView{conversationView: viewOf(conv), Reply: res.Reply})
}

func (h *Handler) DownloadByID(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.byID(w, r)
	if !ok {
		return
	}
	plan, done := conv.Plan()
	if !done {
		writeJSONError(w, http.StatusNotFound, ErrNoPlan.Error())
		return
	}
	web.Download(w, conv.FileName(), plan)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.byID(w, r); !ok {
		return
	}
	h.convs.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) byID(w http.ResponseWriter, r *http.Request) (*Conversation, bool) {
	conv, ok := h.convs.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, ErrSessionNotFound.Error())
		return nil, false
	}
	return conv, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
