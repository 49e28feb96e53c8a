package advisor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/ai-dietician/internal/session"
	"github.com/Vovarama1992/ai-dietician/internal/web"
)

const emptyInputWarning = "Please enter your health background."

type Handler struct {
	svc      Service
	pages    *web.Renderer
	sessions *session.Manager
	plans    *session.Store[Plan]
	log      zerolog.Logger
}

func NewHandler(
	svc Service,
	pages *web.Renderer,
	sessions *session.Manager,
	plans *session.Store[Plan],
	log zerolog.Logger,
) *Handler {
	return &Handler{
		svc:      svc,
		pages:    pages,
		sessions: sessions,
		plans:    plans,
		log:      log.With().Str("component", "advisor_http").Logger(),
	}
}

type pageData struct {
	Info    string
	Warning string
	Error   string
	Plan    *Plan
}

// ShowForm renders the input form, with the last plan of this browser session if any.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	data := pageData{}
	if id, err := h.sessions.Lookup(r); err == nil {
		if plan, ok := h.plans.Get(id); ok {
			data.Plan = &plan
		}
	}
	h.render(w, http.StatusOK, data)
}

// Generate runs the three completions and displays the plan.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.Error(w, http.StatusBadRequest, "The form could not be read.")
		return
	}
	info := r.PostFormValue("info")

	id, err := h.sessions.ID(w, r)
	if err != nil {
		h.log.Error().Err(err).Msg("session")
		h.pages.Error(w, http.StatusInternalServerError, "Your session could not be started.")
		return
	}

	plan, err := h.svc.GeneratePlan(r.Context(), info)
	switch {
	case errors.Is(err, ErrEmptyInput):
		h.render(w, http.StatusBadRequest, pageData{Info: info, Warning: emptyInputWarning})
		return
	case err != nil:
		h.render(w, http.StatusBadGateway, pageData{
			Info:  info,
			Error: "We couldn't create your plan right now. Please try again.",
		})
		return
	}

	h.plans.Put(id, plan)
	h.render(w, http.StatusOK, pageData{Info: info, Plan: &plan})
}

// Download sends the combined plan as a text file.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessions.Lookup(r)
	if err != nil {
		http.Error(w, "no plan yet", http.StatusNotFound)
		return
	}
	plan, ok := h.plans.Get(id)
	if !ok {
		http.Error(w, "no plan yet", http.StatusNotFound)
		return
	}
	web.Download(w, FileName, plan.Text())
}

type planRequest struct {
	Info string `json:"info"`
}

type planResponse struct {
	Tips   string `json:"tips"`
	Meal   string `json:"meal"`
	Weekly string `json:"weekly_plan"`
	Text   string `json:"text"`
}

// GenerateJSON runs the same flow for API clients.
func (h *Handler) GenerateJSON(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	plan, err := h.svc.GeneratePlan(r.Context(), req.Info)
	switch {
	case errors.Is(err, ErrEmptyInput):
		writeJSONError(w, http.StatusBadRequest, emptyInputWarning)
		return
	case err != nil:
		writeJSONError(w, http.StatusBadGateway, "plan generation failed")
		return
	}

	writeJSON(w, http.StatusOK, planResponse{
		Tips:   plan.Tips,
		Meal:   plan.Meal,
		Weekly: plan.Weekly,
		Text:   plan.Text(),
	})
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	if err := h.pages.Render(w, status, "advisor", data); err != nil {
		h.log.Error().Err(err).Msg("render advisor page")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
