package advisor

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/ai-dietician/internal/ai/aitest"
	"github.com/Vovarama1992/ai-dietician/internal/session"
	"github.com/Vovarama1992/ai-dietician/internal/web"
)

func newTestRouter(t *testing.T, fake *aitest.Recorder) http.Handler {
	t.Helper()
	pages, err := web.NewRenderer()
	require.NoError(t, err)

	h := NewHandler(
		NewService(fake, nil, zerolog.Nop()),
		pages,
		session.NewManager([]byte("0123456789abcdef0123456789abcdef"), 3600),
		session.NewStore[Plan](16, time.Hour),
		zerolog.Nop(),
	)
	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return r
}

func postForm(router http.Handler, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ShowForm(t *testing.T) {
	router := newTestRouter(t, &aitest.Recorder{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your Personal AI Dietician")
	assert.Contains(t, rec.Body.String(), "Generate My Plan")
}

func TestHandler_EmptyInputWarns(t *testing.T) {
	fake := &aitest.Recorder{}
	router := newTestRouter(t, fake)

	rec := postForm(router, "/advisor", url.Values{"info": {"  "}}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), emptyInputWarning)
	assert.Zero(t, fake.CallCount())
}

func TestHandler_GenerateAndDownload(t *testing.T) {
	fake := &aitest.Recorder{Replies: []string{"Tip 1: walk", "Salmon bowl", "Day 1: rest"}}
	router := newTestRouter(t, fake)

	rec := postForm(router, "/advisor", url.Values{"info": {"I am a 30 year old man wanting to lose 10 lbs"}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>Tip 1:</strong> walk")
	assert.Contains(t, body, "Salmon bowl")
	assert.Contains(t, body, "/advisor/plan.txt")
	assert.Equal(t, 3, fake.CallCount())

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/advisor/plan.txt", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	dl := httptest.NewRecorder()
	router.ServeHTTP(dl, req)

	require.Equal(t, http.StatusOK, dl.Code)
	_, params, err := mime.ParseMediaType(dl.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, FileName, params["filename"])
	assert.Equal(t, Plan{Tips: "Tip 1: walk", Meal: "Salmon bowl", Weekly: "Day 1: rest"}.Text(), dl.Body.String())
}

func TestHandler_DownloadWithoutPlan(t *testing.T) {
	router := newTestRouter(t, &aitest.Recorder{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/advisor/plan.txt", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_RemoteFailure(t *testing.T) {
	fake := &aitest.Recorder{Errs: map[int]error{0: errors.New("network down")}}
	router := newTestRouter(t, fake)

	rec := postForm(router, "/advisor", url.Values{"info": {"lose weight"}}, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "First Steps")
}

func TestHandler_GenerateJSON(t *testing.T) {
	fake := &aitest.Recorder{Replies: []string{"t", "m", "w"}}
	router := newTestRouter(t, fake)

	req := httptest.NewRequest(http.MethodPost, "/api/advisor/plan", strings.NewReader(`{"info":"lose weight"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp planResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "t", resp.Tips)
	assert.Equal(t, "m", resp.Meal)
	assert.Equal(t, "w", resp.Weekly)
	assert.Equal(t, Plan{Tips: "t", Meal: "m", Weekly: "w"}.Text(), resp.Text)
}

func TestHandler_GenerateJSON_Empty(t *testing.T) {
	fake := &aitest.Recorder{}
	router := newTestRouter(t, fake)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/advisor/plan", strings.NewReader(`{"info":""}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, fake.CallCount())
}
