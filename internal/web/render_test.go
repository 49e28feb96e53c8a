package web

import (
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmphasize(t *testing.T) {
	out := string(Emphasize("Tip 1: walk daily\nTip 2: <drink> water"))

	assert.Contains(t, out, "<strong>Tip 1:</strong> walk daily<br>\n")
	assert.Contains(t, out, "<strong>Tip 2:</strong> &lt;drink&gt; water")
}

func TestEmphasize_Days(t *testing.T) {
	out := string(Emphasize("Day 1: rest\nDay 7: celebrate"))
	assert.Contains(t, out, "<strong>Day 1:</strong> rest")
	assert.Contains(t, out, "<strong>Day 7:</strong> celebrate")
}

func TestEmphasize_KeepsMarkdownBold(t *testing.T) {
	out := string(Emphasize("**Day 1:** rest"))
	assert.Equal(t, "<strong>Day 1:</strong> rest", out)
}

func TestEmphasize_CustomLabels(t *testing.T) {
	out := string(Emphasize("Step 2 then Tip 1", "Step"))
	assert.Equal(t, "<strong>Step 2</strong> then Tip 1", out)
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "Sam", SafeFileName("Sam"))
	assert.Equal(t, "Mary_Jane", SafeFileName(" Mary Jane "))
	assert.Equal(t, "a_b", SafeFileName(`a/"b`))
	assert.Equal(t, "Zoë", SafeFileName("Zoë"))
	assert.Equal(t, "my", SafeFileName("../"))
}

func TestDownload(t *testing.T) {
	rec := httptest.NewRecorder()
	Download(rec, "Sam_health_plan.txt", "Day 1: walk")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	disp, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disp)
	assert.Equal(t, "Sam_health_plan.txt", params["filename"])
	assert.Equal(t, "Day 1: walk", rec.Body.String())
}

func TestDownload_NonASCIIName(t *testing.T) {
	rec := httptest.NewRecorder()
	Download(rec, SafeFileName("Zoë")+"_health_plan.txt", "Day 1: walk")

	header := rec.Header().Get("Content-Disposition")
	assert.Equal(t, "attachment; filename*=utf-8''Zo%C3%AB_health_plan.txt", header)
	for _, b := range []byte(header) {
		require.Less(t, b, byte(0x80), "header must be plain ASCII")
	}

	_, params, err := mime.ParseMediaType(header)
	require.NoError(t, err)
	assert.Equal(t, "Zoë_health_plan.txt", params["filename"])
}

func TestRenderer_ErrorPage(t *testing.T) {
	rn, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, rn.Render(rec, http.StatusBadGateway, "error", map[string]string{
		"Title":   "Oops",
		"Message": "<b>failed</b>",
	}))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h2>Oops</h2>")
	assert.Contains(t, rec.Body.String(), "&lt;b&gt;failed&lt;/b&gt;")
}

func TestRenderer_UnknownPage(t *testing.T) {
	rn, err := NewRenderer()
	require.NoError(t, err)

	assert.Error(t, rn.Render(httptest.NewRecorder(), http.StatusOK, "missing", nil))
}

func TestRenderer_ErrorHelper(t *testing.T) {
	rn, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rn.Error(rec, http.StatusInternalServerError, "Your session could not be started.")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
	assert.Contains(t, rec.Body.String(), "Your session could not be started.")
}
