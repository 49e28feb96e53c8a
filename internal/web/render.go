package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes page templates, each wrapped in the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"emphasize": Emphasize,
	}

	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, name := range names {
		base := path.Base(name)
		if base == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		pages[strings.TrimSuffix(base, ".html")] = t
	}

	return &Renderer{pages: pages}, nil
}

// Render writes page with the given status. The page is buffered so a
// template error never produces a half-written response.
func (rn *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := rn.pages[page]
	if !ok {
		return fmt.Errorf("web: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Error renders the generic failure page.
func (rn *Renderer) Error(w http.ResponseWriter, status int, message string) {
	data := struct{ Title, Message string }{http.StatusText(status), message}
	if err := rn.Render(w, status, "error", data); err != nil {
		http.Error(w, message, status)
	}
}

var (
	markdownBold   = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
	defaultLabelRe = labelPattern([]string{"Tip", "Day"})
)

func labelPattern(labels []string) *regexp.Regexp {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return regexp.MustCompile(`\b((?:` + strings.Join(quoted, "|") + `) \d+:?)`)
}

// Emphasize escapes text for HTML, bolds numbered labels such as "Tip 1:"
// or "Day 3", and keeps line breaks. Text that already carries **bold**
// markers keeps the model's own emphasis instead.
func Emphasize(text string, labels ...string) template.HTML {
	re := defaultLabelRe
	if len(labels) > 0 {
		re = labelPattern(labels)
	}

	escaped := template.HTMLEscapeString(strings.TrimSpace(text))
	if markdownBold.MatchString(escaped) {
		escaped = markdownBold.ReplaceAllString(escaped, "<strong>$1</strong>")
	} else {
		escaped = re.ReplaceAllString(escaped, "<strong>$1</strong>")
	}
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>\n")

	return template.HTML(escaped)
}

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// SafeFileName turns a user-supplied display name into a file name prefix.
func SafeFileName(name string) string {
	name = unsafeFileChars.ReplaceAllString(strings.TrimSpace(name), "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "my"
	}
	return name
}

// Download sends content as a UTF-8 plain-text attachment.
func Download(w http.ResponseWriter, fileName, content string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	// Non-ASCII names go out in the RFC 2231 filename* form.
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}
