package capture

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/starford/dagaz/internal/dateid"
)

// builtinTemplate is used when no template is configured at all: a plain
// timestamped entry heading appended to the note.
const builtinTemplate = "\n* {{ .Time }}\n"

// TemplateData is the value rendered into a capture template.
type TemplateData struct {
	Date    string    // canonical YYYY-MM-DD
	Weekday string    // e.g. "Monday"
	Time    string    // capture wall-clock time, HH:MM
	Now     time.Time // full capture timestamp, for sprig date functions
}

// render resolves key against the configured template map and renders it.
// An empty key falls back to the configured default key, then to the
// builtin template. A non-empty key that is not configured is an error.
func (r *Resolver) render(key string, id dateid.Identity, at time.Time) (string, error) {
	body := builtinTemplate
	switch {
	case key != "":
		b, ok := r.templates[key]
		if !ok {
			return "", fmt.Errorf("capture: unknown template %q", key)
		}
		body = b
	case r.defaultKey != "":
		if b, ok := r.templates[r.defaultKey]; ok {
			body = b
		}
	}
	return renderTemplate(body, id, at)
}

func renderTemplate(body string, id dateid.Identity, at time.Time) (string, error) {
	t, err := template.New("capture").Funcs(sprig.TxtFuncMap()).Parse(body)
	if err != nil {
		return "", fmt.Errorf("capture: parse template: %w", err)
	}
	data := TemplateData{
		Date:    id.String(),
		Weekday: id.Time().Weekday().String(),
		Time:    at.Format("15:04"),
		Now:     at,
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("capture: render template: %w", err)
	}
	return sb.String(), nil
}
