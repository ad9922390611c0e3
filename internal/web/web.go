// Package web serves the roster page. The first paint is rendered on the
// server with the same markup the browser controller produces, so the
// roster is visible before roster.wasm has loaded.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
	"github.com/Shivanand-hulikatti/activity-roster/internal/roster"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// School is shown in the page header.
const School = "Mergington High School"

// Lister reads the current activity collection.
type Lister interface {
	ListActivities(ctx context.Context) (model.Collection, error)
}

type ids struct {
	Roster, Selector, Form, Email, Message string
}

type indexView struct {
	Title   string
	School  string
	IDs     ids
	Cards   template.HTML
	Options template.HTML
}

// PageHandler renders GET /.
type PageHandler struct {
	activities Lister
	log        *slog.Logger
}

func NewPageHandler(activities Lister, log *slog.Logger) *PageHandler {
	return &PageHandler{activities: activities, log: log}
}

// Index handles GET /
// A failed read still serves the page, with the roster showing the same
// notice the controller uses.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	view := indexView{
		Title:  School + " Activities",
		School: School,
		IDs: ids{
			Roster:   roster.IDRoster,
			Selector: roster.IDSelector,
			Form:     roster.IDForm,
			Email:    roster.IDEmail,
			Message:  roster.IDMessage,
		},
	}

	c, err := h.activities.ListActivities(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "render index", slog.String("error", err.Error()))
		view.Cards = template.HTML(roster.FetchFailedNotice)
		view.Options = template.HTML(roster.PlaceholderOption)
	} else {
		// Every value in this markup has been through roster.Escape.
		view.Cards = template.HTML(roster.RenderCards(c))
		view.Options = template.HTML(roster.RenderOptions(c))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := templates.ExecuteTemplate(w, "index.html", view); err != nil {
		h.log.ErrorContext(r.Context(), "execute index template", slog.String("error", err.Error()))
	}
}

// Static serves the page assets under /static/ from dir.
func Static(dir string) http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))
}
