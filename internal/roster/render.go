package roster

import (
	"strings"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
)

// PlaceholderOption is always the first entry of the activity selector.
const PlaceholderOption = `<option value="">-- Select an activity --</option>`

// EmptyParticipants replaces the participant list of an activity nobody has
// joined yet.
const EmptyParticipants = `<p class="participants-empty">No participants yet.</p>`

const removeIcon = `<svg viewBox="0 0 24 24" width="16" height="16" aria-hidden="true" focusable="false">` +
	`<path fill="currentColor" d="M9 3h6l1 2h5v2H3V5h5l1-2zm1 6h2v10h-2V9zm4 0h2v10h-2V9zM7 9h2v10H7V9z"/></svg>`

// Render replaces the roster and the activity selector with c.
func Render(p Page, c model.Collection) {
	p.Roster.ReplaceHTML(RenderCards(c))
	p.Selector.ReplaceHTML(RenderOptions(c))
}

// RenderCards returns one activity card per entry of c, in order.
func RenderCards(c model.Collection) string {
	var b strings.Builder
	for _, e := range c {
		writeCard(&b, e)
	}
	return b.String()
}

// RenderOptions returns the placeholder option followed by one option per
// activity, in order.
func RenderOptions(c model.Collection) string {
	var b strings.Builder
	b.WriteString(PlaceholderOption)
	for _, e := range c {
		name := Escape(e.Name)
		b.WriteString(`<option value="` + name + `">` + name + `</option>`)
	}
	return b.String()
}

func writeCard(b *strings.Builder, e model.Entry) {
	b.WriteString(`<div class="activity-card">`)
	b.WriteString(`<h4>` + Escape(e.Name) + `</h4>`)
	b.WriteString(`<p>` + Escape(e.Description) + `</p>`)
	b.WriteString(`<p><strong>Schedule:</strong> ` + Escape(e.Schedule) + `</p>`)
	b.WriteString(`<p><strong>Availability:</strong> ` + Escape(e.SpotsLeft()) + ` spots left ` +
		`<span class="capacity">(` + Escape(len(e.Participants)) + `/` + Escape(e.MaxParticipants) + `)</span></p>`)
	b.WriteString(`<div class="participants"><h5>Participants</h5>`)
	writeParticipants(b, e.Name, e.Participants)
	b.WriteString(`</div></div>`)
}

func writeParticipants(b *strings.Builder, activity string, participants []string) {
	if len(participants) == 0 {
		b.WriteString(EmptyParticipants)
		return
	}

	a := Escape(activity)
	b.WriteString(`<ul class="participants-list">`)
	for _, p := range participants {
		email := Escape(p)
		b.WriteString(`<li class="participant">`)
		b.WriteString(`<span class="participant-email">` + email + `</span>`)
		b.WriteString(`<button type="button" class="` + RemoveControlClass + `"` +
			` ` + AttrActivity + `="` + a + `"` +
			` ` + AttrEmail + `="` + email + `"` +
			` aria-label="Unregister ` + email + ` from ` + a + `"` +
			` title="Unregister participant">`)
		b.WriteString(removeIcon)
		b.WriteString(`</button></li>`)
	}
	b.WriteString(`</ul>`)
}
