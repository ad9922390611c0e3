// Package roster keeps an on-screen list of activities in step with the
// activity API and drives sign-up and unregister from it.
//
// The package never touches a document directly. The host page is reached
// through the small interfaces below, bound once at startup: in the browser
// by package dom, in tests by in-memory fakes. Every refresh rebuilds the
// roster and the activity selector from scratch; nothing in the rendered
// markup is reused between fetches.
package roster

// Element IDs the host page must expose before startup.
const (
	IDRoster   = "activities-list"
	IDSelector = "activity"
	IDForm     = "signup-form"
	IDEmail    = "email"
	IDMessage  = "message"
)

// Form field names read on submission.
const (
	FieldActivity = IDSelector
	FieldEmail    = IDEmail
)

// Data attributes a remove control carries.
const (
	AttrActivity = "data-activity"
	AttrEmail    = "data-email"
)

// RemoveControlClass marks the per-participant unregister button.
const RemoveControlClass = "participant-remove"

// Container is an element whose content is replaced wholesale.
type Container interface {
	ReplaceHTML(markup string)
}

// Form is the sign-up form.
type Form interface {
	Field(name string) string
	Reset()
}

// Control is a remove button found by delegation inside the roster.
type Control interface {
	Attr(name string) string
	SetDisabled(disabled bool)
}

// MessageBox is the single feedback slot.
type MessageBox interface {
	Display(text string, kind Kind)
	Hide()
}

// Kind styles a feedback message. Its value doubles as the CSS class.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Page groups the host elements the controller binds to.
type Page struct {
	Roster   Container
	Selector Container
	Form     Form
	Message  MessageBox
}
