//go:build js && wasm

// Package dom binds the roster controller to a browser document.
package dom

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/Shivanand-hulikatti/activity-roster/internal/roster"
)

// HiddenClass hides the message slot.
const HiddenClass = "hidden"

type element struct{ v js.Value }

func (e element) ReplaceHTML(markup string) { e.v.Set("innerHTML", markup) }

type form struct{ v js.Value }

func (f form) Field(name string) string {
	field := f.v.Get("elements").Call("namedItem", name)
	if field.IsNull() || field.IsUndefined() {
		return ""
	}
	return field.Get("value").String()
}

func (f form) Reset() { f.v.Call("reset") }

type control struct{ v js.Value }

func (c control) Attr(name string) string {
	a := c.v.Call("getAttribute", name)
	if a.IsNull() {
		return ""
	}
	return a.String()
}

func (c control) SetDisabled(disabled bool) { c.v.Set("disabled", disabled) }

type messageBox struct{ v js.Value }

func (m messageBox) Display(text string, kind roster.Kind) {
	m.v.Set("textContent", text)
	m.v.Set("className", string(kind))
}

func (m messageBox) Hide() { m.v.Get("classList").Call("add", HiddenClass) }

// Bind looks up the fixed page elements in doc. It fails if any is missing.
func Bind(doc js.Value) (roster.Page, error) {
	els := make(map[string]js.Value, 4)
	for _, id := range []string{roster.IDRoster, roster.IDSelector, roster.IDForm, roster.IDMessage} {
		el := doc.Call("getElementById", id)
		if el.IsNull() {
			return roster.Page{}, fmt.Errorf("element #%s not found", id)
		}
		els[id] = el
	}

	return roster.Page{
		Roster:   element{els[roster.IDRoster]},
		Selector: element{els[roster.IDSelector]},
		Form:     form{els[roster.IDForm]},
		Message:  messageBox{els[roster.IDMessage]},
	}, nil
}

// Listen installs the submit handler on the sign-up form and one delegated
// click handler on the roster. Handlers start the controller on a goroutine
// and return at once so the event loop is never blocked on the network.
//
// The returned func releases both handlers.
func Listen(ctx context.Context, doc js.Value, ctrl *roster.Controller) func() {
	formEl := doc.Call("getElementById", roster.IDForm)
	rosterEl := doc.Call("getElementById", roster.IDRoster)

	onSubmit := js.FuncOf(func(_ js.Value, args []js.Value) any {
		args[0].Call("preventDefault")
		go ctrl.Register(ctx)
		return nil
	})

	onClick := js.FuncOf(func(_ js.Value, args []js.Value) any {
		target := args[0].Get("target")
		if target.Get("closest").IsUndefined() {
			return nil
		}
		btn := target.Call("closest", "."+roster.RemoveControlClass)
		if btn.IsNull() {
			return nil
		}
		go ctrl.Unregister(ctx, control{btn})
		return nil
	})

	formEl.Call("addEventListener", "submit", onSubmit)
	rosterEl.Call("addEventListener", "click", onClick)

	return func() {
		formEl.Call("removeEventListener", "submit", onSubmit)
		rosterEl.Call("removeEventListener", "click", onClick)
		onSubmit.Release()
		onClick.Release()
	}
}
