//go:build js && wasm

// cmd/roster is the browser entry point, built as roster.wasm.
// It binds the page rendered by the server and keeps it in step with the API.
package main

import (
	"context"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/Shivanand-hulikatti/activity-roster/internal/roster"
	"github.com/Shivanand-hulikatti/activity-roster/internal/roster/dom"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()

	// ── 1. Bind the page ─────────────────────────────────────────────────
	doc := js.Global().Get("document")
	page, err := dom.Bind(doc)
	if err != nil {
		log.Error("bind page", slog.String("error", err.Error()))
		return
	}

	// ── 2. Wire the controller ───────────────────────────────────────────
	origin := js.Global().Get("location").Get("origin").String()
	client, err := roster.NewClient(origin, nil)
	if err != nil {
		log.Error("api client", slog.String("error", err.Error()))
		return
	}
	banner := roster.NewBanner(page.Message, roster.FeedbackDelay, nil)
	ctrl := roster.NewController(client, page, banner, log)

	// ── 3. First render, then listen ─────────────────────────────────────
	go func() { _ = ctrl.FetchAndRender(ctx) }()
	dom.Listen(ctx, doc, ctrl)

	select {}
}
