package roster

import (
	"context"
	"log/slog"
	"sync"
)

// User-facing texts.
const (
	FetchFailedNotice   = `<p>Failed to load activities. Please try again later.</p>`
	MsgFetchFailed      = "Failed to load activities."
	MsgGenericError     = "An error occurred"
	MsgSignupFailed     = "Failed to sign up. Please try again."
	MsgUnregisterFailed = "Failed to unregister. Please try again."
)

// Controller runs the fetch-render cycle and the two mutations against a
// bound Page. Its methods block on the network and are meant to be started
// on their own goroutine by the page binding; they never panic on a failed
// request and always leave the page in a usable state.
type Controller struct {
	client *Client
	page   Page
	banner *Banner
	log    *slog.Logger

	mu      sync.Mutex
	issued  uint64
	applied uint64
}

// NewController binds a Controller to page.
func NewController(client *Client, page Page, banner *Banner, log *slog.Logger) *Controller {
	return &Controller{client: client, page: page, banner: banner, log: log}
}

// FetchAndRender reads the collection and redraws the roster and selector.
// On failure the roster shows FetchFailedNotice and an error message is
// displayed.
//
// Fetches may overlap when mutations are fired quickly. Each one is
// numbered when issued, and a completion is dropped if a later-issued fetch
// has already been applied, so the page never steps back to an older
// snapshot.
func (c *Controller) FetchAndRender(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	collection, err := c.client.Activities(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.applied {
		c.log.Debug("dropping stale roster fetch", slog.Uint64("seq", seq), slog.Uint64("applied", c.applied))
		return err
	}
	c.applied = seq

	if err != nil {
		c.page.Roster.ReplaceHTML(FetchFailedNotice)
		c.banner.Show(MsgFetchFailed, KindError)
		c.log.Error("error fetching activities", slog.String("error", err.Error()))
		return err
	}
	Render(c.page, collection)
	return nil
}

// Register submits the sign-up form.
func (c *Controller) Register(ctx context.Context) {
	activity := c.page.Form.Field(FieldActivity)
	email := c.page.Form.Field(FieldEmail)

	out, err := c.client.Signup(ctx, activity, email)
	if err != nil {
		c.log.Error("error signing up",
			slog.String("activity", activity),
			slog.String("error", err.Error()),
		)
		c.banner.Show(MsgSignupFailed, KindError)
		return
	}

	c.present(ctx, out, c.page.Form.Reset)
}

// Unregister removes the participant named by ctl. ctl stays disabled for
// the duration of the request. A control missing either data attribute is
// ignored.
func (c *Controller) Unregister(ctx context.Context, ctl Control) {
	activity := ctl.Attr(AttrActivity)
	email := ctl.Attr(AttrEmail)
	if activity == "" || email == "" {
		return
	}

	ctl.SetDisabled(true)
	defer ctl.SetDisabled(false)

	out, err := c.client.Unregister(ctx, activity, email)
	if err != nil {
		c.log.Error("error unregistering participant",
			slog.String("activity", activity),
			slog.String("error", err.Error()),
		)
		c.banner.Show(MsgUnregisterFailed, KindError)
		return
	}

	c.present(ctx, out, nil)
}

// present shows a mutation outcome. On success it runs onSuccess, if any,
// and refreshes the roster; a rejection leaves the roster as it is.
func (c *Controller) present(ctx context.Context, out Outcome, onSuccess func()) {
	if !out.OK {
		detail := out.Detail
		if detail == "" {
			detail = MsgGenericError
		}
		c.banner.Show(detail, KindError)
		return
	}

	c.banner.Show(out.Message, KindSuccess)
	if onSuccess != nil {
		onSuccess()
	}
	_ = c.FetchAndRender(ctx)
}
