// Package repository implements storage for activities and their
// participants. Two backends share one contract: an in-memory store for
// local runs and tests, and a PostgreSQL store built on pgx.
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
)

// ErrNotFound is returned when the named activity does not exist.
var ErrNotFound = errors.New("activity not found")

// ErrActivityFull is returned when an activity has no remaining capacity.
var ErrActivityFull = errors.New("activity is full")

// ErrAlreadyRegistered is returned when the same email signs up twice.
var ErrAlreadyRegistered = errors.New("email already signed up for this activity")

// ErrNotRegistered is returned when unregistering an email that is not a
// participant.
var ErrNotRegistered = errors.New("email is not signed up for this activity")

// ActivityRepository is the storage contract the service layer depends on.
type ActivityRepository interface {
	// List returns every activity with its participants, in a stable order.
	List(ctx context.Context) (model.Collection, error)
	// Signup appends email to the activity's participants.
	Signup(ctx context.Context, activity, email string) error
	// Unregister removes email from the activity's participants.
	Unregister(ctx context.Context, activity, email string) error
}
