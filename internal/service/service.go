// Package service implements validation and orchestration between the HTTP
// handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
	"github.com/Shivanand-hulikatti/activity-roster/internal/repository"
)

// ErrInvalidInput is returned when a request is missing a required value.
var ErrInvalidInput = errors.New("invalid input")

// Validation failures, both matching ErrInvalidInput.
var (
	ErrActivityRequired = fmt.Errorf("%w: activity name is required", ErrInvalidInput)
	ErrEmailRequired    = fmt.Errorf("%w: email is required", ErrInvalidInput)
)

// ActivityService orchestrates roster operations.
type ActivityService struct {
	activities repository.ActivityRepository
}

// NewActivityService constructs an ActivityService.
func NewActivityService(activities repository.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

// ListActivities returns the full activity collection.
func (s *ActivityService) ListActivities(ctx context.Context) (model.Collection, error) {
	c, err := s.activities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return c, nil
}

// Signup registers email for activity and returns the confirmation text.
func (s *ActivityService) Signup(ctx context.Context, activity, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate(activity, email); err != nil {
		return "", err
	}

	if err := s.activities.Signup(ctx, activity, email); err != nil {
		if isDomainErr(err) {
			return "", err
		}
		return "", fmt.Errorf("signup: %w", err)
	}
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Unregister removes email from activity and returns the confirmation text.
func (s *ActivityService) Unregister(ctx context.Context, activity, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate(activity, email); err != nil {
		return "", err
	}

	if err := s.activities.Unregister(ctx, activity, email); err != nil {
		if isDomainErr(err) {
			return "", err
		}
		return "", fmt.Errorf("unregister: %w", err)
	}
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}

func validate(activity, email string) error {
	if activity == "" {
		return ErrActivityRequired
	}
	if email == "" {
		return ErrEmailRequired
	}
	return nil
}

// isDomainErr reports errors the handlers map to a specific status.
func isDomainErr(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrActivityFull) ||
		errors.Is(err, repository.ErrAlreadyRegistered) ||
		errors.Is(err, repository.ErrNotRegistered)
}
