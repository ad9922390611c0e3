// Package model defines the core domain types for the activity roster.
package model

// Activity is a schedulable offering with a capacity and a participant list.
// Participants are email addresses in sign-up order.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft returns the number of available places. It is negative when the
// server reports more participants than the capacity allows.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// IsFull returns true when no places remain.
func (a Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// Has reports whether email is already a participant.
func (a Activity) Has(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// MessageResponse is the body of a successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope. Detail may be empty when the
// server gives no reason.
type ErrorResponse struct {
	Detail string `json:"detail,omitempty"`
}
