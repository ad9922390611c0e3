package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_UnmarshalKeepsServerOrder(t *testing.T) {
	t.Parallel()

	body := `{
		"Zumba": {"description": "Dance", "schedule": "Mon", "max_participants": 5, "participants": []},
		"Archery": {"description": "Bows", "schedule": "Tue", "max_participants": 3, "participants": ["a@x.com"]},
		"Chess Club": {"description": "Learn chess", "schedule": "Fridays", "max_participants": 10, "participants": ["b@x.com", "c@x.com"]}
	}`

	var c Collection
	require.NoError(t, json.Unmarshal([]byte(body), &c))

	assert.Equal(t, []string{"Zumba", "Archery", "Chess Club"}, c.Names())

	chess, ok := c.Get("Chess Club")
	require.True(t, ok)
	assert.Equal(t, "Learn chess", chess.Description)
	assert.Equal(t, []string{"b@x.com", "c@x.com"}, chess.Participants)
}

func TestCollection_UnmarshalDuplicateKey(t *testing.T) {
	t.Parallel()

	body := `{"A": {"schedule": "first"}, "B": {}, "A": {"schedule": "second"}}`

	var c Collection
	require.NoError(t, json.Unmarshal([]byte(body), &c))

	assert.Equal(t, []string{"A", "B"}, c.Names())
	assert.Equal(t, "second", c[0].Schedule)
}

func TestCollection_UnmarshalRejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "array instead of object", body: `[1, 2]`},
		{name: "wrong field type", body: `{"A": {"max_participants": "ten"}}`},
		{name: "participants not a list", body: `{"A": {"participants": "a@x.com"}}`},
		{name: "truncated", body: `{"A": {}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var c Collection
			assert.Error(t, json.Unmarshal([]byte(tt.body), &c))
		})
	}
}

func TestCollection_MarshalWritesSliceOrder(t *testing.T) {
	t.Parallel()

	c := Collection{
		{Name: "Soccer", Activity: Activity{Schedule: "Wed", MaxParticipants: 2}},
		{Name: "Art", Activity: Activity{Schedule: "Thu", MaxParticipants: 1, Participants: []string{"a@x.com"}}},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"Soccer": {"description": "", "schedule": "Wed", "max_participants": 2, "participants": []},
		"Art": {"description": "", "schedule": "Thu", "max_participants": 1, "participants": ["a@x.com"]}
	}`, string(data))
	assert.Less(t, strings.Index(string(data), "Soccer"), strings.Index(string(data), "Art"))

	var back Collection
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"Soccer", "Art"}, back.Names())
}

func TestActivity_SpotsLeft(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		activity Activity
		want     int
		full     bool
	}{
		{name: "empty", activity: Activity{MaxParticipants: 10}, want: 10},
		{name: "one taken", activity: Activity{MaxParticipants: 10, Participants: []string{"a"}}, want: 9},
		{name: "exactly full", activity: Activity{MaxParticipants: 1, Participants: []string{"a"}}, want: 0, full: true},
		{name: "over capacity", activity: Activity{MaxParticipants: 1, Participants: []string{"a", "b", "c"}}, want: -2, full: true},
		{name: "zero capacity", activity: Activity{}, want: 0, full: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.activity.SpotsLeft())
			assert.Equal(t, tt.full, tt.activity.IsFull())
		})
	}
}
