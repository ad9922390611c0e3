package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry pairs an activity with its name, the collection's primary key.
type Entry struct {
	Name string
	Activity
}

// Collection is the full activity set keyed by name. It is a slice rather
// than a map because the order the server sends is the order the roster
// shows.
type Collection []Entry

// Get returns the activity named name.
func (c Collection) Get(name string) (Activity, bool) {
	for _, e := range c {
		if e.Name == name {
			return e.Activity, true
		}
	}
	return Activity{}, false
}

// Names returns the activity names in order.
func (c Collection) Names() []string {
	names := make([]string, len(c))
	for i, e := range c {
		names[i] = e.Name
	}
	return names
}

// MarshalJSON writes the collection as a JSON object in slice order.
func (c Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		a := e.Activity
		if a.Participants == nil {
			a.Participants = []string{}
		}
		val, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("marshal activity %q: %w", e.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping its key order. A repeated key
// keeps its first position and takes the last value. A JSON null decodes to
// an empty collection.
func (c *Collection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("activity collection: expected object, got %v", tok)
	}

	out := Collection{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("activity collection: unexpected key %v", tok)
		}

		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("activity %q: %w", name, err)
		}

		if i, seen := index[name]; seen {
			out[i].Activity = a
			continue
		}
		index[name] = len(out)
		out = append(out, Entry{Name: name, Activity: a})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}
