// Package events carries identity-provider webhooks and internal events
// between the HTTP ingress, the publishers and the sync handlers.
package events

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// Event names
const (
	UserCreated         = "clerk/user.created"
	UserUpdated         = "clerk/user.updated"
	UserDeleted         = "clerk/user.deleted"
	OrganizationCreated = "clerk/organization.created"
	OrganizationUpdated = "clerk/organization.updated"
	OrganizationDeleted = "clerk/organization.deleted"
	InvitationAccepted  = "clerk/organizationInvitation.accepted"
	TaskAssigned        = "app/task.assigned"
)

type Event struct {
	ID   string          `json:"id,omitempty"`
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
	TS   int64           `json:"ts,omitempty"` // Unix milliseconds
}

// New builds an event with data marshaled as JSON.
func New(name string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s: %w", name, err)
	}
	return Event{Name: name, Data: raw}, nil
}

// Key identifies the event for deduplication. Events without an id are keyed
// by a digest of their name and data, so a verbatim redelivery still matches.
func (e Event) Key() string {
	if e.ID != "" {
		return e.ID
	}
	sum := sha256.Sum256(append([]byte(e.Name+"\x00"), e.Data...))
	return "sha256:" + hex.EncodeToString(sum[:])
}

// Decode unmarshals the event payload into v.
func (e Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("event %s has no data", e.Name)
	}
	return json.Unmarshal(e.Data, v)
}

var ErrMalformed = errors.New("malformed event")

// Parse reads a webhook body. The event may be sent bare or wrapped as
// {"event": {...}}, and a body may also be a JSON array of either form.
func Parse(body []byte) ([]Event, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrMalformed
	}
	if body[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(body, &raws); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		out := make([]Event, 0, len(raws))
		for _, raw := range raws {
			ev, err := parseOne(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, ev)
		}
		return out, nil
	}
	ev, err := parseOne(body)
	if err != nil {
		return nil, err
	}
	return []Event{ev}, nil
}

func parseOne(raw []byte) (Event, error) {
	var envelope struct {
		Event *Event `json:"event"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	var ev Event
	if envelope.Event != nil {
		ev = *envelope.Event
	} else if err := json.Unmarshal(raw, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if ev.Name == "" {
		return Event{}, fmt.Errorf("%w: missing name", ErrMalformed)
	}
	return ev, nil
}

// TaskAssignedData is the payload of TaskAssigned.
type TaskAssignedData struct {
	TaskID string `json:"taskId"`
	// Origin is the web app origin the assignment was made from, used for
	// links in the mail.
	Origin string `json:"origin,omitempty"`
}
