package domain

import (
	"strings"
	"time"
)

// Query is a single user utterance entering the pipeline. It is created at
// the transport boundary, consumed synchronously, and never persisted.
// SessionID is an opaque transport-owned identifier and is never interpreted.
type Query struct {
	text       string
	sessionID  string
	receivedAt time.Time
}

// NewQuery creates a Query. The utterance is trimmed; an all-whitespace
// utterance yields an empty Query, which the router treats as a no-op.
func NewQuery(text, sessionID string, receivedAt time.Time) Query {
	return Query{
		text:       strings.TrimSpace(text),
		sessionID:  sessionID,
		receivedAt: receivedAt,
	}
}

// Text returns the trimmed utterance.
func (q Query) Text() string { return q.text }

// SessionID returns the opaque session identifier.
func (q Query) SessionID() string { return q.sessionID }

// ReceivedAt returns the arrival timestamp.
func (q Query) ReceivedAt() time.Time { return q.receivedAt }

// IsEmpty reports whether the utterance is empty after trimming.
func (q Query) IsEmpty() bool { return q.text == "" }
