// ABOUTME: Session holds the ordered conversation history for one caller
// ABOUTME: Owned exclusively by the orchestrator for the session's lifetime
package models

import "time"

// Session is one continuous conversation between a caller and the
// orchestrator. Turns live in memory for the session only; no cross-session
// persistence. The orchestrator serializes all access per session.
type Session struct {
	SessionID string    `json:"session_id"`
	Turns     []Turn    `json:"turns"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession creates an empty session.
func NewSession(sessionID string) *Session {
	return &Session{
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
}

// Append adds turns to the history in order.
func (s *Session) Append(turns ...Turn) {
	s.Turns = append(s.Turns, turns...)
}

// History returns a copy of the turn sequence in chronological order.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.Turns))
	copy(out, s.Turns)
	return out
}
