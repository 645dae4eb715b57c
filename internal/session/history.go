/*
Package session tracks the ordered tool-invocation history per caller
session.

The store is in-memory: the stdio transport serves one client per
process, so history does not need to outlive it. The interface is kept
narrow so a persistent backend can replace the map without touching the
metadata builder.
*/
package session

import (
	"sync"

	"github.com/google/uuid"
)

// History is the session-history collaborator consumed by the metadata
// builder: an append-only, bounded record of tools a session invoked.
type History interface {
	// AppendTool records a tool invocation for a session. Atomic per
	// append; when the window is full the oldest entry is dropped first.
	AppendTool(sessionID, tool string)

	// ToolHistory returns the session's tool invocations in order,
	// oldest first. The returned slice is a copy.
	ToolHistory(sessionID string) []string
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Store is the in-memory History implementation.
type Store struct {
	window   int
	mu       sync.Mutex
	sessions map[string][]string
}

// NewStore creates a history store keeping at most window entries per
// session.
func NewStore(window int) *Store {
	if window <= 0 {
		window = 1
	}
	return &Store{
		window:   window,
		sessions: make(map[string][]string),
	}
}

// AppendTool records a tool invocation for a session.
func (s *Store) AppendTool(sessionID, tool string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], tool)
	if len(history) > s.window {
		history = history[len(history)-s.window:]
	}
	s.sessions[sessionID] = history
}

// ToolHistory returns a copy of the session's tool invocations.
func (s *Store) ToolHistory(sessionID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[sessionID]
	out := make([]string, len(history))
	copy(out, history)
	return out
}
