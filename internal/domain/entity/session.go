package entity

import (
	"errors"
	"time"
)

// SessionID uniquely identifies a browsing session.
// It matches the log session ID format (YYYYMMDD_HHMMSS_xxxx).
type SessionID string

// SessionType distinguishes interactive sessions from scripted replays.
type SessionType string

const (
	SessionTypeInteractive SessionType = "interactive"
	SessionTypeReplay      SessionType = "replay"
)

// Session captures metadata about one run of the tab strip.
type Session struct {
	ID        SessionID
	Type      SessionType
	StartedAt time.Time
	EndedAt   *time.Time
}

func (s *Session) ShortID() string {
	id := string(s.ID)
	if len(id) < 4 {
		return id
	}
	return id[len(id)-4:]
}

func (s *Session) IsActive() bool {
	return s != nil && s.EndedAt == nil
}

func (s *Session) End(endedAt time.Time) {
	endedAt = endedAt.UTC()
	s.EndedAt = &endedAt
}

func (s *Session) Validate() error {
	if s == nil {
		return ErrInvalidSession
	}
	if s.ID == "" {
		return ErrInvalidSession
	}
	if s.Type != SessionTypeInteractive && s.Type != SessionTypeReplay {
		return ErrInvalidSession
	}
	if s.StartedAt.IsZero() {
		return ErrInvalidSession
	}
	return nil
}

var ErrInvalidSession = errors.New("invalid session")
