// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

const MaxNameLen = 36

var (
	ErrNameTooLong = errors.New("display name too long")
	ErrNameEmpty   = errors.New("display name empty")
)

// ConnID identifies one live connection. The transport guarantees uniqueness
// and stability for the connection lifetime.
type ConnID string

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Participant is one connected user's identity within the session.
type Participant struct {
	ConnID       ConnID `json:"id"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	StreamActive bool   `json:"streamActive"`
}

// NewParticipant is a tiny helper to avoid ad-hoc struct literals in adapters.
// Everyone starts as a student; promotion goes through the admin authority.
func NewParticipant(id ConnID, name string) (*Participant, error) {
	if len(name) == 0 {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	return &Participant{ConnID: id, Name: name, Role: RoleStudent}, nil
}
