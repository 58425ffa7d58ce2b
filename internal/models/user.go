package models

import (
	"fmt"
	"time"
)

type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     []byte
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Capability is one atomic permission label gating an operation class.
type Capability string

const (
	CapabilityRead   Capability = "read"
	CapabilityWrite  Capability = "write"
	CapabilityDelete Capability = "delete"
)

// ParseCapability rejects any label outside the closed enumeration. Client
// input never reaches the permission store without passing through here.
func ParseCapability(s string) (Capability, error) {
	switch Capability(s) {
	case CapabilityRead, CapabilityWrite, CapabilityDelete:
		return Capability(s), nil
	}
	return "", fmt.Errorf("invalid capability %q", s)
}

// PermissionSet is a user's granted capabilities. The zero value is the empty
// set, which denies everything.
type PermissionSet map[Capability]struct{}

func NewPermissionSet(caps ...Capability) PermissionSet {
	set := make(PermissionSet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

func (p PermissionSet) Has(c Capability) bool {
	_, ok := p[c]
	return ok
}

func (p PermissionSet) Labels() []string {
	labels := make([]string, 0, len(p))
	for _, c := range []Capability{CapabilityRead, CapabilityWrite, CapabilityDelete} {
		if p.Has(c) {
			labels = append(labels, string(c))
		}
	}
	return labels
}

// Session binds a refresh token to its owning user. It is the sole revocation
// mechanism for refresh tokens: a valid signature without a live session row
// is worthless.
type Session struct {
	ID               string
	UserID           string
	RefreshTokenHash []byte
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

// Expired treats the boundary instant as expired. Expiry checks fail closed.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
