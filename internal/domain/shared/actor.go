package shared

import "strings"

// Actor is the identity resolved by the external identity provider.
// ID is the stable subject identifier used for ownership and audit stamps.
type Actor struct {
	ID    string
	Email string
	Name  string
}

// IsZero reports whether no identity was resolved
func (a Actor) IsZero() bool {
	return strings.TrimSpace(a.ID) == ""
}

// DisplayName returns the best human-readable label for the actor
func (a Actor) DisplayName() string {
	switch {
	case a.Name != "":
		return a.Name
	case a.Email != "":
		return a.Email
	default:
		return a.ID
	}
}
