// Package identity carries the opaque actor identity and role membership
// the chat platform resolves once per command invocation.
package identity

import "errors"

// ErrPermissionDenied means the actor lacks the role a command requires.
var ErrPermissionDenied = errors.New("you don't have permission to do that")

// Actor identifies who issued a command. Roles are resolved by the
// transport before the command runs and treated as plain booleans here.
type Actor struct {
	ID        string
	Name      string
	Admin     bool
	Moderator bool
	Rater     bool
}

// Display returns the identity string used in logs: "Name (ID)".
func (a Actor) Display() string {
	if a.Name == "" {
		return a.ID
	}
	return a.Name + " (" + a.ID + ")"
}
