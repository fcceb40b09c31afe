// Package access holds the role, ownership, and visibility predicates
// consulted by request handlers before any store mutation. All functions
// are pure and side-effect free; a false result must surface to the
// caller as a policy denial, never as a silent no-op.
package access

import "github.com/gatherly-dev/gatherly/internal/models"

// CanCreateEvents reports whether the actor may create events.
func CanCreateEvents(actor models.User) bool {
	return actor.Role == models.RoleOrganizer
}

// IsOwner reports whether the actor owns the event. Owner-only actions
// include updating, deleting, and viewing the participant list.
func IsOwner(actor models.User, event models.Event) bool {
	return actor.ID == event.OrganizerID
}

// CanView reports whether the actor may see the event's detail or
// register for it. Private events are visible to their organizer only.
func CanView(actor models.User, event models.Event) bool {
	return event.IsPublic || actor.ID == event.OrganizerID
}
