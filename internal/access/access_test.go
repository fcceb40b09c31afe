package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatherly-dev/gatherly/internal/models"
)

func TestCanCreateEvents(t *testing.T) {
	assert.True(t, CanCreateEvents(models.User{Role: models.RoleOrganizer}))
	assert.False(t, CanCreateEvents(models.User{Role: models.RoleAttendee}))
	assert.False(t, CanCreateEvents(models.User{}))
}

func TestIsOwner(t *testing.T) {
	event := models.Event{OrganizerID: "org"}

	assert.True(t, IsOwner(models.User{ID: "org"}, event))
	assert.False(t, IsOwner(models.User{ID: "someone-else"}, event))
	assert.False(t, IsOwner(models.User{}, event))
}

func TestCanView(t *testing.T) {
	public := models.Event{OrganizerID: "org", IsPublic: true}
	private := models.Event{OrganizerID: "org", IsPublic: false}

	assert.True(t, CanView(models.User{ID: "anyone"}, public))
	assert.True(t, CanView(models.User{}, public))
	assert.True(t, CanView(models.User{ID: "org"}, private))
	assert.False(t, CanView(models.User{ID: "anyone"}, private))
	assert.False(t, CanView(models.User{}, private))
}
