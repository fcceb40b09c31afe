package types

import (
	"time"

	"github.com/gatherly-dev/gatherly/internal/models"
)

// UserResponse is the outward shape of a user. The password hash never
// leaves the process.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// EventResponse is the outward shape of an event plus its current
// registration count.
type EventResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Date            string             `json:"date"`
	Time            string             `json:"time"`
	Duration        int                `json:"duration"`
	Location        string             `json:"location"`
	MaxParticipants *int               `json:"max_participants,omitempty"`
	OrganizerID     string             `json:"organizer_id"`
	Category        string             `json:"category"`
	IsPublic        bool               `json:"is_public"`
	Status          models.EventStatus `json:"status"`
	Participants    int                `json:"participants"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func NewEventResponse(event models.Event, participants int) EventResponse {
	return EventResponse{
		ID:              event.ID,
		Title:           event.Title,
		Description:     event.Description,
		Date:            event.Date,
		Time:            event.Time,
		Duration:        event.Duration,
		Location:        event.Location,
		MaxParticipants: event.MaxParticipants,
		OrganizerID:     event.OrganizerID,
		Category:        event.Category,
		IsPublic:        event.IsPublic,
		Status:          event.Status,
		Participants:    participants,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}
}
