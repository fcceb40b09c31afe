package models

import "time"

type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Event is a scheduled gathering owned by an organizer. Date is a calendar
// day ("2006-01-02") and Time a local 24-hour clock ("15:04"); the two are
// combined lazily when status is derived.
type Event struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Date            string      `json:"date"`
	Time            string      `json:"time"`
	Duration        int         `json:"duration"` // minutes
	Location        string      `json:"location"`
	MaxParticipants *int        `json:"max_participants,omitempty"` // nil = unlimited
	OrganizerID     string      `json:"organizer_id"`
	Category        string      `json:"category"`
	IsPublic        bool        `json:"is_public"`
	IsActive        bool        `json:"is_active"`
	Status          EventStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// EventUpdate names the fields an organizer may change on an existing
// event. Status is included so cancellation can be set through the same
// path; automatic status recomputation never flows through here.
type EventUpdate struct {
	Title           *string
	Description     *string
	Date            *string
	Time            *string
	Duration        *int
	Location        *string
	MaxParticipants *int
	Category        *string
	IsPublic        *bool
	IsActive        *bool
	Status          *EventStatus
}
