// Package store is the sole authority over user and event records and the
// registration relation between them. Everything lives in process memory
// and is lost on restart by design.
//
// The registration relation is kept as two mirrored indexes, event -> set
// of user IDs and user -> set of event IDs, so membership is O(1) from
// either side. Every mutation runs under a single mutex, so the mirrors
// can never be observed half-updated and the capacity check cannot race a
// concurrent registration.
//
// Lookups return copies of the stored records. Mutating a fetched record
// has no effect on the store; all writes go through the Update methods.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/gatherly-dev/gatherly/internal/models"
)

var (
	ErrDuplicateID       = errors.New("identifier already in use")
	ErrUserNotFound      = errors.New("user not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("user already registered for event")
	ErrEventFull         = errors.New("event capacity reached")
)

type Store struct {
	mu            sync.RWMutex
	users         map[string]models.User
	events        map[string]models.Event
	participants  map[string]map[string]struct{} // event ID -> user IDs
	registrations map[string]map[string]struct{} // user ID -> event IDs
}

func New() *Store {
	return &Store{
		users:         make(map[string]models.User),
		events:        make(map[string]models.Event),
		participants:  make(map[string]map[string]struct{}),
		registrations: make(map[string]map[string]struct{}),
	}
}

// CreateUser inserts the user and initializes its empty registration set.
func (s *Store) CreateUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return ErrDuplicateID
	}

	s.users[user.ID] = user
	s.registrations[user.ID] = make(map[string]struct{})
	return nil
}

func (s *Store) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	return user, ok
}

// UserByEmail scans for an exact match on the normalized (lowercase) form
// stored at creation.
func (s *Store) UserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, true
		}
	}
	return models.User{}, false
}

// UpdateUser merges the given fields into the stored record. Email
// uniqueness is the caller's responsibility; the store only applies.
func (s *Store) UpdateUser(id string, update models.UserUpdate) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	user.UpdatedAt = time.Now()

	s.users[id] = user
	return user, true
}

// DeleteUser removes the user and every registration edge touching it,
// keeping both mirror indexes consistent.
func (s *Store) DeleteUser(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}

	delete(s.users, id)
	delete(s.registrations, id)
	for eventID := range s.participants {
		delete(s.participants[eventID], id)
	}
	return user, true
}

// CreateEvent inserts the event and initializes its empty participant set.
func (s *Store) CreateEvent(event models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.ID]; exists {
		return ErrDuplicateID
	}

	s.events[event.ID] = cloneEvent(event)
	s.participants[event.ID] = make(map[string]struct{})
	return nil
}

func (s *Store) EventByID(id string) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return models.Event{}, false
	}
	return cloneEvent(event), true
}

func (s *Store) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, cloneEvent(event))
	}
	return events
}

func (s *Store) EventsByOrganizer(organizerID string) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []models.Event
	for _, event := range s.events {
		if event.OrganizerID == organizerID {
			events = append(events, cloneEvent(event))
		}
	}
	return events
}

// UpdateEvent merges the given fields into the stored record.
func (s *Store) UpdateEvent(id string, update models.EventUpdate) (models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return models.Event{}, false
	}

	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.Date != nil {
		event.Date = *update.Date
	}
	if update.Time != nil {
		event.Time = *update.Time
	}
	if update.Duration != nil {
		event.Duration = *update.Duration
	}
	if update.Location != nil {
		event.Location = *update.Location
	}
	if update.MaxParticipants != nil {
		limit := *update.MaxParticipants
		event.MaxParticipants = &limit
	}
	if update.Category != nil {
		event.Category = *update.Category
	}
	if update.IsPublic != nil {
		event.IsPublic = *update.IsPublic
	}
	if update.IsActive != nil {
		event.IsActive = *update.IsActive
	}
	if update.Status != nil {
		event.Status = *update.Status
	}
	event.UpdatedAt = time.Now()

	s.events[id] = event
	return cloneEvent(event), true
}

// SetEventStatus persists a lazily recomputed status. It does not bump
// UpdatedAt: derived state is not a user edit. A stored cancelled status
// is terminal and is never overwritten here, even if the caller computed
// its value from a copy fetched before the cancellation landed.
func (s *Store) SetEventStatus(id string, st models.EventStatus) (models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return models.Event{}, false
	}

	if event.Status == models.StatusCancelled {
		return cloneEvent(event), true
	}

	event.Status = st
	s.events[id] = event
	return cloneEvent(event), true
}

// DeleteEvent removes the event, its participant set, and the event's
// entry in every registered user's registration set.
func (s *Store) DeleteEvent(id string) (models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return models.Event{}, false
	}

	delete(s.events, id)
	for userID := range s.participants[id] {
		delete(s.registrations[userID], id)
	}
	delete(s.participants, id)
	return cloneEvent(event), true
}

// RegisterUserForEvent inserts the registration edge into both mirrored
// indexes. The capacity check runs inside the same critical section as the
// insert, so two concurrent registrations cannot overshoot the limit.
func (s *Store) RegisterUserForEvent(userID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}
	event, ok := s.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	if _, ok := s.participants[eventID][userID]; ok {
		return ErrAlreadyRegistered
	}
	if event.MaxParticipants != nil && len(s.participants[eventID]) >= *event.MaxParticipants {
		return ErrEventFull
	}

	s.participants[eventID][userID] = struct{}{}
	s.registrations[userID][eventID] = struct{}{}
	return nil
}

// UnregisterUserFromEvent removes the edge from both indexes if present.
// Removing an edge that does not exist is not an error; the return value
// reports whether an edge was actually removed.
func (s *Store) UnregisterUserFromEvent(userID, eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.participants[eventID][userID]
	delete(s.participants[eventID], userID)
	delete(s.registrations[userID], eventID)
	return existed
}

func (s *Store) IsUserRegistered(userID, eventID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.participants[eventID][userID]
	return ok
}

func (s *Store) RegistrationCount(eventID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.participants[eventID])
}

// EventRegistrations returns the users registered for the event. IDs that
// no longer resolve to a live record are silently dropped.
func (s *Store) EventRegistrations(eventID string) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []models.User
	for userID := range s.participants[eventID] {
		if user, ok := s.users[userID]; ok {
			users = append(users, user)
		}
	}
	return users
}

// UserRegistrations returns the events the user is registered for. IDs
// that no longer resolve to a live record are silently dropped.
func (s *Store) UserRegistrations(userID string) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []models.Event
	for eventID := range s.registrations[userID] {
		if event, ok := s.events[eventID]; ok {
			events = append(events, cloneEvent(event))
		}
	}
	return events
}

func (s *Store) TotalUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users)
}

func (s *Store) TotalEvents() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.events)
}

// TotalRegistrations sums the sizes of all participant sets.
func (s *Store) TotalRegistrations() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, set := range s.participants {
		total += len(set)
	}
	return total
}

// Clear empties all four collections. Intended for test isolation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]models.User)
	s.events = make(map[string]models.Event)
	s.participants = make(map[string]map[string]struct{})
	s.registrations = make(map[string]map[string]struct{})
}

// cloneEvent deep-copies the one pointer field so callers cannot reach
// stored state through a fetched copy.
func cloneEvent(event models.Event) models.Event {
	if event.MaxParticipants != nil {
		limit := *event.MaxParticipants
		event.MaxParticipants = &limit
	}
	return event
}
