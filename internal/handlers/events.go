package handlers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gatherly-dev/gatherly/internal/access"
	"github.com/gatherly-dev/gatherly/internal/models"
	"github.com/gatherly-dev/gatherly/internal/status"
	"github.com/gatherly-dev/gatherly/internal/types"
	"github.com/gatherly-dev/gatherly/internal/utils"
)

var timePattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

type CreateEventRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Duration        int    `json:"duration" binding:"omitempty,gt=0"`
	Location        string `json:"location"`
	MaxParticipants *int   `json:"max_participants" binding:"omitempty,gt=0"`
	Category        string `json:"category"`
	IsPublic        *bool  `json:"is_public"`
}

type UpdateEventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	Duration        *int    `json:"duration" binding:"omitempty,gt=0"`
	Location        *string `json:"location"`
	MaxParticipants *int    `json:"max_participants" binding:"omitempty,gt=0"`
	Category        *string `json:"category"`
	IsPublic        *bool   `json:"is_public"`
	Status          *string `json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

func (h *Handler) CreateEvent(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !access.CanCreateEvents(currentUser) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only organizers can create events"})
		return
	}

	var body CreateEventRequest
	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !timePattern.MatchString(body.Time) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Time must be in HH:MM format"})
		return
	}

	if _, err := time.ParseInLocation(status.DateLayout, body.Date, time.Local); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
		return
	}

	duration := body.Duration
	if duration == 0 {
		duration = 60
	}

	category := strings.TrimSpace(body.Category)
	if category == "" {
		category = "General"
	}

	isPublic := true
	if body.IsPublic != nil {
		isPublic = *body.IsPublic
	}

	now := h.now()
	event := models.Event{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(body.Title),
		Description:     body.Description,
		Date:            body.Date,
		Time:            body.Time,
		Duration:        duration,
		Location:        body.Location,
		MaxParticipants: body.MaxParticipants,
		OrganizerID:     currentUser.ID,
		Category:        category,
		IsPublic:        isPublic,
		IsActive:        true,
		Status:          models.StatusUpcoming,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// The start may not lie in the past, measured against the start of
	// today so a same-day event at an earlier hour is still accepted.
	start, err := status.StartTime(event)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event date or time"})
		return
	}
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if start.Before(startOfToday) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Event date cannot be in the past"})
		return
	}

	event.Status = status.Compute(event, now)

	if err := h.store.CreateEvent(event); err != nil {
		h.logger.Error().Err(err).Msg("failed to create event")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	go func() {
		if err := h.mailer.SendEventCreated(currentUser, event); err != nil {
			h.logger.Warn().Err(err).Str("event_id", event.ID).Msg("event created email failed")
		}
	}()

	ctx.JSON(http.StatusCreated, types.NewEventResponse(event, 0))
}

func (h *Handler) ListEvents(ctx *gin.Context) {
	currentUser, _ := utils.GetCurrentUser(ctx)

	var response []types.EventResponse
	for _, event := range h.store.Events() {
		if !event.IsActive {
			continue
		}
		if !access.CanView(currentUser, event) {
			continue
		}
		event = h.refreshStatus(event)
		response = append(response, types.NewEventResponse(event, h.store.RegistrationCount(event.ID)))
	}

	ctx.JSON(http.StatusOK, gin.H{"events": response, "count": len(response)})
}

func (h *Handler) GetEvent(ctx *gin.Context) {
	currentUser, _ := utils.GetCurrentUser(ctx)

	event, ok := h.store.EventByID(ctx.Param("id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if !access.CanView(currentUser, event) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this event"})
		return
	}

	event = h.refreshStatus(event)
	ctx.JSON(http.StatusOK, types.NewEventResponse(event, h.store.RegistrationCount(event.ID)))
}

func (h *Handler) UpdateEvent(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, ok := h.store.EventByID(ctx.Param("id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if !access.IsOwner(currentUser, event) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the organizer can modify this event"})
		return
	}

	var body UpdateEventRequest
	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Time != nil && !timePattern.MatchString(*body.Time) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Time must be in HH:MM format"})
		return
	}

	if body.Date != nil {
		if _, err := time.ParseInLocation(status.DateLayout, *body.Date, time.Local); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
			return
		}
	}

	update := models.EventUpdate{
		Title:           body.Title,
		Description:     body.Description,
		Date:            body.Date,
		Time:            body.Time,
		Duration:        body.Duration,
		Location:        body.Location,
		MaxParticipants: body.MaxParticipants,
		Category:        body.Category,
		IsPublic:        body.IsPublic,
	}

	if body.Status != nil {
		st := models.EventStatus(*body.Status)
		update.Status = &st
	}

	updated, ok := h.store.UpdateEvent(event.ID, update)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	ctx.JSON(http.StatusOK, types.NewEventResponse(updated, h.store.RegistrationCount(updated.ID)))
}

func (h *Handler) DeleteEvent(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, ok := h.store.EventByID(ctx.Param("id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if !access.IsOwner(currentUser, event) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the organizer can delete this event"})
		return
	}

	// Cascades: every participant's registration set drops this event.
	if _, ok := h.store.DeleteEvent(event.ID); !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (h *Handler) MyEvents(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var response []types.EventResponse
	for _, event := range h.store.EventsByOrganizer(currentUser.ID) {
		event = h.refreshStatus(event)
		response = append(response, types.NewEventResponse(event, h.store.RegistrationCount(event.ID)))
	}

	ctx.JSON(http.StatusOK, gin.H{"events": response, "count": len(response)})
}

func (h *Handler) EventParticipants(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, ok := h.store.EventByID(ctx.Param("id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if !access.IsOwner(currentUser, event) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the organizer can view participants"})
		return
	}

	participants := h.store.EventRegistrations(event.ID)
	response := make([]types.UserResponse, 0, len(participants))
	for _, participant := range participants {
		response = append(response, types.NewUserResponse(participant))
	}

	ctx.JSON(http.StatusOK, gin.H{"participants": response, "count": len(response)})
}

// refreshStatus derives the event's current status and persists it when
// it changed. Status is recomputed lazily on read paths only; there is no
// background timer.
func (h *Handler) refreshStatus(event models.Event) models.Event {
	current := status.Compute(event, h.now())
	if current == event.Status {
		return event
	}

	updated, ok := h.store.SetEventStatus(event.ID, current)
	if !ok {
		return event
	}
	return updated
}
