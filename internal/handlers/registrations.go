package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly-dev/gatherly/internal/access"
	"github.com/gatherly-dev/gatherly/internal/metrics"
	"github.com/gatherly-dev/gatherly/internal/models"
	"github.com/gatherly-dev/gatherly/internal/store"
	"github.com/gatherly-dev/gatherly/internal/types"
	"github.com/gatherly-dev/gatherly/internal/utils"
)

func (h *Handler) RegisterForEvent(ctx *gin.Context) {
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

	if !access.CanView(currentUser, event) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this event"})
		return
	}

	event = h.refreshStatus(event)
	if event.Status != models.StatusUpcoming {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Event is not open for registration"})
		return
	}

	// Duplicate and capacity checks happen inside the store's critical
	// section, so concurrent requests cannot overshoot the limit.
	if err := h.store.RegisterUserForEvent(currentUser.ID, event.ID); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyRegistered):
			ctx.JSON(http.StatusConflict, gin.H{"error": "Already registered for this event"})
		case errors.Is(err, store.ErrEventFull):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Event is full"})
		case errors.Is(err, store.ErrUserNotFound), errors.Is(err, store.ErrEventNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		default:
			h.logger.Error().Err(err).Msg("failed to register for event")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	metrics.RecordRegistration()

	go func() {
		if err := h.mailer.SendRegistrationConfirmation(currentUser, event); err != nil {
			h.logger.Warn().Err(err).Str("event_id", event.ID).Msg("registration email failed")
		}
	}()

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Registered successfully",
		"participants": h.store.RegistrationCount(event.ID),
	})
}

func (h *Handler) UnregisterFromEvent(ctx *gin.Context) {
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

	// Idempotent: unregistering without a registration is still success,
	// but only a real removal is counted.
	if h.store.UnregisterUserFromEvent(currentUser.ID, event.ID) {
		metrics.RecordUnregistration()
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Unregistered successfully",
		"participants": h.store.RegistrationCount(event.ID),
	})
}

func (h *Handler) MyRegistrations(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var response []types.EventResponse
	for _, event := range h.store.UserRegistrations(currentUser.ID) {
		event = h.refreshStatus(event)
		response = append(response, types.NewEventResponse(event, h.store.RegistrationCount(event.ID)))
	}

	ctx.JSON(http.StatusOK, gin.H{"events": response, "count": len(response)})
}
