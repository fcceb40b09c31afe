package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"total_users":         h.store.TotalUsers(),
		"total_events":        h.store.TotalEvents(),
		"total_registrations": h.store.TotalRegistrations(),
	})
}
