package ingest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hashiroii/tiyin-server/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Ingest classifies one posted notification event
// POST /api/v1/notifications.
func (h *Handler) Ingest(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "package required"})
		return
	}

	result := h.service.Process(c.Request.Context(), userID, req.toEvent())
	if result.Subscription == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, result)
}
