package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nhle/waterwise/internal/service"
)

// handleListNotifications handles GET /api/notifications.
// Query params: unreadOnly, type, limit.
func (s *Server) handleListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	opts := service.ListOptions{
		UnreadOnly: c.Query("unreadOnly") == "true",
		Type:       c.Query("type"),
		Limit:      limit,
	}

	notifications, err := s.notifications.List(c.Request.Context(), currentUserID(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// handleCreateNotification handles POST /api/notifications.
func (s *Server) handleCreateNotification(c *gin.Context) {
	var in service.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	n, err := s.notifications.Create(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// handleMarkRead handles PATCH /api/notifications/:id/read.
func (s *Server) handleMarkRead(c *gin.Context) {
	if err := s.notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// handleMarkAllRead handles PATCH /api/notifications/read-all.
func (s *Server) handleMarkAllRead(c *gin.Context) {
	if err := s.notifications.MarkAllRead(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// handleDeleteNotification handles DELETE /api/notifications/:id.
func (s *Server) handleDeleteNotification(c *gin.Context) {
	if err := s.notifications.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// handleUnreadCount handles GET /api/notifications/unread-count.
func (s *Server) handleUnreadCount(c *gin.Context) {
	count, err := s.notifications.UnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
