// Package api exposes the WaterWise services over a JSON HTTP API.
// Handlers map requests to service calls and service errors to status
// codes; no business logic lives here.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nhle/waterwise/internal/service"
	"github.com/nhle/waterwise/internal/token"
)

// Server wires the services to their HTTP routes.
type Server struct {
	auth          *service.AuthService
	usage         *service.UsageService
	lessons       *service.LessonService
	notifications *service.NotificationService
	tokens        *token.Manager
}

// NewServer creates a new API server.
func NewServer(
	auth *service.AuthService,
	usage *service.UsageService,
	lessons *service.LessonService,
	notifications *service.NotificationService,
	tokens *token.Manager,
) *Server {
	return &Server{
		auth:          auth,
		usage:         usage,
		lessons:       lessons,
		notifications: notifications,
		tokens:        tokens,
	}
}

// Router builds the Gin engine with all routes registered. Every route
// except register and login sits behind the bearer-token middleware.
func (s *Server) Router(corsAllowedOrigin string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsAllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/auth/register", s.handleRegister)
	r.POST("/api/auth/login", s.handleLogin)

	authed := r.Group("/api")
	authed.Use(requireAuth(s.tokens))
	{
		authed.GET("/auth/me", s.handleMe)
		authed.PUT("/auth/household", s.handleUpdateHousehold)

		authed.POST("/water-usage", s.handleLogUsage)
		authed.GET("/water-usage/stats", s.handleUsageStats)
		authed.GET("/water-usage/recent", s.handleRecentLogs)
		authed.GET("/water-usage/activities", s.handleActivityBreakdown)
		authed.GET("/water-usage/weekly", s.handleWeeklyReport)

		authed.GET("/lessons", s.handleListLessons)
		authed.GET("/lessons/next", s.handleNextLesson)
		authed.GET("/lessons/:id", s.handleGetLesson)
		authed.POST("/lessons/:id/complete", s.handleCompleteLesson)
		authed.GET("/progress", s.handleProgress)

		authed.GET("/notifications", s.handleListNotifications)
		authed.POST("/notifications", s.handleCreateNotification)
		authed.GET("/notifications/unread-count", s.handleUnreadCount)
		authed.PATCH("/notifications/read-all", s.handleMarkAllRead)
		authed.PATCH("/notifications/:id/read", s.handleMarkRead)
		authed.DELETE("/notifications/:id", s.handleDeleteNotification)
	}

	return r
}
