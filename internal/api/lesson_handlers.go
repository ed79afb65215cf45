package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleListLessons handles GET /api/lessons.
func (s *Server) handleListLessons(c *gin.Context) {
	lessons, err := s.lessons.ListLessons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// handleGetLesson handles GET /api/lessons/:id.
func (s *Server) handleGetLesson(c *gin.Context) {
	lesson, err := s.lessons.GetLesson(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// handleCompleteLesson handles POST /api/lessons/:id/complete.
func (s *Server) handleCompleteLesson(c *gin.Context) {
	var in struct {
		QuizScore *int `json:"quizScore"`
	}
	// An empty body means no quiz score.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "Invalid request body")
			return
		}
	}

	progress, err := s.lessons.CompleteLesson(c.Request.Context(), currentUserID(c), c.Param("id"), in.QuizScore)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// handleProgress handles GET /api/progress.
func (s *Server) handleProgress(c *gin.Context) {
	progress, err := s.lessons.Progress(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"completed_lessons": progress.CompletedLessons,
		"current_lesson_id": progress.CurrentLessonID,
		"total_lessons":     progress.TotalLessons,
		"progress":          progress.TotalProgress,
	})
}

// handleNextLesson handles GET /api/lessons/next.
func (s *Server) handleNextLesson(c *gin.Context) {
	lesson, err := s.lessons.NextLesson(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}
