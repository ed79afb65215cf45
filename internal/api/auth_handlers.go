package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nhle/waterwise/internal/model"
	"github.com/nhle/waterwise/internal/service"
)

// handleRegister handles POST /api/auth/register.
func (s *Server) handleRegister(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, signed, err := s.auth.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": signed, "user": user})
}

// handleLogin handles POST /api/auth/login.
func (s *Server) handleLogin(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, signed, err := s.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
}

// handleMe handles GET /api/auth/me.
func (s *Server) handleMe(c *gin.Context) {
	user, err := s.auth.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// handleUpdateHousehold handles PUT /api/auth/household.
func (s *Server) handleUpdateHousehold(c *gin.Context) {
	var household model.Household
	if err := c.ShouldBindJSON(&household); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, err := s.auth.UpdateHousehold(c.Request.Context(), currentUserID(c), household)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
