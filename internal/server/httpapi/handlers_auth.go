package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	// The route is public, but granting the admin role requires an admin
	// caller. An optional bearer token establishes who is asking.
	callerRole := s.optionalCallerRole(c)

	user, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role, callerRole)
	if err != nil {
		s.logger.Warn(c.Request.Context(), "registration rejected", "email", req.Email, "error", err)
		handleServiceError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "id", user.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"msg":     "New User Registered!",
		"id":      user.ID,
	})
}

func (s *Server) login(c *gin.Context) {

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Warn(c.Request.Context(), "login rejected", "email", req.Email, "error", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"msg":         "Login Successfull!",
		"accessToken": token,
		"tokenType":   "Bearer",
	})
}

// optionalCallerRole parses the Authorization header when one is present.
// An absent or invalid token simply leaves the caller anonymous; the
// registration flow decides whether that is enough.
func (s *Server) optionalCallerRole(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	claims, err := auth.ParseToken(parts[1], s.jwtSecret)
	if err != nil {
		return ""
	}

	return claims.Role
}
