package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/filekeeper/internal/server/users"
	"github.com/gin-gonic/gin"
)

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
}

func (s *Server) fetchUser(c *gin.Context) {

	claims, ok := claimsFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, failResponse("Invalid token"))
		return
	}

	user, err := s.users.Get(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

func (s *Server) updateUser(c *gin.Context) {

	claims, ok := claimsFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, failResponse("Invalid token"))
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	params := users.UpdateParams{Name: req.Name, Email: req.Email, Password: req.Password}

	user, err := s.users.Update(c.Request.Context(), claims, c.Param("id"), params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

func (s *Server) deleteUser(c *gin.Context) {

	claims, ok := claimsFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, failResponse("Invalid token"))
		return
	}

	if err := s.users.Delete(c.Request.Context(), claims, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
