package httpapi

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// authMiddleware verifies the bearer token and stores its claims in the gin
// context. It keeps no server-side session state.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failResponse("No token, authorization denied"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failResponse("Invalid token"))
			return
		}

		claims, err := auth.ParseToken(parts[1], s.jwtSecret)
		if err != nil {
			s.logger.Warn(c.Request.Context(), "token verification failed", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, failResponse("Invalid token"))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ownershipGate rejects roles outside the allowed set, then checks the
// ownership policy against the :id path parameter. Runs after
// authMiddleware.
func (s *Server) ownershipGate(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {

		claims, ok := claimsFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failResponse("Invalid token"))
			return
		}

		if !slices.Contains(allowed, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, failResponse("Access denied"))
			return
		}

		if !auth.CanAccess(claims.Role, claims.UserID, c.Param("id")) {
			c.AbortWithStatusJSON(http.StatusForbidden, failResponse("User can only CRUD themselves."))
			return
		}

		c.Next()
	}
}

func claimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
