package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"contactless-ordering/utils"
)

// RequireRoles aborts with 403 unless the authenticated user holds one of
// the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondErrorStatus(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		utils.RespondErrorStatus(c, http.StatusForbidden,
			fmt.Errorf("user role %v is not authorized to access this route", userRole))
		c.Abort()
	}
}
