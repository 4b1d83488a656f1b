package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKey protège les routes d'administration : la clé est attendue en
// query (?adminKey=) ou dans le header X-Admin-Key et doit être égale au
// secret configuré. Une clé absente ou différente court-circuite la route.
func AdminKey(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Query("adminKey")
		if key == "" {
			key = c.GetHeader("X-Admin-Key")
		}

		if key == "" || key != secret {
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden: Admin only"})
			c.Abort()
			return
		}
		c.Next()
	}
}
