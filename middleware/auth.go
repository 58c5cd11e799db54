package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/river20s/task-manager/services"
)

// RequireAuth resolves the session cookie to a user identity and stores it
// in the context as "uid". Requests without a valid session are redirected
// to the login page.
func RequireAuth(store services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(services.SessionCookieName)
		if err != nil || sessionID == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		userID, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("uid", userID)
		c.Next()
	}
}
