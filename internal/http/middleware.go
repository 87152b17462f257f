package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-tracker/internal/repository"
)

const (
	sessionCookie = "session"
	userIDKey     = "user_id"
)

func noCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Expires", "0")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}

// requireUser resolves the session cookie into a user id stored on the
// request. Anonymous requests, and sessions of users that no longer exist, are
// sent to the login page.
func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)
		userID, err := h.sessions.Parse(token)
		if err != nil {
			h.redirectToLogin(c)
			return
		}

		if _, err := h.users.GetByID(c.Request.Context(), userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				h.redirectToLogin(c)
				return
			}
			h.fail(c, err)
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (h *Handler) redirectToLogin(c *gin.Context) {
	h.clearSession(c)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// currentUserID is only valid behind requireUser.
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

func (h *Handler) startSession(c *gin.Context, userID int64) error {
	token, err := h.sessions.Issue(userID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	// no Max-Age: the cookie ends with the browser session, the token expiry bounds it otherwise
	c.SetCookie(sessionCookie, token, 0, "/", "", h.secureCookie, true)
	return nil
}

func (h *Handler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.secureCookie, true)
}
