package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/river20s/task-manager/services"
)

// AuthController serves the register/login/logout pages.
type AuthController struct {
	auth       *services.AuthService
	sessions   services.SessionStore
	sessionTTL time.Duration
	logger     *zap.SugaredLogger
}

func NewAuthController(auth *services.AuthService, sessions services.SessionStore, sessionTTL time.Duration, logger *zap.SugaredLogger) *AuthController {
	return &AuthController{auth: auth, sessions: sessions, sessionTTL: sessionTTL, logger: logger}
}

// ShowLogin renders the login form.
func (ac *AuthController) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login verifies the submitted credentials and establishes a session.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := ac.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid credentials"})
			return
		}
		ac.logger.Errorw("login failed", "error", err, "username", username)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	sessionID, err := ac.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		ac.logger.Errorw("session creation failed", "error", err, "userID", user.ID)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.SetCookie(services.SessionCookieName, sessionID, int(ac.sessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// ShowRegister renders the registration form.
func (ac *AuthController) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register creates a new account and sends the user to the login page.
func (ac *AuthController) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := ac.auth.Register(c.Request.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateUsername):
			c.HTML(http.StatusConflict, "register.html", gin.H{"Error": "Username already taken"})
		case errors.Is(err, services.ErrInvalidInput):
			c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": "Username and password are required"})
		default:
			ac.logger.Errorw("registration failed", "error", err, "username", username)
			c.String(http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// Logout deletes the session and clears the cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(services.SessionCookieName); err == nil && sessionID != "" {
		if err := ac.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			ac.logger.Errorw("session deletion failed", "error", err)
		}
	}

	c.SetCookie(services.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
