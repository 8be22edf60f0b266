package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"movie-reviews-api/internal/middleware"
)

// AuthHandler issues and inspects session tokens for the local server
type AuthHandler struct {
	authService *middleware.AuthService
	secure      bool
}

// NewAuthHandler creates a new authentication handler. secure marks the
// token cookie Secure.
func NewAuthHandler(authService *middleware.AuthService, secure bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		secure:      secure,
	}
}

// TokenRequest represents the token request body
type TokenRequest struct {
	Username string `json:"username"`
}

// TokenResponse is returned when a token is issued
type TokenResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// @Summary Issue a development token
// @Description Issue a token for username and set it as the auth cookie. Only available outside production.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest false "Username, defaults to demo-user"
// @Success 200 {object} TokenResponse
// @Failure 500 {object} ErrorResponse
// @Router /dev/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	// an empty body falls back to the demo user
	_ = c.ShouldBindJSON(&req)

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = "demo-user"
	}

	token, err := h.authService.GenerateToken(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to generate token",
			Message: err.Error(),
		})
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to validate new token",
			Message: err.Error(),
		})
		return
	}

	maxAge := int(time.Until(claims.ExpiresAt.Time).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.authService.CookieName(), token, maxAge, "/", "", h.secure, true)

	c.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		Username:  username,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// @Summary Get Current User
// @Description Get the user the auth cookie belongs to
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	username, _ := middleware.GetUserFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"username": username,
		"user_id":  c.GetString("user_id"),
	})
}

// @Summary Logout
// @Description Clear the auth cookie
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.authService.CookieName(), "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
