package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// DefaultCookieName is the cookie carrying the session token
const DefaultCookieName = "token"

var (
	// ErrMissingToken is returned when a request carries no token
	ErrMissingToken = errors.New("authentication token is required")

	// ErrInvalidToken is returned when the token fails verification
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims represents JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret     string
	TokenDuration time.Duration
	Issuer        string
	CookieName    string
}

// AuthService handles authentication operations
type AuthService struct {
	config *AuthConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig) *AuthService {
	if config.TokenDuration == 0 {
		config.TokenDuration = 24 * time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "movie-reviews-api"
	}
	if config.CookieName == "" {
		config.CookieName = DefaultCookieName
	}
	return &AuthService{config: config}
}

// CookieName returns the name of the token cookie
func (a *AuthService) CookieName() string {
	return a.config.CookieName
}

// GenerateToken generates a signed token for a user
func (a *AuthService) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    a.config.Issuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(a.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a token and returns its claims
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.config.JWTSecret), nil
	}, jwt.WithIssuer(a.config.Issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// TokenFromCookieHeader extracts the token cookie from a raw Cookie header
func (a *AuthService) TokenFromCookieHeader(header string) string {
	if header == "" {
		return ""
	}
	cookies, err := http.ParseCookie(header)
	if err != nil {
		return ""
	}
	for _, c := range cookies {
		if c.Name == a.config.CookieName {
			return c.Value
		}
	}
	return ""
}

// Authorize verifies the token found in a Cookie header. It returns
// ErrMissingToken when there is none and ErrInvalidToken when it fails.
func (a *AuthService) Authorize(cookieHeader string) (*Claims, error) {
	token := a.TokenFromCookieHeader(cookieHeader)
	if token == "" {
		return nil, ErrMissingToken
	}
	return a.ValidateToken(token)
}

// Authentication middleware requires a valid token cookie. A Bearer
// Authorization header is accepted as a fallback for API clients.
func Authentication(authService *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			claims *Claims
			err    error
		)

		if bearer := bearerToken(c.GetHeader("Authorization")); bearer != "" && authService.TokenFromCookieHeader(c.GetHeader("Cookie")) == "" {
			claims, err = authService.ValidateToken(bearer)
		} else {
			claims, err = authService.Authorize(c.GetHeader("Cookie"))
		}

		if err != nil {
			status := http.StatusForbidden
			if errors.Is(err, ErrMissingToken) {
				status = http.StatusUnauthorized
			}

			logrus.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"status": status,
			}).Warn("Token validation failed")

			c.AbortWithStatusJSON(status, ErrorResponse{
				Error:     http.StatusText(status),
				Message:   err.Error(),
				RequestID: c.GetString(RequestIDKey),
				Timestamp: time.Now().Format(time.RFC3339),
			})
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("username", claims.Username)
		c.Set("claims", claims)

		logrus.WithFields(logrus.Fields{
			"username": claims.Username,
			"path":     c.Request.URL.Path,
		}).Debug("User authenticated successfully")

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserFromContext returns the authenticated username
func GetUserFromContext(c *gin.Context) (username string, ok bool) {
	v, exists := c.Get("username")
	if !exists {
		return "", false
	}
	username, ok = v.(string)
	return username, ok
}
