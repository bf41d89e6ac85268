// Package server contains the HTTP handlers for the application's endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"yatube/internal/middleware"
	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authCookie is the session cookie carrying the signed token.
const authCookie = "auth_token"

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// generateToken creates a signed token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      "yatube-api",
		"aud":      "yatube-client",
		"exp":      now.Add(time.Hour * 24 * 7).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parseToken validates a signed token string and returns the user ID it names.
func (s *Server) parseToken(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "yatube-api" {
		return 0, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "yatube-client" {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// optionalUserID extracts the signed-in user from the session cookie or a
// Bearer header without enforcing authentication.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	if cookie := c.Cookies(authCookie); cookie != "" {
		if userID, ok := s.parseToken(cookie); ok {
			return userID, true
		}
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}
	return s.parseToken(parts[1])
}

// RequireUser returns middleware that redirects guests to the login page,
// preserving the requested path in the next parameter.
func (s *Server) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := s.optionalUserID(c)
		if !ok {
			return c.Redirect("/auth/login/?next="+url.QueryEscape(c.Path()), fiber.StatusFound)
		}

		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// currentUserID returns the authenticated user set by RequireUser.
func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

// respondServiceError maps an application error to its HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case models.CodeUnauthorized:
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// saveImage stores an uploaded image under the media root with a fresh
// unguessable name and returns the stored relative path. A request without
// an image file returns an empty path and no error.
func (s *Server) saveImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", models.NewValidationError("Unsupported image type")
	}

	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(s.config.MediaRoot, name)); err != nil {
		return "", models.NewInternalError(err)
	}
	return name, nil
}

// parseGroupID reads an optional group reference from a form value. An empty
// value means no group.
func parseGroupID(raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, models.NewValidationError("Select a valid group")
	}
	groupID := uint(id)
	return &groupID, nil
}
