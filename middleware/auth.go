package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dj-booking-sync/constants"
	"dj-booking-sync/logger"
	"dj-booking-sync/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSecret = errors.New("admin secret is not configured")

// IssueToken signs an HS256 admin token carrying the given permissions. A zero
// ttl issues a token that never expires.
func IssueToken(secret, subject string, permissions []string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         subject,
		"permissions": permissions,
		"iat":         now.Unix(),
	}
	if ttl != 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyToken checks the signature and expiry of an admin token.
func VerifyToken(secret, tokenString string) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequirePermissions lets the request through when the bearer token is valid and
// carries any of the permissions. constants.PermAny only checks the signature.
func RequirePermissions(secret string, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.Fail(err.Error()))
		}

		claims, err := VerifyToken(secret, token)
		if err != nil {
			logger.Warning("Admin token rejected: " + err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("Invalid or expired token"))
		}

		granted := permissionsFromClaims(claims)
		if !hasAny(granted, permissions) {
			return c.Status(fiber.StatusForbidden).JSON(types.Fail("Insufficient permissions"))
		}

		c.Locals("user", claims)
		c.Locals("permissions", granted)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if token := c.Cookies("access"); token != "" {
			return token, nil
		}
		return "", errors.New("Authorization token missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("Invalid authorization header format")
	}
	return parts[1], nil
}

func permissionsFromClaims(claims jwt.MapClaims) map[string]bool {
	set := make(map[string]bool)
	raw, ok := claims["permissions"].([]interface{})
	if !ok {
		return set
	}
	for _, p := range raw {
		if perm, ok := p.(string); ok {
			set[perm] = true
		}
	}
	return set
}

func hasAny(granted map[string]bool, required []string) bool {
	for _, perm := range required {
		if perm == constants.PermAny || granted[perm] {
			return true
		}
	}
	return false
}
