package utils

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"dj-booking-sync/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const maxAuditBody = 4096

var (
	secretField   = regexp.MustCompile(`("(?:client_secret|publishable_key)"\s*:\s*)"[^"]*"`)
	secretHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}
)

// RedactSecrets masks payment client secrets in a JSON body.
func RedactSecrets(body string) string {
	return secretField.ReplaceAllString(body, `$1"[REDACTED]"`)
}

func truncate(body string) string {
	if len(body) <= maxAuditBody {
		return body
	}
	cut := maxAuditBody
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "...[TRUNCATED]"
}

func sanitizeBody(raw []byte) string {
	return truncate(RedactSecrets(string(raw)))
}

// sanitizeHeaders renders raw headers with credential values masked.
func sanitizeHeaders(raw []byte) string {
	lines := strings.Split(string(raw), "\r\n")
	for i, line := range lines {
		for _, name := range secretHeaders {
			if len(line) > len(name) && strings.EqualFold(line[:len(name)+1], name+":") {
				lines[i] = name + ": [REDACTED]"
			}
		}
	}
	return strings.Join(lines, "\r\n")
}

// actor returns the subject of the admin token that authorized the request.
func actor(c *fiber.Ctx) string {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// CreateSanitizedLogEntry copies the finished exchange into an audit entry. The
// copies are required because fiber reuses the request buffers after the handler returns.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	return types.LogEntry{
		Method:          string([]byte(c.Method())),
		URL:             string([]byte(c.OriginalURL())),
		Actor:           actor(c),
		RequestBody:     sanitizeBody(c.Body()),
		ResponseBody:    sanitizeBody(c.Response().Body()),
		RequestHeaders:  sanitizeHeaders(c.Request().Header.Header()),
		ResponseHeaders: sanitizeHeaders(c.Response().Header.Header()),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
