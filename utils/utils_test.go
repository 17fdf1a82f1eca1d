package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dj-booking-sync/types"
)

func TestRedactSecrets(t *testing.T) {
	in := `{"success":true,"data":{"client_secret":"pi_1_secret_abc","payment_intent_id":"pi_1","publishable_key" : "pk_test_x"}}`
	out := RedactSecrets(in)

	assert.NotContains(t, out, "pi_1_secret_abc")
	assert.NotContains(t, out, "pk_test_x")
	assert.Contains(t, out, `"client_secret":"[REDACTED]"`)
	assert.Contains(t, out, `"payment_intent_id":"pi_1"`)
}

func TestCreateSanitizedLogEntry(t *testing.T) {
	var entry types.LogEntry
	app := fiber.New()
	app.Post("/pay", func(c *fiber.Ctx) error {
		err := c.Status(fiber.StatusCreated).JSON(fiber.Map{"client_secret": "pi_9_secret"})
		entry = CreateSanitizedLogEntry(c)
		return err
	})

	req := httptest.NewRequest(http.MethodPost, "/pay?x=1", strings.NewReader(strings.Repeat("a", maxAuditBody+10)))
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.MethodPost, entry.Method)
	assert.Equal(t, "/pay?x=1", entry.URL)
	assert.Equal(t, fiber.StatusCreated, entry.StatusCode)
	assert.True(t, strings.HasSuffix(entry.RequestBody, "...[TRUNCATED]"))
	assert.NotContains(t, entry.ResponseBody, "pi_9_secret")
	assert.NotContains(t, entry.RequestHeaders, "abc.def.ghi")
	assert.Contains(t, entry.RequestHeaders, "Authorization: [REDACTED]")
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	body := "a" + strings.Repeat("é", 3000)

	out := truncate(body)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, body[:4095]+"...[TRUNCATED]", out)

	assert.Equal(t, "short", truncate("short"))
}
