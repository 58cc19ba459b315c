package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	data := NewEmailData("Blogs", "Blogs Inc", "https://help.example.com", "alice", "alice@example.com", WithTime(at))

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Blogs, alice", subject)
	assert.Contains(t, text, "alice@example.com")
	assert.Contains(t, text, "01 March 2026, 09:30")
	assert.Contains(t, html, `href="https://help.example.com"`)
	assert.Contains(t, html, "Blogs Inc")
}

func TestRenderFallsBackOnEmptyBranding(t *testing.T) {
	subject, text, _, err := Render(Welcome, NewEmailData("", "", "", "bob", "bob@example.com"))
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Blogs, bob", subject)
	assert.NotContains(t, text, "Need help?")
}

func TestRenderEscapesHTML(t *testing.T) {
	_, _, html, err := Render(Welcome, NewEmailData("Blogs", "", "", "<b>eve</b>", "eve@example.com"))
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>eve</b>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", EmailData{})
	assert.Error(t, err)
}
