package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSafeURL(t *testing.T) {
	a := NewURLAnalyzer(NewPatternCatalog(), testLogger())

	score, indicators := a.Analyze("https://www.google.com")

	assert.Equal(t, 0.0, score)
	assert.Empty(t, indicators)
}

func TestAnalyzeTyposquattedURL(t *testing.T) {
	a := NewURLAnalyzer(NewPatternCatalog(), testLogger())

	// paypa1 + secure + verify + account + login rules plus insecure scheme
	score, indicators := a.Analyze("http://paypa1.com/secure/verify-account-login")

	assert.Equal(t, 85.0, score)
	assert.Contains(t, indicators, "Suspicious pattern: paypa1")
	assert.Contains(t, indicators, "Not using secure HTTPS protocol")
}

func TestAnalyzeInsecureScheme(t *testing.T) {
	a := NewURLAnalyzer(NewPatternCatalog(), testLogger())

	score, indicators := a.Analyze("http://example.com")

	assert.Equal(t, 10.0, score)
	require.Len(t, indicators, 1)
	assert.Equal(t, "Not using secure HTTPS protocol", indicators[0])
}

func TestAnalyzeChecksAreAdditive(t *testing.T) {
	a := NewURLAnalyzer(NewPatternCatalog(), testLogger())

	// Shortener rule and insecure scheme fire independently.
	score, indicators := a.Analyze("http://bit.ly/abc")

	assert.Equal(t, 25.0, score)
	assert.Len(t, indicators, 2)
}

func TestAnalyzeLongURL(t *testing.T) {
	a := NewURLAnalyzer(NewPatternCatalog(), testLogger())

	score, indicators := a.Analyze("https://example.com/" + strings.Repeat("a", 100))

	assert.Equal(t, 5.0, score)
	assert.Contains(t, indicators, "Unusually long URL")
}

func TestAnalyzeSpecialCharacters(t *testing.T) {
	a := NewURLAnalyzer(NewPatternCatalog(), testLogger())

	score, indicators := a.Analyze("https://example.com/?a=!!!!")

	assert.Equal(t, 10.0, score)
	assert.Contains(t, indicators, "Excessive special characters")
}

func TestAnalyzeScoreClampedAt100(t *testing.T) {
	a := NewURLAnalyzer(NewPatternCatalog(), testLogger())

	// Many rules fire at once; the total must stay within bounds.
	score, _ := a.Analyze("http://bit.ly/paypa1-secure-verify-account-update-confirm-login!!!!@@" + strings.Repeat("x", 60))

	assert.Equal(t, 100.0, score)
}
