package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamguard/internal/domain/models"
	"scamguard/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

const verdictJSON = `{
	"is_scam": true,
	"risk_score": 85,
	"risk_level": "high",
	"confidence": 0.92,
	"scam_type": "upi_scam",
	"indicators": [
		{"type": "payment_fraud", "description": "UPI collect request", "severity": "high"}
	],
	"explanation": "Impersonates a payment provider.",
	"recommendations": ["Block the sender"]
}`

func TestParseVerdictPlainJSON(t *testing.T) {
	verdict, err := parseVerdict(verdictJSON)

	require.NoError(t, err)
	assert.True(t, verdict.IsScam)
	assert.Equal(t, 85.0, verdict.RiskScore)
	assert.Equal(t, models.RiskLevelHigh, verdict.RiskLevel)
	assert.Equal(t, models.ScamTypeUPIScam, verdict.ScamType)
	require.Len(t, verdict.Indicators, 1)
	assert.Equal(t, "payment_fraud", verdict.Indicators[0].Type)
}

func TestParseVerdictMarkdownFence(t *testing.T) {
	verdict, err := parseVerdict("```json\n" + verdictJSON + "\n```")

	require.NoError(t, err)
	assert.Equal(t, 0.92, verdict.Confidence)
}

func TestParseVerdictBareFence(t *testing.T) {
	verdict, err := parseVerdict("```\n" + verdictJSON + "\n```")

	require.NoError(t, err)
	assert.True(t, verdict.IsScam)
}

func TestParseVerdictSurroundingProse(t *testing.T) {
	verdict, err := parseVerdict("Here is my analysis:\n" + verdictJSON + "\nLet me know if you need more.")

	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelHigh, verdict.RiskLevel)
}

func TestParseVerdictInvalid(t *testing.T) {
	_, err := parseVerdict("I could not analyze this content.")

	assert.Error(t, err)
}

func TestJudgeWithoutAPIKey(t *testing.T) {
	c := NewClient(Config{}, testLogger())

	assert.False(t, c.Available())

	_, err := c.Judge(context.Background(), "content", models.ContentTypeText)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestJudgeParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")

		resp := map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"parts": []map[string]string{
							{"text": "```json\n" + verdictJSON + "\n```"},
						},
					},
					"finishReason": "STOP",
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", Endpoint: srv.URL}, testLogger())

	verdict, err := c.Judge(context.Background(), "pay via upi to claim refund", models.ContentTypeText)

	require.NoError(t, err)
	assert.True(t, verdict.IsScam)
	assert.Equal(t, models.ScamTypeUPIScam, verdict.ScamType)
	assert.Equal(t, []string{"Block the sender"}, verdict.Recommendations)
}

func TestJudgeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", Endpoint: srv.URL}, testLogger())

	_, err := c.Judge(context.Background(), "content", models.ContentTypeText)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestJudgeEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", Endpoint: srv.URL}, testLogger())

	_, err := c.Judge(context.Background(), "content", models.ContentTypeText)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{APIKey: "k"}, testLogger())

	assert.Equal(t, "gemini-2.0-flash", c.config.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", c.config.Endpoint)
	assert.NotZero(t, c.config.Timeout)
}
