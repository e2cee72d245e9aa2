package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamguard/internal/domain/models"
)

func TestExplainNoMatches(t *testing.T) {
	got := Explain(nil, 0, models.RiskLevelLow)

	assert.Equal(t, "No significant scam indicators detected. However, always verify the source before taking action.", got)
}

func TestExplainClauseOrder(t *testing.T) {
	matches := []PatternMatch{
		{Category: MatchPhishingKeywords},
		{Category: MatchOTPSharing},
		{Category: MatchSocialEngineering},
	}

	got := Explain(matches, 75, models.RiskLevelHigh)

	assert.True(t, strings.HasPrefix(got, "This content shows a high risk level with a score of 75.0/100. "))
	assert.True(t, strings.HasSuffix(got, "Always verify through official channels before responding."))

	otpIdx := strings.Index(got, "OTP or verification codes")
	phishingIdx := strings.Index(got, "urgent or threatening language")
	tacticsIdx := strings.Index(got, "psychological manipulation")
	require.NotEqual(t, -1, otpIdx)
	require.NotEqual(t, -1, phishingIdx)
	require.NotEqual(t, -1, tacticsIdx)
	assert.Less(t, otpIdx, phishingIdx)
	assert.Less(t, phishingIdx, tacticsIdx)
}

func TestExplainDeterministic(t *testing.T) {
	matches := []PatternMatch{
		{Category: MatchOTPSharing},
		{Category: FamilyUPIScam, Name: "fake_refund"},
	}

	assert.Equal(t,
		Explain(matches, 42.5, models.RiskLevelMedium),
		Explain(matches, 42.5, models.RiskLevelMedium))
}

func TestExplainURLByLevel(t *testing.T) {
	indicators := []string{"Suspicious pattern: paypa1", "Not using secure HTTPS protocol"}

	high := ExplainURL(indicators, models.RiskLevelHigh)
	assert.True(t, strings.HasPrefix(high, "URL analysis detected 2 suspicious patterns. "))
	assert.Contains(t, high, "phishing or malicious")

	medium := ExplainURL(indicators, models.RiskLevelMedium)
	assert.Contains(t, medium, "warrant caution")

	low := ExplainURL(nil, models.RiskLevelLow)
	assert.True(t, strings.HasPrefix(low, "URL analysis detected 0 suspicious patterns. "))
	assert.Contains(t, low, "relatively safe")
}

func TestRecommendAppendsHTTPSForURLs(t *testing.T) {
	recs := Recommend(models.RiskLevelHigh, models.ContentTypeURL)

	require.Len(t, recs, 6)
	assert.Equal(t, httpsRecommendation, recs[5])
}

func TestRecommendByLevel(t *testing.T) {
	assert.Len(t, Recommend(models.RiskLevelHigh, models.ContentTypeText), 5)
	assert.Len(t, Recommend(models.RiskLevelMedium, models.ContentTypeText), 5)
	assert.Len(t, Recommend(models.RiskLevelLow, models.ContentTypeText), 4)
}

func TestMergeRecommendationsAIFirst(t *testing.T) {
	merged := MergeRecommendations(
		[]string{"A", "B"},
		[]string{"B", "C", "D", "E", "F"},
		5,
	)

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, merged)
}

func TestMergeRecommendationsSkipsEmpty(t *testing.T) {
	merged := MergeRecommendations([]string{"", "A"}, []string{"A", ""}, 5)

	assert.Equal(t, []string{"A"}, merged)
}
