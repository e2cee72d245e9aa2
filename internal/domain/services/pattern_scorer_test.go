package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamguard/internal/domain/models"
	"scamguard/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestScoreBenignText(t *testing.T) {
	s := NewPatternScorer(NewPatternCatalog(), testLogger())

	score, matches := s.Score("see you at lunch tomorrow")

	assert.Equal(t, 0.0, score)
	assert.Empty(t, matches)
}

func TestScoreOTPPhrase(t *testing.T) {
	s := NewPatternScorer(NewPatternCatalog(), testLogger())

	score, matches := s.Score("please share otp")

	assert.Equal(t, 20.0, score)
	require.Len(t, matches, 1)
	assert.Equal(t, MatchOTPSharing, matches[0].Category)
	assert.Equal(t, models.SeverityHigh, matches[0].Severity)
	assert.Contains(t, matches[0].Matches, "share otp")
}

func TestScoreKeywords(t *testing.T) {
	s := NewPatternScorer(NewPatternCatalog(), testLogger())

	score, matches := s.Score("this is urgent, act now")

	assert.Equal(t, 10.0, score)
	require.Len(t, matches, 1)
	assert.Equal(t, MatchPhishingKeywords, matches[0].Category)
	assert.ElementsMatch(t, []string{"urgent", "act now"}, matches[0].Matches)
}

func TestScoreNamedPattern(t *testing.T) {
	s := NewPatternScorer(NewPatternCatalog(), testLogger())

	score, matches := s.Score("scan qr code to get quick payment")

	assert.Equal(t, 15.0, score)
	require.Len(t, matches, 1)
	assert.Equal(t, FamilyUPIScam, matches[0].Category)
	assert.Equal(t, "qr_code_scam", matches[0].Name)
	assert.Equal(t, models.SeverityHigh, matches[0].Severity)
}

func TestScoreTactics(t *testing.T) {
	s := NewPatternScorer(NewPatternCatalog(), testLogger())

	score, matches := s.Score("this is the police, you have an arrest warrant")

	assert.Equal(t, 20.0, score)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, MatchSocialEngineering, m.Category)
	}
	assert.Equal(t, "authority", matches[0].Name)
	assert.Equal(t, "fear", matches[1].Name)
}

func TestScoreClampedAt100(t *testing.T) {
	s := NewPatternScorer(NewPatternCatalog(), testLogger())

	text := "urgent immediately act now limited time expires today verify now " +
		"suspend locked blocked unauthorized confirm identity update required " +
		"action required prize winner lottery congratulations refund cashback " +
		"reward bonus"

	score, matches := s.Score(text)

	assert.Equal(t, 100.0, score)
	assert.NotEmpty(t, matches)
}

func TestScoreRecordsAtMostFiveKeywords(t *testing.T) {
	s := NewPatternScorer(NewPatternCatalog(), testLogger())

	_, matches := s.Score("urgent immediately act now limited time expires today verify now suspend")

	require.NotEmpty(t, matches)
	assert.Equal(t, MatchPhishingKeywords, matches[0].Category)
	assert.LessOrEqual(t, len(matches[0].Matches), 5)
}

func TestScoreDeterministic(t *testing.T) {
	s := NewPatternScorer(NewPatternCatalog(), testLogger())

	text := "URGENT: verify account now, share otp with customer support"

	score1, matches1 := s.Score(text)
	score2, matches2 := s.Score(text)

	assert.Equal(t, score1, score2)
	assert.Equal(t, matches1, matches2)
}
