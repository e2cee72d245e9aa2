package services

import (
	"strings"

	"scamguard/internal/domain/models"
	"scamguard/pkg/logger"
)

// Per-category score contributions for rule-based text analysis.
const (
	pointsPerKeyword    = 5
	pointsPerNamedHit   = 15
	pointsOTPIndicator  = 20
	pointsPerTacticHit  = 10
	maxRecordedKeywords = 5
	maxScore            = 100
)

// PatternScorer scans text against the pattern catalog
type PatternScorer struct {
	catalog *PatternCatalog
	logger  *logger.Logger
}

// NewPatternScorer creates a new pattern scorer
func NewPatternScorer(catalog *PatternCatalog, log *logger.Logger) *PatternScorer {
	return &PatternScorer{
		catalog: catalog,
		logger:  log.WithComponent("pattern-scorer"),
	}
}

// Score matches text against the catalog and returns an additive risk score
// in [0,100] plus the matches that produced it. Categories are evaluated in
// a fixed order (keywords, named patterns, OTP indicators, tactics) so the
// match list is deterministic for a given input.
func (s *PatternScorer) Score(text string) (float64, []PatternMatch) {
	textLower := strings.ToLower(text)

	score := 0
	var matched []PatternMatch

	// Phishing keywords: every hit counts toward the score, up to five are
	// recorded as evidence.
	var keywordHits []string
	for _, kw := range s.catalog.PhishingKeywords.Keywords {
		if strings.Contains(textLower, kw) {
			keywordHits = append(keywordHits, kw)
		}
	}
	if len(keywordHits) > 0 {
		score += len(keywordHits) * pointsPerKeyword
		recorded := keywordHits
		if len(recorded) > maxRecordedKeywords {
			recorded = recorded[:maxRecordedKeywords]
		}
		matched = append(matched, PatternMatch{
			Category: MatchPhishingKeywords,
			Matches:  recorded,
			Severity: models.SeverityMedium,
		})
	}

	// Named scam families (UPI/payment and transaction fraud)
	for _, p := range s.catalog.NamedPatterns {
		var hits []string
		for _, kw := range p.Keywords {
			if strings.Contains(textLower, kw) {
				hits = append(hits, kw)
			}
		}
		if len(hits) > 0 {
			score += pointsPerNamedHit
			matched = append(matched, PatternMatch{
				Category:    p.Family,
				Name:        p.Name,
				Matches:     hits,
				Severity:    p.Severity,
				Description: p.Description,
			})
		}
	}

	// OTP solicitation phrases: a single hit is already a strong signal
	var otpHits []string
	for _, phrase := range s.catalog.OTPIndicators.Phrases {
		if strings.Contains(textLower, phrase) {
			otpHits = append(otpHits, phrase)
		}
	}
	if len(otpHits) > 0 {
		score += pointsOTPIndicator
		matched = append(matched, PatternMatch{
			Category: MatchOTPSharing,
			Matches:  otpHits,
			Severity: models.SeverityHigh,
		})
	}

	// Social-engineering tactics
	for _, t := range s.catalog.Tactics {
		var hits []string
		for _, kw := range t.Keywords {
			if strings.Contains(textLower, kw) {
				hits = append(hits, kw)
			}
		}
		if len(hits) > 0 {
			score += pointsPerTacticHit
			matched = append(matched, PatternMatch{
				Category: MatchSocialEngineering,
				Name:     t.Tactic,
				Matches:  hits,
				Severity: models.SeverityMedium,
			})
		}
	}

	if score > maxScore {
		score = maxScore
	}

	return float64(score), matched
}
