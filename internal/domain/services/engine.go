package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"scamguard/internal/domain/models"
	"scamguard/pkg/logger"
)

// Risk-level thresholds applied to the 0-100 score. The Node prototype of
// this service shipped a second table (35/70) alongside this one; 30/60 is
// the canonical pair and is applied uniformly in every mode.
const (
	MediumRiskThreshold = 30
	HighRiskThreshold   = 60
)

// Fusion weights and confidence constants.
const (
	patternWeight   = 0.7 // rule-based pattern score share (text)
	heuristicWeight = 0.3 // heuristic classifier share (text)
	verdictWeight   = 0.6 // AI verdict share (url blend)
	localURLWeight  = 0.4 // local analyzer share (url blend)

	ruleOnlyTextConfidence = 0.75
	urlConfidence          = 0.88
	defaultAIConfidence    = 0.85
)

// Hard caps on result list lengths.
const (
	maxIndicators      = 5
	maxPatterns        = 3
	maxRecommendations = 5
)

// Judge is the capability boundary to the external content judgment
// service. An error from Judge means no verdict is available; it carries no
// detail the engine acts on.
type Judge interface {
	Judge(ctx context.Context, content string, contentType models.ContentType) (*models.AIVerdict, error)
}

// AnalysisEngine fuses rule-based scoring, heuristic classification and the
// optional AI verdict into one bounded result. It holds no mutable state;
// concurrent calls are independent.
type AnalysisEngine struct {
	patterns  *PatternScorer
	heuristic *HeuristicClassifier
	urls      *URLAnalyzer
	judge     Judge // nil when no judgment service is configured
	logger    *logger.Logger
}

// NewAnalysisEngine creates a new analysis engine
func NewAnalysisEngine(catalog *PatternCatalog, judge Judge, log *logger.Logger) *AnalysisEngine {
	return &AnalysisEngine{
		patterns:  NewPatternScorer(catalog, log),
		heuristic: NewHeuristicClassifier(log),
		urls:      NewURLAnalyzer(catalog, log),
		judge:     judge,
		logger:    log.WithComponent("analysis-engine"),
	}
}

// RiskLevelForScore maps a 0-100 score to the three-tier risk level.
func RiskLevelForScore(score float64) models.RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return models.RiskLevelHigh
	case score >= MediumRiskThreshold:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// AnalyzeText analyzes text content for scam indicators. The caller is
// expected to pass validated, non-empty content; the engine itself cannot
// fail and always returns a complete result.
func (e *AnalysisEngine) AnalyzeText(ctx context.Context, content string, contentType models.ContentType) *models.AnalysisResult {
	start := time.Now()

	patternScore, matches := e.patterns.Score(content)
	verdict := e.requestVerdict(ctx, content, contentType)

	var result *models.AnalysisResult
	if verdict != nil {
		result = e.synthesizeTextVerdict(verdict, matches, contentType)
	} else {
		result = e.synthesizeTextRuleOnly(patternScore, matches, content, contentType)
	}

	result.ID = uuid.New()
	result.ContentType = contentType
	result.AIPowered = verdict != nil
	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	result.AnalyzedAt = time.Now().UTC()

	e.logger.Debug().
		Str("risk_level", string(result.RiskLevel)).
		Float64("risk_score", result.RiskScore).
		Bool("ai_powered", result.AIPowered).
		Msg("text analysis complete")

	return result
}

// AnalyzeURL analyzes a URL string for structural and reputational risk.
func (e *AnalysisEngine) AnalyzeURL(ctx context.Context, url string) *models.AnalysisResult {
	start := time.Now()

	localScore, urlIndicators := e.urls.Analyze(url)
	verdict := e.requestVerdict(ctx, url, models.ContentTypeURL)

	var result *models.AnalysisResult
	if verdict != nil {
		result = e.synthesizeURLVerdict(verdict, localScore, urlIndicators)
	} else {
		result = e.synthesizeURLRuleOnly(localScore, urlIndicators)
	}

	result.ID = uuid.New()
	result.ContentType = models.ContentTypeURL
	result.AIPowered = verdict != nil
	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	result.AnalyzedAt = time.Now().UTC()

	e.logger.Debug().
		Str("risk_level", string(result.RiskLevel)).
		Float64("risk_score", result.RiskScore).
		Bool("ai_powered", result.AIPowered).
		Msg("url analysis complete")

	return result
}

// requestVerdict asks the judgment service for a verdict; any failure,
// including cancellation and timeout, degrades silently to rule-only mode.
func (e *AnalysisEngine) requestVerdict(ctx context.Context, content string, contentType models.ContentType) *models.AIVerdict {
	if e.judge == nil {
		return nil
	}
	verdict, err := e.judge.Judge(ctx, content, contentType)
	if err != nil {
		e.logger.Debug().Err(err).Msg("no verdict available, using rule-only analysis")
		return nil
	}
	return verdict
}

// synthesizeTextVerdict builds an AI-assisted text result: the verdict is
// the primary signal, supplemented by local pattern matches.
func (e *AnalysisEngine) synthesizeTextVerdict(verdict *models.AIVerdict, matches []PatternMatch, contentType models.ContentType) *models.AnalysisResult {
	score := clampScore(verdict.RiskScore)
	confidence := clampUnit(verdict.Confidence)
	if confidence == 0 {
		confidence = defaultAIConfidence
	}
	level := verdict.RiskLevel
	if !level.Valid() {
		level = RiskLevelForScore(score)
	}

	// AI indicators first, then local rule indicators that add a new type.
	indicators := make([]models.RiskIndicator, 0, maxIndicators)
	seenTypes := make(map[string]bool)
	for _, vi := range verdict.Indicators {
		if len(indicators) >= maxIndicators {
			break
		}
		ind := models.RiskIndicator{
			Type:        vi.Type,
			Description: vi.Description,
			Severity:    normalizeSeverity(vi.Severity),
			Confidence:  confidence,
		}
		indicators = append(indicators, ind)
		seenTypes[ind.Type] = true
	}
	for _, ind := range formatIndicators(matches) {
		if len(indicators) >= maxIndicators {
			break
		}
		if seenTypes[ind.Type] {
			continue
		}
		seenTypes[ind.Type] = true
		indicators = append(indicators, ind)
	}

	patterns := patternsFromScamType(verdict.ScamType, level)

	explanation := verdict.Explanation
	if explanation == "" {
		explanation = Explain(matches, score, level)
	}

	recommendations := MergeRecommendations(verdict.Recommendations, Recommend(level, contentType), maxRecommendations)

	return &models.AnalysisResult{
		RiskLevel:       level,
		RiskScore:       score,
		Confidence:      confidence,
		Indicators:      indicators,
		Patterns:        patterns,
		Explanation:     explanation,
		Recommendations: recommendations,
	}
}

// synthesizeTextRuleOnly builds a deterministic text result from the local
// scorers alone.
func (e *AnalysisEngine) synthesizeTextRuleOnly(patternScore float64, matches []PatternMatch, content string, contentType models.ContentType) *models.AnalysisResult {
	heuristicScore := e.heuristic.Classify(content)
	combined := patternWeight*patternScore + heuristicWeight*heuristicScore
	score := roundScore(combined)
	level := RiskLevelForScore(combined)

	indicators := formatIndicators(matches)
	if len(indicators) > maxIndicators {
		indicators = indicators[:maxIndicators]
	}

	patterns := formatPatterns(matches)

	recommendations := Recommend(level, contentType)
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return &models.AnalysisResult{
		RiskLevel:       level,
		RiskScore:       score,
		Confidence:      ruleOnlyTextConfidence,
		Indicators:      indicators,
		Patterns:        patterns,
		Explanation:     Explain(matches, combined, level),
		Recommendations: recommendations,
	}
}

// synthesizeURLVerdict blends the AI verdict with the local URL score. The
// external signal is never allowed to lower a locally detected high-risk
// determination: the final score is floored at the local score.
func (e *AnalysisEngine) synthesizeURLVerdict(verdict *models.AIVerdict, localScore float64, urlIndicators []string) *models.AnalysisResult {
	verdictScore := clampScore(verdict.RiskScore)
	blended := verdictWeight*verdictScore + localURLWeight*localScore
	score := math.Max(blended, localScore)
	level := RiskLevelForScore(score)

	confidence := clampUnit(verdict.Confidence)
	if confidence == 0 {
		confidence = defaultAIConfidence
	}

	indicators := make([]models.RiskIndicator, 0, maxIndicators)
	for _, vi := range verdict.Indicators {
		if len(indicators) >= maxIndicators {
			break
		}
		indicators = append(indicators, models.RiskIndicator{
			Type:        "url_" + vi.Type,
			Description: vi.Description,
			Severity:    normalizeSeverity(vi.Severity),
			Confidence:  confidence,
		})
	}

	patterns := patternsFromScamType(verdict.ScamType, level)

	explanation := verdict.Explanation
	if explanation == "" {
		explanation = ExplainURL(urlIndicators, level)
	}

	recommendations := MergeRecommendations(verdict.Recommendations, Recommend(level, models.ContentTypeURL), maxRecommendations)

	return &models.AnalysisResult{
		RiskLevel:       level,
		RiskScore:       roundScore(score),
		Confidence:      confidence,
		Indicators:      indicators,
		Patterns:        patterns,
		Explanation:     explanation,
		Recommendations: recommendations,
	}
}

// synthesizeURLRuleOnly builds a URL result from the local analyzer alone.
func (e *AnalysisEngine) synthesizeURLRuleOnly(localScore float64, urlIndicators []string) *models.AnalysisResult {
	level := RiskLevelForScore(localScore)

	severity := models.SeverityMedium
	if localScore > 50 {
		severity = models.SeverityHigh
	}

	indicators := make([]models.RiskIndicator, 0, maxIndicators)
	for _, desc := range urlIndicators {
		if len(indicators) >= maxIndicators {
			break
		}
		indicators = append(indicators, models.RiskIndicator{
			Type:        "url_pattern",
			Description: desc,
			Severity:    severity,
			Confidence:  0.8,
		})
	}

	recommendations := Recommend(level, models.ContentTypeURL)
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return &models.AnalysisResult{
		RiskLevel:       level,
		RiskScore:       roundScore(localScore),
		Confidence:      urlConfidence,
		Indicators:      indicators,
		Patterns:        []models.DetectedPattern{},
		Explanation:     ExplainURL(urlIndicators, level),
		Recommendations: recommendations,
	}
}

// patternsFromScamType derives the result pattern list from an AI verdict's
// scam type. "not_a_scam" yields no patterns.
func patternsFromScamType(scamType models.ScamType, level models.RiskLevel) []models.DetectedPattern {
	if scamType == "" || scamType == models.ScamTypeNotAScam {
		return []models.DetectedPattern{}
	}

	return []models.DetectedPattern{
		{
			Pattern:     string(scamType),
			Category:    scamType.Category(),
			Severity:    models.Severity(level),
			Description: fmt.Sprintf("AI detected %s pattern", strings.ReplaceAll(string(scamType), "_", " ")),
		},
	}
}

// formatIndicators converts pattern matches into user-facing risk
// indicators, one per match, in match order.
func formatIndicators(matches []PatternMatch) []models.RiskIndicator {
	indicators := make([]models.RiskIndicator, 0, maxIndicators)

	for _, m := range matches {
		if len(indicators) >= maxIndicators {
			break
		}
		switch m.Category {
		case MatchPhishingKeywords:
			evidence := m.Matches
			if len(evidence) > 3 {
				evidence = evidence[:3]
			}
			indicators = append(indicators, models.RiskIndicator{
				Type:        "suspicious_language",
				Description: "Contains urgent or threatening language: " + strings.Join(evidence, ", "),
				Severity:    m.Severity,
				Confidence:  0.85,
			})
		case FamilyUPIScam:
			indicators = append(indicators, models.RiskIndicator{
				Type:        "payment_fraud",
				Description: m.Description,
				Severity:    m.Severity,
				Confidence:  0.92,
			})
		case FamilyTransactionFraud:
			indicators = append(indicators, models.RiskIndicator{
				Type:        "transaction_fraud",
				Description: m.Description,
				Severity:    m.Severity,
				Confidence:  0.9,
			})
		case MatchOTPSharing:
			indicators = append(indicators, models.RiskIndicator{
				Type:        "credential_theft",
				Description: "Requests sharing of OTP or verification code",
				Severity:    models.SeverityHigh,
				Confidence:  0.95,
			})
		case MatchSocialEngineering:
			indicators = append(indicators, models.RiskIndicator{
				Type:        "manipulation",
				Description: fmt.Sprintf("Uses %s tactics to manipulate", m.Name),
				Severity:    m.Severity,
				Confidence:  0.8,
			})
		}
	}

	return indicators
}

// formatPatterns converts pattern matches into the result's pattern list.
func formatPatterns(matches []PatternMatch) []models.DetectedPattern {
	patterns := make([]models.DetectedPattern, 0, maxPatterns)

	for _, m := range matches {
		if len(patterns) >= maxPatterns {
			break
		}
		name := m.Name
		if name == "" {
			name = string(m.Category)
		}
		description := m.Description
		if description == "" {
			description = "Suspicious pattern detected"
		}
		patterns = append(patterns, models.DetectedPattern{
			Pattern:     name,
			Category:    matchCategoryLabel(m.Category),
			Severity:    m.Severity,
			Description: description,
		})
	}

	return patterns
}

// matchCategoryLabel maps a match category to its display name.
func matchCategoryLabel(category MatchCategory) string {
	switch category {
	case MatchPhishingKeywords:
		return "Phishing Language"
	case FamilyUPIScam:
		return "UPI/Payment Scam"
	case FamilyTransactionFraud:
		return "Transaction Fraud"
	case MatchOTPSharing:
		return "Credential Theft"
	case MatchSocialEngineering:
		return "Social Engineering"
	default:
		return "General Scam"
	}
}

// normalizeSeverity coerces an untrusted severity value to a known tier.
func normalizeSeverity(s models.Severity) models.Severity {
	switch s {
	case models.SeverityLow, models.SeverityMedium, models.SeverityHigh:
		return s
	default:
		return models.SeverityMedium
	}
}

func clampScore(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampUnit(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
