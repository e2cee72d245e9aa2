package services

import (
	"fmt"
	"strings"

	"scamguard/pkg/logger"
)

const (
	pointsPerURLRule     = 15
	pointsInsecureScheme = 10
	pointsLongURL        = 5
	pointsSpecialChars   = 10
	longURLThreshold     = 100
	specialCharThreshold = 3
	suspiciousURLCharset = "@!#$%^&*"
)

// URLAnalyzer scans a URL string for structural red flags
type URLAnalyzer struct {
	catalog *PatternCatalog
	logger  *logger.Logger
}

// NewURLAnalyzer creates a new URL analyzer
func NewURLAnalyzer(catalog *PatternCatalog, log *logger.Logger) *URLAnalyzer {
	return &URLAnalyzer{
		catalog: catalog,
		logger:  log.WithComponent("url-analyzer"),
	}
}

// Analyze checks the URL against the catalog's red-flag rules plus
// structural heuristics. Checks are independent and additive; the total is
// clamped to [0,100]. Each firing check appends a human-readable indicator.
func (a *URLAnalyzer) Analyze(url string) (float64, []string) {
	urlLower := strings.ToLower(url)

	score := 0
	var indicators []string

	for _, rule := range a.catalog.URLRules {
		if rule.pattern.MatchString(urlLower) {
			score += pointsPerURLRule
			indicators = append(indicators, fmt.Sprintf("Suspicious pattern: %s", rule.Expr))
		}
	}

	if !strings.HasPrefix(urlLower, "https://") {
		score += pointsInsecureScheme
		indicators = append(indicators, "Not using secure HTTPS protocol")
	}

	if len(url) > longURLThreshold {
		score += pointsLongURL
		indicators = append(indicators, "Unusually long URL")
	}

	specials := 0
	for _, c := range url {
		if strings.ContainsRune(suspiciousURLCharset, c) {
			specials++
		}
	}
	if specials > specialCharThreshold {
		score += pointsSpecialChars
		indicators = append(indicators, "Excessive special characters")
	}

	if score > maxScore {
		score = maxScore
	}

	return float64(score), indicators
}
