package services

import (
	"regexp"
	"strings"
	"unicode"

	"scamguard/pkg/logger"
)

var (
	longDigitRun = regexp.MustCompile(`\d{10,}`)
	bareURLToken = regexp.MustCompile(`https?://|www\.`)
)

// currencySymbols commonly seen in scam lures
var currencySymbols = []string{"$", "₹", "€", "£"}

// sensitiveTerms are requests for credentials or identity data
var sensitiveTerms = []string{
	"password", "pin", "otp", "cvv", "card number", "account number", "aadhaar", "pan",
}

// HeuristicClassifier scores surface features of raw text. It stands in for
// a trained model: a fixed rule set over punctuation, casing, digit runs,
// currency symbols, embedded URLs and sensitive-term mentions.
type HeuristicClassifier struct {
	logger *logger.Logger
}

// NewHeuristicClassifier creates a new heuristic classifier
func NewHeuristicClassifier(log *logger.Logger) *HeuristicClassifier {
	return &HeuristicClassifier{
		logger: log.WithComponent("heuristic-classifier"),
	}
}

// Classify returns a surface-feature risk score in [0,100].
func (c *HeuristicClassifier) Classify(text string) float64 {
	textLower := strings.ToLower(text)

	score := 0

	if strings.Count(text, "!") > 2 {
		score += 10
	}

	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	length := len([]rune(text))
	if length == 0 {
		length = 1
	}
	if float64(upper)/float64(length) > 0.3 {
		score += 15
	}

	if longDigitRun.MatchString(text) {
		score += 10
	}

	for _, sym := range currencySymbols {
		if strings.Contains(text, sym) {
			score += 5
			break
		}
	}

	if bareURLToken.MatchString(textLower) {
		score += 5
	}

	for _, term := range sensitiveTerms {
		if strings.Contains(textLower, term) {
			score += 25
			break
		}
	}

	if score > maxScore {
		score = maxScore
	}

	return float64(score)
}
