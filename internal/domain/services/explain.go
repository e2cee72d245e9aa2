package services

import (
	"fmt"
	"strings"

	"scamguard/internal/domain/models"
)

const noIndicatorsExplanation = "No significant scam indicators detected. However, always verify the source before taking action."

// recommendation checklists keyed by risk level, ordered by priority
var (
	highRiskRecommendations = []string{
		"🚫 Do NOT click on any links or download attachments",
		"🚫 Do NOT share any personal information, passwords, or OTPs",
		"⚠️ Report this message to the platform and relevant authorities",
		"🔍 Verify the sender's identity through official channels",
		"📞 Contact your bank immediately if financial information was shared",
	}
	mediumRiskRecommendations = []string{
		"⚠️ Exercise extreme caution before taking any action",
		"🔍 Verify the sender through independent, official channels",
		"🚫 Do not share sensitive information without verification",
		"📱 Contact the organization directly using official contact details",
		"💡 Report suspicious content to help protect others",
	}
	lowRiskRecommendations = []string{
		"✓ Content appears relatively safe, but remain cautious",
		"🔍 Verify sender identity if requesting sensitive information",
		"💡 Never share OTPs or passwords with anyone",
		"📚 Stay informed about common scam tactics",
	}
)

const httpsRecommendation = "🔒 Ensure the website uses HTTPS and has a valid certificate"

// Explain renders a deterministic explanation for a rule-based text result.
// Clauses appear in a fixed priority order so identical inputs produce
// byte-identical output.
func Explain(matches []PatternMatch, score float64, level models.RiskLevel) string {
	if len(matches) == 0 {
		return noIndicatorsExplanation
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "This content shows a %s risk level with a score of %.1f/100. ", level, score)

	categories := make(map[MatchCategory]bool, len(matches))
	for _, m := range matches {
		categories[m.Category] = true
	}

	if categories[MatchOTPSharing] {
		sb.WriteString("It requests sharing of OTP or verification codes, which is a major red flag. ")
	}
	if categories[FamilyUPIScam] {
		sb.WriteString("It exhibits patterns common in UPI/payment scams. ")
	}
	if categories[MatchPhishingKeywords] {
		sb.WriteString("It uses urgent or threatening language designed to pressure you into immediate action. ")
	}
	if categories[MatchSocialEngineering] {
		sb.WriteString("It employs psychological manipulation tactics. ")
	}

	sb.WriteString("Always verify through official channels before responding.")
	return sb.String()
}

// ExplainURL renders the rule-based explanation for a URL result.
func ExplainURL(indicators []string, level models.RiskLevel) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "URL analysis detected %d suspicious patterns. ", len(indicators))

	switch level {
	case models.RiskLevelHigh:
		sb.WriteString("This URL exhibits multiple characteristics of phishing or malicious sites.")
	case models.RiskLevelMedium:
		sb.WriteString("This URL shows some concerning patterns that warrant caution.")
	default:
		sb.WriteString("This URL appears relatively safe, but always verify the source.")
	}

	return sb.String()
}

// Recommend returns the fixed action checklist for a risk level. For URL
// content an HTTPS certificate check is appended.
func Recommend(level models.RiskLevel, contentType models.ContentType) []string {
	var recs []string
	switch level {
	case models.RiskLevelHigh:
		recs = append(recs, highRiskRecommendations...)
	case models.RiskLevelMedium:
		recs = append(recs, mediumRiskRecommendations...)
	default:
		recs = append(recs, lowRiskRecommendations...)
	}

	if contentType == models.ContentTypeURL {
		recs = append(recs, httpsRecommendation)
	}

	return recs
}

// MergeRecommendations combines AI-sourced recommendations with local ones.
// AI entries take precedence, local entries fill remaining slots, duplicates
// (by literal text) are dropped, and the result is capped at limit.
func MergeRecommendations(ai, local []string, limit int) []string {
	merged := make([]string, 0, limit)
	seen := make(map[string]bool)

	for _, lists := range [][]string{ai, local} {
		for _, r := range lists {
			if len(merged) >= limit {
				return merged
			}
			if r == "" || seen[r] {
				continue
			}
			seen[r] = true
			merged = append(merged, r)
		}
	}

	return merged
}
