package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel is the coarse 3-tier classification of analyzed content
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Valid reports whether the level is one of the known tiers.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	}
	return false
}

// Severity represents the severity of a single risk signal
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ContentType represents the type of content being analyzed
type ContentType string

const (
	ContentTypeText        ContentType = "text"
	ContentTypeEmail       ContentType = "email"
	ContentTypeTransaction ContentType = "transaction"
	ContentTypeURL         ContentType = "url"
)

// ScamType classifies the scam family reported by the judgment service
type ScamType string

const (
	ScamTypePhishing          ScamType = "phishing"
	ScamTypeKYCFraud          ScamType = "kyc_fraud"
	ScamTypePrizeScam         ScamType = "prize_scam"
	ScamTypeUPIScam           ScamType = "upi_scam"
	ScamTypeJobScam           ScamType = "job_scam"
	ScamTypeInvestmentScam    ScamType = "investment_scam"
	ScamTypeImpersonation     ScamType = "impersonation"
	ScamTypeSocialEngineering ScamType = "social_engineering"
	ScamTypeNotAScam          ScamType = "not_a_scam"
)

// scamTypeCategories maps a scam type to its display category
var scamTypeCategories = map[ScamType]string{
	ScamTypePhishing:          "Phishing Attack",
	ScamTypeKYCFraud:          "Banking Scam",
	ScamTypePrizeScam:         "Prize/Lottery Scam",
	ScamTypeUPIScam:           "UPI/Payment Scam",
	ScamTypeJobScam:           "Job/Employment Scam",
	ScamTypeInvestmentScam:    "Investment Fraud",
	ScamTypeImpersonation:     "Impersonation Scam",
	ScamTypeSocialEngineering: "Social Engineering",
	ScamTypeNotAScam:          "Safe Content",
}

// Category returns the human-readable category for a scam type.
func (t ScamType) Category() string {
	if c, ok := scamTypeCategories[t]; ok {
		return c
	}
	return "Unknown Scam Type"
}

// RiskIndicator is a user-facing summary of one risk signal
type RiskIndicator struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Confidence  float64  `json:"confidence"`
}

// DetectedPattern describes one catalog rule family that fired
type DetectedPattern struct {
	Pattern     string   `json:"pattern"`
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// AnalysisResult is the final artifact returned for one analyze call.
// It is created once per call and never mutated afterwards.
type AnalysisResult struct {
	ID               uuid.UUID         `json:"id"`
	ContentType      ContentType       `json:"content_type"`
	RiskLevel        RiskLevel         `json:"risk_level"`
	RiskScore        float64           `json:"risk_score"` // 0-100
	Confidence       float64           `json:"confidence"` // 0.0-1.0
	Indicators       []RiskIndicator   `json:"indicators"`
	Patterns         []DetectedPattern `json:"patterns"`
	Explanation      string            `json:"explanation"`
	Recommendations  []string          `json:"recommendations"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
	AIPowered        bool              `json:"ai_powered"`
	AnalyzedAt       time.Time         `json:"analyzed_at"`
}

// VerdictIndicator is one indicator entry inside an AI verdict
type VerdictIndicator struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// AIVerdict is the structured judgment returned by the external content
// judgment service. It is untrusted input: consumers must clamp every
// numeric field before use.
type AIVerdict struct {
	IsScam          bool               `json:"is_scam"`
	RiskScore       float64            `json:"risk_score"`
	RiskLevel       RiskLevel          `json:"risk_level"`
	Confidence      float64            `json:"confidence"`
	ScamType        ScamType           `json:"scam_type"`
	Indicators      []VerdictIndicator `json:"indicators"`
	Explanation     string             `json:"explanation"`
	Recommendations []string           `json:"recommendations"`
}

// AnalyzeRequest is the request body for POST /api/v1/analyze
type AnalyzeRequest struct {
	Content string         `json:"content"`
	Type    ContentType    `json:"type,omitempty"`
	Meta    map[string]any `json:"metadata,omitempty"`
}

// AnalyzeURLRequest is the request body for POST /api/v1/analyze-url
type AnalyzeURLRequest struct {
	URL string `json:"url"`
}
