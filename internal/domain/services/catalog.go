package services

import (
	"regexp"

	"scamguard/internal/domain/models"
)

// MatchCategory identifies which catalog family produced a match
type MatchCategory string

const (
	MatchPhishingKeywords  MatchCategory = "phishing_keywords"
	MatchOTPSharing        MatchCategory = "otp_sharing"
	MatchSocialEngineering MatchCategory = "social_engineering"
)

// Named-pattern families. The family doubles as the match category for
// pattern records produced from named patterns.
const (
	FamilyUPIScam          MatchCategory = "upi_scam"
	FamilyTransactionFraud MatchCategory = "transaction_fraud"
)

// KeywordGroup is a labeled set of suspicious phrases, each hit scoring
// individually
type KeywordGroup struct {
	Label    string
	Keywords []string
}

// NamedPattern is a known scam family with its trigger keywords
type NamedPattern struct {
	Name        string
	Family      MatchCategory
	Keywords    []string
	Severity    models.Severity
	Description string
}

// IndicatorPhraseSet is a labeled set of phrases where any single hit is
// significant on its own
type IndicatorPhraseSet struct {
	Label   string
	Phrases []string
}

// TacticGroup is a social-engineering tactic with its trigger keywords
type TacticGroup struct {
	Tactic   string
	Keywords []string
}

// URLRule is one compiled red-flag rule for URL analysis
type URLRule struct {
	Expr    string
	pattern *regexp.Regexp
}

// PatternCatalog holds the reference data for rule-based detection. It is
// built once at startup and read-only afterwards, so it is safe for any
// number of concurrent readers.
type PatternCatalog struct {
	PhishingKeywords KeywordGroup
	NamedPatterns    []NamedPattern
	OTPIndicators    IndicatorPhraseSet
	Tactics          []TacticGroup
	URLRules         []URLRule
}

// NewPatternCatalog builds the default catalog.
func NewPatternCatalog() *PatternCatalog {
	c := &PatternCatalog{
		PhishingKeywords: KeywordGroup{
			Label: "phishing_keywords",
			Keywords: []string{
				// Urgency and threats
				"urgent", "immediately", "act now", "limited time", "expires today",
				"verify now", "suspend", "locked", "blocked", "unauthorized",
				"confirm identity", "update required", "action required",

				// Financial lures
				"prize", "winner", "lottery", "congratulations", "refund",
				"cashback", "reward", "bonus", "free money", "claim now",
				"tax refund", "government grant", "compensation",

				// Credential harvesting
				"verify account", "confirm password", "update payment",
				"billing problem", "payment failed", "reactivate",
				"click here", "click below", "verify here",

				// Impersonation
				"we are from", "customer support", "technical support",
				"security team", "fraud department", "verification team",

				// Generic scam indicators
				"dear customer", "dear user", "valued customer",
				"click link", "download attachment", "open file",
			},
		},
		NamedPatterns: []NamedPattern{
			{
				Name:        "fake_refund",
				Family:      FamilyUPIScam,
				Keywords:    []string{"refund", "payment reversed", "amount credited", "verify upi"},
				Severity:    models.SeverityHigh,
				Description: "Fake refund scam requesting UPI PIN or collect request",
			},
			{
				Name:        "qr_code_scam",
				Family:      FamilyUPIScam,
				Keywords:    []string{"scan qr", "qr code", "quick payment"},
				Severity:    models.SeverityHigh,
				Description: "Malicious QR code that requests payment instead of sending",
			},
			{
				Name:        "wrong_transfer",
				Family:      FamilyUPIScam,
				Keywords:    []string{"wrong transfer", "sent by mistake", "return money"},
				Severity:    models.SeverityMedium,
				Description: "Scammer claims accidental transfer and asks for return",
			},
			{
				Name:        "kyc_verification",
				Family:      FamilyUPIScam,
				Keywords:    []string{"kyc", "verify account", "update kyc", "block account"},
				Severity:    models.SeverityHigh,
				Description: "Fake KYC verification to steal banking credentials",
			},
			{
				Name:        "overpayment",
				Family:      FamilyTransactionFraud,
				Keywords:    []string{"sent extra", "refund difference", "wire back"},
				Severity:    models.SeverityHigh,
				Description: "Scammer sends more than required and asks for refund",
			},
			{
				Name:        "advance_fee",
				Family:      FamilyTransactionFraud,
				Keywords:    []string{"processing fee", "advance payment", "security deposit"},
				Severity:    models.SeverityMedium,
				Description: "Requesting payment before delivering service/product",
			},
			{
				Name:        "fake_invoice",
				Family:      FamilyTransactionFraud,
				Keywords:    []string{"payment overdue", "invoice attached", "account payable"},
				Severity:    models.SeverityMedium,
				Description: "Fraudulent invoice for services never ordered",
			},
		},
		OTPIndicators: IndicatorPhraseSet{
			Label: "otp_sharing",
			Phrases: []string{
				"share otp",
				"send otp",
				"tell me the code",
				"provide verification code",
				"otp received",
				"what is the otp",
				"read otp aloud",
				"customer care needs otp",
				"delivery needs otp",
			},
		},
		Tactics: []TacticGroup{
			{Tactic: "authority", Keywords: []string{"police", "government", "tax department", "legal notice"}},
			{Tactic: "fear", Keywords: []string{"arrest warrant", "legal action", "account suspended", "fraud detected"}},
			{Tactic: "urgency", Keywords: []string{"within 24 hours", "immediate action", "before midnight", "last chance"}},
			{Tactic: "greed", Keywords: []string{"exclusive offer", "limited slots", "100% profit", "risk-free"}},
			{Tactic: "curiosity", Keywords: []string{"you won't believe", "shocking news", "see who viewed your profile"}},
		},
		URLRules: []URLRule{
			// Shortened URLs
			{Expr: `bit\.ly`},
			{Expr: `tinyurl\.com`},
			{Expr: `goo\.gl`},
			{Expr: `ow\.ly`},
			{Expr: `t\.co`},

			// Suspicious TLDs
			{Expr: `\.tk$`},
			{Expr: `\.ml$`},
			{Expr: `\.ga$`},
			{Expr: `\.cf$`},
			{Expr: `\.gq$`},

			// IP addresses in URLs
			{Expr: `\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`},

			// Typosquatting (common misspellings)
			{Expr: `g00gle`},
			{Expr: `paypa1`},
			{Expr: `amazom`},
			{Expr: `faceb00k`},

			// Suspicious keywords in URL
			{Expr: `verify`},
			{Expr: `account`},
			{Expr: `secure`},
			{Expr: `update`},
			{Expr: `confirm`},
			{Expr: `login`},
		},
	}

	for i := range c.URLRules {
		c.URLRules[i].pattern = regexp.MustCompile(c.URLRules[i].Expr)
	}

	return c
}

// PatternMatch records which catalog rule fired and what triggered it.
// Produced fresh per scoring call.
type PatternMatch struct {
	Category    MatchCategory
	Name        string // pattern name or tactic, where applicable
	Matches     []string
	Severity    models.Severity
	Description string
}
