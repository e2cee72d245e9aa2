package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scamguard/internal/domain/models"
	"scamguard/pkg/logger"
)

// ErrUnavailable is returned when no verdict can be obtained, for any
// reason: missing credentials, transport failure, or an unparseable
// response. Callers fall back to rule-only analysis.
var ErrUnavailable = errors.New("judgment service unavailable")

// Config holds configuration for the content judgment client
type Config struct {
	APIKey      string
	Model       string
	Endpoint    string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// Client submits content to the Gemini generateContent API and parses the
// structured verdict out of the model's reply.
type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
	config     Config
}

// NewClient creates a new judgment client
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3 // low temperature for factual analysis
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta"
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log.WithComponent("ai-client"),
		config:     cfg,
	}
}

// Available reports whether a service credential is configured.
func (c *Client) Available() bool {
	return c.config.APIKey != ""
}

// Judge submits content for analysis and returns the parsed verdict. Every
// failure mode collapses to ErrUnavailable; this method never panics and
// the error carries no transport detail the caller needs to act on. The
// verdict is untrusted: numeric fields are not validated here.
func (c *Client) Judge(ctx context.Context, content string, contentType models.ContentType) (*models.AIVerdict, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	raw, err := c.generate(ctx, buildJudgmentPrompt(content, contentType))
	if err != nil {
		c.logger.Warn().Err(err).Str("content_type", string(contentType)).Msg("judgment call failed")
		return nil, ErrUnavailable
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to parse judgment response")
		return nil, ErrUnavailable
	}

	return verdict, nil
}

// generate calls the Gemini generateContent endpoint and returns the text
// of the first candidate.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.config.Endpoint, c.config.Model, c.config.APIKey)

	reqBody := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     c.config.Temperature,
			"maxOutputTokens": c.config.MaxTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("judgment API error %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 {
		return "", fmt.Errorf("empty judgment response")
	}

	var content string
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		content += part.Text
	}

	return content, nil
}

// parseVerdict extracts the JSON verdict from the model's reply, stripping
// markdown code fences first.
func parseVerdict(content string) (*models.AIVerdict, error) {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	startIdx := strings.Index(content, "{")
	endIdx := strings.LastIndex(content, "}")
	if startIdx != -1 && endIdx != -1 && endIdx > startIdx {
		content = content[startIdx : endIdx+1]
	}

	var verdict models.AIVerdict
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &verdict, nil
}

// buildJudgmentPrompt builds the structured-judgment prompt
func buildJudgmentPrompt(content string, contentType models.ContentType) string {
	var sb strings.Builder

	sb.WriteString("You are an expert scam detection AI specialized in identifying fraud, phishing, and scam content.\n\n")
	fmt.Fprintf(&sb, "Analyze the following %s content and determine if it's a scam, phishing attempt, or fraudulent:\n\n", contentType)
	sb.WriteString("CONTENT TO ANALYZE:\n---\n")
	sb.WriteString(content)
	sb.WriteString("\n---\n\n")
	sb.WriteString(`Provide your analysis in the following JSON format ONLY (no other text):
{
    "is_scam": true/false,
    "risk_score": 0-100,
    "risk_level": "low" | "medium" | "high",
    "confidence": 0.0-1.0,
    "scam_type": "phishing" | "kyc_fraud" | "prize_scam" | "upi_scam" | "job_scam" | "investment_scam" | "impersonation" | "social_engineering" | "not_a_scam",
    "indicators": [
        {
            "type": "indicator_name",
            "description": "detailed description",
            "severity": "low" | "medium" | "high"
        }
    ],
    "explanation": "Detailed explanation of why this is or is not a scam",
    "recommendations": ["recommendation 1", "recommendation 2", "recommendation 3"]
}

Consider these scam indicators:
- Urgency/pressure tactics ("act now", "24 hours", "immediately")
- Requests for sensitive info (OTP, PIN, password, card details, Aadhaar, PAN)
- Prize/lottery claims
- Suspicious URLs (misspelled brands, unusual TLDs like .xyz, .top)
- Impersonation of banks, companies, or government
- KYC/account verification requests via SMS/email
- UPI/payment related scams
- Threatening language
- Too-good-to-be-true offers

Be thorough and accurate. Indian context scams are common (SBI, HDFC, Paytm, PhonePe, etc.).`)

	return sb.String()
}
