package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"scamguard/internal/domain/models"
	"scamguard/internal/domain/services"
	"scamguard/internal/infrastructure/cache"
	"scamguard/pkg/logger"
)

const (
	maxContentLength = 10000
	maxURLLength     = 2048
)

// AnalysisHandler handles content and URL analysis endpoints
type AnalysisHandler struct {
	engine   *services.AnalysisEngine
	cache    *cache.RedisCache
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(engine *services.AnalysisEngine, c *cache.RedisCache, cacheTTL time.Duration, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		engine:   engine,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   log.WithComponent("analysis-handler"),
	}
}

// AnalyzeContent handles POST /api/v1/analyze
func (h *AnalysisHandler) AnalyzeContent(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}
	if len(req.Content) > maxContentLength {
		respondError(w, http.StatusBadRequest, "content exceeds maximum length of 10000 characters")
		return
	}

	contentType := req.Type
	switch contentType {
	case "":
		contentType = models.ContentTypeText
	case models.ContentTypeText, models.ContentTypeEmail, models.ContentTypeTransaction:
	default:
		respondError(w, http.StatusBadRequest, "content type must be one of: text, email, transaction")
		return
	}

	key := cache.ResultKey(contentType, req.Content)
	if cached := h.cache.GetResult(r.Context(), key); cached != nil {
		h.logger.Debug().Str("content_type", string(contentType)).Msg("returning cached result")
		respondJSON(w, http.StatusOK, cached)
		return
	}

	result := h.engine.AnalyzeText(r.Context(), req.Content, contentType)
	h.cache.SetResult(r.Context(), key, result, h.cacheTTL)

	respondJSON(w, http.StatusOK, result)
}

// AnalyzeURL handles POST /api/v1/analyze-url
func (h *AnalysisHandler) AnalyzeURL(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}
	if len(req.URL) > maxURLLength {
		respondError(w, http.StatusBadRequest, "url exceeds maximum length of 2048 characters")
		return
	}
	if !validHTTPURL(req.URL) {
		respondError(w, http.StatusBadRequest, "url must be a valid http or https URL")
		return
	}

	key := cache.ResultKey(models.ContentTypeURL, req.URL)
	if cached := h.cache.GetResult(r.Context(), key); cached != nil {
		h.logger.Debug().Msg("returning cached result")
		respondJSON(w, http.StatusOK, cached)
		return
	}

	result := h.engine.AnalyzeURL(r.Context(), req.URL)
	h.cache.SetResult(r.Context(), key, result, h.cacheTTL)

	respondJSON(w, http.StatusOK, result)
}

func validHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
