// Package groq provides a screener service adapter using the Groq API.
//
// Groq exposes an OpenAI-compatible chat completions endpoint, so the
// wire format here is the standard /chat/completions shape with JSON
// response mode enabled for both operations.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/talentsift/sift-cli/internal/core/domain"
	"github.com/talentsift/sift-cli/internal/core/ports/driven"
)

// Ensure ScreenerService implements the interface.
var _ driven.ScreenerService = (*ScreenerService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
	DefaultTimeout = 120 * time.Second
)

// Operation temperatures. Extraction wants near-deterministic output;
// scoring tolerates slightly more variance for nuanced reasoning.
const (
	extractTemperature = 0.1
	scoreTemperature   = 0.2
)

// Config holds configuration for the Groq screener service.
type Config struct {
	// APIKey is the Groq API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.groq.com/openai/v1).
	// Can be changed for any OpenAI-compatible endpoint.
	BaseURL string

	// Model is the model to use (default: llama-3.3-70b-versatile).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// Weights are the scoring category weights rendered into the
	// scoring prompt. Zero value means DefaultScoringWeights.
	Weights domain.ScoringWeights
}

// ScreenerService provides resume extraction and scoring using the Groq API.
type ScreenerService struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	weights     domain.ScoringWeights
	promptStore driven.PromptStore
}

// chatCompletionRequest is the OpenAI-compatible /chat/completions request format.
type chatCompletionRequest struct {
	Model          string              `json:"model"`
	Messages       []chatCompletionMsg `json:"messages"`
	Temperature    float64             `json:"temperature,omitempty"`
	ResponseFormat *responseFormat     `json:"response_format,omitempty"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormat requests structured output mode.
type responseFormat struct {
	Type string `json:"type"`
}

// chatCompletionResponse is the OpenAI-compatible /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewScreenerService creates a new Groq screener service.
func NewScreenerService(cfg Config) (*ScreenerService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Weights == (domain.ScoringWeights{}) {
		cfg.Weights = domain.DefaultScoringWeights()
	}

	return &ScreenerService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		weights: cfg.Weights,
	}, nil
}

// Extract derives structured resume data from raw document bytes.
// Failures are wrapped in domain.ErrExtractionFailed; there is no
// internal retry, so a failed call leaves the caller free to decide.
func (s *ScreenerService) Extract(ctx context.Context, documentBytes []byte) (domain.RawPayload, error) {
	systemPrompt := s.loadPrompt(driven.PromptExtractSystem, defaultExtractSystemPrompt)
	userTemplate := s.loadPrompt(driven.PromptExtractUser, defaultExtractUserPrompt)
	userPrompt := fmt.Sprintf(userTemplate, string(documentBytes))

	messages := []chatCompletionMsg{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	content, err := s.chatCompletion(ctx, messages, extractTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	payload, err := asJSONPayload(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}
	return payload, nil
}

// Score evaluates an extraction result against a job posting.
// Failures are wrapped in domain.ErrScoringFailed.
func (s *ScreenerService) Score(ctx context.Context, extraction domain.RawPayload, jobTitle, jobDescription string) (domain.RawPayload, error) {
	systemPrompt := s.loadPrompt(driven.PromptScoreSystem, defaultScoreSystemPrompt)
	userTemplate := s.loadPrompt(driven.PromptScoreUser, defaultScoreUserPrompt)
	userPrompt := fmt.Sprintf(
		userTemplate,
		jobTitle,
		jobDescription,
		string(extraction),
		formatWeights(s.weights),
	)

	messages := []chatCompletionMsg{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	content, err := s.chatCompletion(ctx, messages, scoreTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrScoringFailed, err)
	}

	payload, err := asJSONPayload(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrScoringFailed, err)
	}
	return payload, nil
}

// chatCompletion is the internal implementation for both operations.
// JSON response mode is always requested; both prompts demand a JSON
// object as output.
func (s *ScreenerService) chatCompletion(ctx context.Context, messages []chatCompletionMsg, temperature float64) (string, error) {
	reqBody := chatCompletionRequest{
		Model:          s.model,
		Messages:       messages,
		Temperature:    temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("groq error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("groq: no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// asJSONPayload validates model output as a JSON document. Models in
// JSON mode occasionally wrap output in markdown fences; strip them
// before validating.
func asJSONPayload(content string) (domain.RawPayload, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if !json.Valid([]byte(trimmed)) {
		return nil, fmt.Errorf("model returned invalid JSON")
	}
	return domain.RawPayload(trimmed), nil
}

// formatWeights renders the scoring weights for the scoring prompt.
func formatWeights(w domain.ScoringWeights) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Skills: %.0f%%\n", w.Skills*100)
	fmt.Fprintf(&b, "- Experience: %.0f%%\n", w.Experience*100)
	fmt.Fprintf(&b, "- Education: %.0f%%\n", w.Education*100)
	fmt.Fprintf(&b, "- Projects: %.0f%%\n", w.Projects*100)
	fmt.Fprintf(&b, "- Certifications: %.0f%%\n", w.Certifications*100)
	fmt.Fprintf(&b, "- Cultural Fit: %.0f%%", w.CulturalFit*100)
	return b.String()
}

// ModelName returns the name of the model being used.
func (s *ScreenerService) ModelName() string {
	return s.model
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *ScreenerService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *ScreenerService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// Ping validates the service is reachable by checking the /models endpoint.
// This is a lightweight check that validates the API key without running inference.
func (s *ScreenerService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("groq: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("groq: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("groq: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("groq: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *ScreenerService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
