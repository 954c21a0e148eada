// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/talentsift/sift-cli/internal/adapters/driven/llm/groq"
	"github.com/talentsift/sift-cli/internal/core/domain"
	"github.com/talentsift/sift-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateScreenerService creates a screener service and validates
// connectivity. Returns the service if successful, or an error with guidance.
func CreateAndValidateScreenerService(settings *domain.LLMSettings, prompts driven.PromptStore) (driven.ScreenerService, error) {
	svc, err := CreateScreenerService(settings, prompts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'sift settings set-key' to fix",
			domain.ErrLLMUnavailable, err)
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'sift settings set-key' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateScreenerConfig validates a screener configuration by creating a
// service and pinging it. Intended for use when a new key is configured.
func ValidateScreenerConfig(settings *domain.LLMSettings) error {
	svc, err := CreateScreenerService(settings, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateScreenerService creates the appropriate screener service based on settings.
func CreateScreenerService(settings *domain.LLMSettings, prompts driven.PromptStore) (driven.ScreenerService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, fmt.Errorf("no API key configured")
	}

	switch settings.Provider {
	case domain.AIProviderGroq:
		return createGroqScreener(settings, prompts)

	default:
		return nil, fmt.Errorf("unsupported screener provider: %s", settings.Provider)
	}
}

// createGroqScreener creates a Groq screener service.
func createGroqScreener(settings *domain.LLMSettings, prompts driven.PromptStore) (driven.ScreenerService, error) {
	svc, err := groq.NewScreenerService(groq.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Weights: settings.Weights,
	})
	if err != nil {
		return nil, err
	}
	if prompts != nil {
		svc.SetPromptStore(prompts)
	}
	return svc, nil
}
