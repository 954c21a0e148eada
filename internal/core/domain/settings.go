package domain

// LLMSettings configures the inference provider that backs the
// expensive extract and score operations.
type LLMSettings struct {
	// Provider identifies the inference provider.
	Provider AIProvider

	// APIKey authenticates against the provider.
	APIKey string

	// Model is the model identifier (e.g. "llama-3.3-70b-versatile").
	Model string

	// BaseURL overrides the provider endpoint. Useful for
	// OpenAI-compatible gateways and for tests.
	BaseURL string

	// Weights are the scoring category weights rendered into the
	// scoring prompt. Zero value means DefaultScoringWeights.
	Weights ScoringWeights
}

// AIProvider identifies an inference provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGroq is the Groq cloud API (OpenAI-compatible).
	AIProviderGroq AIProvider = "groq"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	return p == AIProviderGroq
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// IsConfigured returns true when the settings are sufficient to build
// a client. Groq requires an API key.
func (s *LLMSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	return s.APIKey != ""
}

// ScoringWeights are the category weights rendered into the scoring
// prompt. They influence the model's arithmetic, not the cache key:
// two calls differing only in weights address the same scoring record.
type ScoringWeights struct {
	Skills         float64
	Experience     float64
	Education      float64
	Projects       float64
	Certifications float64
	CulturalFit    float64
}

// DefaultScoringWeights returns the standard category weights.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Skills:         0.30,
		Experience:     0.25,
		Education:      0.15,
		Projects:       0.15,
		Certifications: 0.10,
		CulturalFit:    0.05,
	}
}
