package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptExtractSystem is the system prompt for structured resume
	// extraction. It has no format placeholders.
	PromptExtractSystem = "extract_system"

	// PromptExtractUser wraps the resume text for extraction.
	// The template expects a %s placeholder for the document text.
	PromptExtractUser = "extract_user"

	// PromptScoreSystem is the system prompt for job-match scoring.
	// It has no format placeholders.
	PromptScoreSystem = "score_system"

	// PromptScoreUser wraps the evaluation request. The template
	// expects %s (job title), %s (job description), %s (candidate
	// extraction JSON) and %s (rendered scoring weights) placeholders.
	PromptScoreUser = "score_user"
)
