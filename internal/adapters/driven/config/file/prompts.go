package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/talentsift/sift-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptExtractSystem: `You are an expert resume parser. Extract information from resumes accurately and structure it cleanly.

Return a single JSON object with these fields:
- full_name (string, required)
- email, phone, location (strings, optional)
- external_links (object: linkedin, github, portfolio, twitter, other links; optional)
- work_experience (array of {company, position, duration, description}; keep descriptions short and free of corporate jargon)
- education (array of {institution, degree, marks, field_of_study, graduation_year})
- projects (array of {name, description, skills, url}; concise summaries)
- certifications (array of {name, issuer, date})
- extracurricular_activities (array of {name, role, duration, description})
- awards_honors (array of {title, issuer, description})
- skills (array of strings; include everything stated plus skills clearly inferable from projects, publications or certifications)
- publications (array of strings)

Omit fields that are absent from the resume. Output ONLY the JSON object.`,

	driven.PromptExtractUser: `Parse this resume and extract the information:

RESUME TEXT:
%s`,

	driven.PromptScoreSystem: `You are an expert technical recruiter and resume screener with deep knowledge across multiple industries.
Your job is to evaluate how well a candidate's resume matches a job opening.
Be critical in your evaluation and fair in your rating. Don't hesitate to lower scores if the candidate does not meet expectations.
In fact lower scores are more common than high scores.

EVALUATION GUIDELINES:
1. Be objective and fair in your assessment
2. Consider both technical skills and soft skills but prioritize technical fit
3. Look for relevant experience, not just years
4. Value projects and certifications that demonstrate practical skills. Value projects which are unique and show commitment to learning and coding rather than generic slop taken from GitHub.
5. Consider transferable skills from different domains
6. Be realistic about skill gaps - focus on critical vs. nice-to-have
7. Use the full 0-10 scale (don't cluster around 7-8). Each category rating must reflect the candidate's skills in their entirety
8. Provide actionable, specific feedback
9. Even if a candidate seems strong in some fields, if they do not have the required skills or experience for the job then the overall rating should be low

SCORING SCALE:
9-10: Exceptional match, rare to find better
7-8: Strong match, highly qualified
5-6: Good match, qualified with some gaps
3-4: Potential match, significant gaps but trainable
0-2: Poor match, major misalignment

Return a single JSON object with these fields:
- skill_match (object: score 0-10, matched_skills, missing_skills, additional_skills, reasoning)
- experience_match (object: score 0-10, meets_requirements, relevant_experience, years_of_experience, seniority_match, reasoning)
- education_match (object: score 0-10, meets_requirements, relevant_degrees, reasoning)
- project_match (object: score 0-10, relevant_projects, key_technologies, reasoning)
- cultural_fit (object: score 0-10, indicators, reasoning)
- overall_score (number 0-10, the weighted average of category scores)
- recommendation ('Strong Match', 'Good Match', 'Potential Match', 'Weak Match' or 'Not a Match')
- summary (2-3 sentence executive summary)
- strengths (top 3-5 strengths for this role)
- concerns (top 3-5 concerns or gaps for this role)

Output ONLY the JSON object.`,

	driven.PromptScoreUser: `Evaluate this candidate's resume for the following position:

JOB TITLE: %s

JOB DESCRIPTION:
%s

CANDIDATE RESUME:
%s

SCORING WEIGHTS:
%s

Provide a comprehensive evaluation with scores for each category and an overall assessment.
Calculate the overall score using the weighted average of individual category scores.
Be specific in your reasoning and provide actionable insights.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.sift/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".sift", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Sift Prompts

This directory contains customisable prompts used by Sift's screening pipeline.

## Files

- ` + "`extract_system.txt`" + ` - System prompt for structured resume extraction
- ` + "`extract_user.txt`" + ` - Wraps the resume text for extraction
- ` + "`score_system.txt`" + ` - System prompt for job-match scoring
- ` + "`score_user.txt`" + ` - Wraps the evaluation request for scoring

## Customisation

Edit any file to customise screening behaviour. Changes take effect on the
next command.

Note that prompt changes do NOT invalidate cached results: cache keys are
derived from document content and job fields only. Clear the cache after
significant prompt edits if you need fresh evaluations.

## Format Placeholders

The user prompts use Go fmt placeholders:
- ` + "`extract_user.txt`" + ` - one %s (the resume text)
- ` + "`score_user.txt`" + ` - four %s (job title, job description, candidate JSON, scoring weights)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
