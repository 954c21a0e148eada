// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ExtractionStore: Extraction-namespace cache persistence
//   - ScoringStore: Scoring-namespace cache persistence
//   - ResumeExtractor: The expensive structured-extraction operation
//   - ResumeScorer: The expensive job-match scoring operation
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - PromptStore: User-customisable prompt templates. When nil,
//     adapters fall back to embedded defaults.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
