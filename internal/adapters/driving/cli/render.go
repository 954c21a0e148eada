package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/talentsift/sift-cli/internal/core/ports/driving"
)

// Output styles, shared across commands.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8"))
)

// scoringSummary is the subset of the scoring payload the CLI knows
// how to render. The payload is stored and cached as-is; rendering is
// best-effort and falls back to raw JSON for unknown shapes.
type scoringSummary struct {
	OverallScore   *float64 `json:"overall_score"`
	Recommendation string   `json:"recommendation"`
	Summary        string   `json:"summary"`
	Strengths      []string `json:"strengths"`
	Concerns       []string `json:"concerns"`
}

func renderTitle(s string) string {
	return titleStyle.Render(s)
}

// renderCachedBadge renders a cache presence indicator.
func renderCachedBadge(cached bool) string {
	if cached {
		return successStyle.Render("cached")
	}
	return mutedStyle.Render("not cached")
}

// renderScreenResult renders a Process result for human consumption.
func renderScreenResult(result *driving.ProcessResult) string {
	var b strings.Builder

	b.WriteString(renderTitle("Screening result"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Document:   %s\n", result.Fingerprint.Short())
	fmt.Fprintf(&b, "Extraction: %s\n", renderCachedBadge(result.Status.ExtractionCached))
	fmt.Fprintf(&b, "Scoring:    %s\n", renderCachedBadge(result.Status.ScoringCached))
	b.WriteString("\n")

	var summary scoringSummary
	if err := json.Unmarshal(result.Scoring, &summary); err != nil || summary.OverallScore == nil {
		// Unknown payload shape: show it raw.
		b.WriteString(prettyJSON(result.Scoring))
		return b.String()
	}

	fmt.Fprintf(&b, "Score: %s", renderScore(*summary.OverallScore))
	if summary.Recommendation != "" {
		fmt.Fprintf(&b, "  (%s)", summary.Recommendation)
	}
	b.WriteString("\n")

	if summary.Summary != "" {
		b.WriteString("\n")
		b.WriteString(summary.Summary)
		b.WriteString("\n")
	}
	if len(summary.Strengths) > 0 {
		b.WriteString("\n")
		b.WriteString(successStyle.Render("Strengths"))
		b.WriteString("\n")
		for _, s := range summary.Strengths {
			fmt.Fprintf(&b, "  + %s\n", s)
		}
	}
	if len(summary.Concerns) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Concerns"))
		b.WriteString("\n")
		for _, c := range summary.Concerns {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
	}

	return b.String()
}

// renderScore colours an overall score by band.
func renderScore(score float64) string {
	text := fmt.Sprintf("%.1f/10", score)
	switch {
	case score >= 7:
		return successStyle.Render(text)
	case score >= 5:
		return warningStyle.Render(text)
	default:
		return errorStyle.Render(text)
	}
}

// prettyJSON indents a JSON payload, returning it unchanged when it
// cannot be indented.
func prettyJSON(payload []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return string(payload)
	}
	return buf.String()
}
