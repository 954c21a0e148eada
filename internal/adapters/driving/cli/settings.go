package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/talentsift/sift-cli/internal/adapters/driven/ai"
	"github.com/talentsift/sift-cli/internal/core/domain"
	"github.com/talentsift/sift-cli/internal/core/ports/driven"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the inference provider and cache options.

Use 'settings set-key' to store your Groq API key and 'settings show'
to review the current configuration.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the inference provider API key",
	Long: `Prompts for the Groq API key without echoing it, validates it against
the provider and persists it to the config file.`,
	RunE: runSettingsSetKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings := loadLLMSettings()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.Provider)
	model := settings.Model
	if model == "" {
		model = "(default)"
	}
	cmd.Printf("  Model: %s\n", model)
	if settings.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.BaseURL)
	}
	if settings.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	status := "configured"
	if !settings.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Scoring Weights]")
	w := settings.Weights
	cmd.Printf("  Skills: %.0f%%  Experience: %.0f%%  Education: %.0f%%\n",
		w.Skills*100, w.Experience*100, w.Education*100)
	cmd.Printf("  Projects: %.0f%%  Certifications: %.0f%%  Cultural Fit: %.0f%%\n",
		w.Projects*100, w.Certifications*100, w.CulturalFit*100)
	cmd.Println()

	cmd.Println("[Cache]")
	backend := configStore.GetString(driven.ConfigKeyStore)
	if backend == "" {
		backend = "sqlite"
	}
	cmd.Printf("  Store: %s\n", backend)
	cmd.Printf("  Config: %s\n", configStore.Path())

	if !settings.IsConfigured() {
		cmd.Println()
		cmd.Println("Run 'sift settings set-key' to configure the API key.")
	}

	return nil
}

func runSettingsSetKey(cmd *cobra.Command, _ []string) error {
	cmd.Print("Groq API key: ")
	apiKey := readPassword()
	cmd.Println()

	if apiKey == "" {
		return fmt.Errorf("no key entered")
	}

	settings := &domain.LLMSettings{
		Provider: domain.AIProviderGroq,
		APIKey:   apiKey,
		Model:    configStore.GetString(driven.ConfigKeyModel),
		BaseURL:  configStore.GetString(driven.ConfigKeyBaseURL),
	}

	cmd.Println("Validating key...")
	if err := ai.ValidateScreenerConfig(settings); err != nil {
		return fmt.Errorf("key validation failed: %w", err)
	}

	if err := configStore.Set(driven.ConfigKeyAPIKey, apiKey); err != nil {
		return fmt.Errorf("save key: %w", err)
	}

	cmd.Printf("Saved API key %s to %s\n", maskAPIKey(apiKey), configStore.Path())
	return nil
}

// readPassword reads a line from stdin without echoing when attached
// to a terminal.
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// maskAPIKey masks an API key for display, showing only first and last few chars.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
