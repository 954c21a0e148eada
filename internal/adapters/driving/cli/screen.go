package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	screenTitle    string
	screenDesc     string
	screenDescFile string
	screenJSON     bool
)

var screenCmd = &cobra.Command{
	Use:   "screen [resume file]",
	Short: "Score a resume against a job posting",
	Long: `Extracts structured data from a resume and scores it against a job
posting. Both steps are cached: resubmitting the same resume for the
same job returns the stored result without any inference calls, and
resubmitting it for a different job reuses the stored extraction.`,
	Args: cobra.ExactArgs(1),
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().StringVarP(&screenTitle, "title", "t", "", "job title (required)")
	screenCmd.Flags().StringVarP(&screenDesc, "description", "d", "", "job description text")
	screenCmd.Flags().StringVar(&screenDescFile, "description-file", "", "file containing the job description")
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "output result as JSON")
	_ = screenCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	document, err := readDocument(args[0])
	if err != nil {
		return err
	}

	description, err := resolveDescription()
	if err != nil {
		return err
	}

	svc, err := ensureScreeningService()
	if err != nil {
		return err
	}

	result, err := svc.Process(context.Background(), document, screenTitle, description)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	if screenJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(renderScreenResult(result))
	return nil
}

// resolveDescription returns the job description from whichever flag
// the user supplied. Exactly one of the two must be set.
func resolveDescription() (string, error) {
	if screenDesc != "" && screenDescFile != "" {
		return "", errors.New("use either --description or --description-file, not both")
	}
	if screenDescFile != "" {
		data, err := os.ReadFile(screenDescFile)
		if err != nil {
			return "", fmt.Errorf("read description file: %w", err)
		}
		return string(data), nil
	}
	if strings.TrimSpace(screenDesc) == "" {
		return "", errors.New("a job description is required (--description or --description-file)")
	}
	return screenDesc, nil
}
