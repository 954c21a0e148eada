package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse [resume file]",
	Short: "Extract structured data from a resume",
	Long: `Extracts structured candidate data from a resume without scoring it.
Repeat submissions of identical content are served from the extraction
cache without an inference call.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "output raw extraction JSON only")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	document, err := readDocument(args[0])
	if err != nil {
		return err
	}

	svc, err := ensureScreeningService()
	if err != nil {
		return err
	}

	result, err := svc.Parse(context.Background(), document)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, result.Extraction, "", "  "); err != nil {
		return fmt.Errorf("malformed extraction payload: %w", err)
	}

	if parseJSON {
		cmd.Println(pretty.String())
		return nil
	}

	cmd.Println(renderTitle("Extraction"))
	cmd.Printf("Document:  %s\n", result.Fingerprint.Short())
	cmd.Printf("Cached:    %s\n", renderCachedBadge(result.Cached))
	cmd.Println()
	cmd.Println(pretty.String())
	return nil
}
