package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	lookupTitle string
	lookupDesc  string
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the result cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache record counts",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheLookupCmd = &cobra.Command{
	Use:   "lookup [resume file]",
	Short: "Check cache presence for a document",
	Long: `Reports whether cached results exist for a resume without invoking
any inference. With --title and --description the scoring namespace is
checked for that document+job pair as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runCacheLookup,
}

func init() {
	cacheLookupCmd.Flags().StringVarP(&lookupTitle, "title", "t", "", "job title to check the scoring namespace")
	cacheLookupCmd.Flags().StringVarP(&lookupDesc, "description", "d", "", "job description to check the scoring namespace")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheLookupCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	store, err := ensureCacheStore()
	if err != nil {
		return err
	}

	stats, err := store.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("read cache stats: %w", err)
	}

	cmd.Println(renderTitle("Cache"))
	cmd.Printf("Extractions: %d\n", stats.Extractions)
	cmd.Printf("Scorings:    %d\n", stats.Scorings)
	return nil
}

func runCacheLookup(cmd *cobra.Command, args []string) error {
	document, err := readDocument(args[0])
	if err != nil {
		return err
	}

	store, err := ensureCacheStore()
	if err != nil {
		return err
	}

	// Lookup needs no screener backend; wire the service with nil
	// expensive operations since they are never invoked.
	svc := lookupService(store)

	result, err := svc.Lookup(context.Background(), document, lookupTitle, lookupDesc)
	if err != nil {
		return fmt.Errorf("cache lookup failed: %w", err)
	}

	cmd.Println(renderTitle("Cache lookup"))
	cmd.Printf("Document:    %s\n", result.Fingerprint)
	cmd.Printf("Extraction:  %s\n", renderCachedBadge(result.ExtractionPresent))
	if result.ScoringKey != "" {
		cmd.Printf("Scoring key: %s\n", result.ScoringKey)
		cmd.Printf("Scoring:     %s\n", renderCachedBadge(result.ScoringPresent))
	}
	return nil
}
