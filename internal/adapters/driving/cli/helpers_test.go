package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/talentsift/sift-cli/internal/adapters/driven/config/file"
	"github.com/talentsift/sift-cli/internal/adapters/driven/storage/memory"
	"github.com/talentsift/sift-cli/internal/core/domain"
	"github.com/talentsift/sift-cli/internal/core/services"
)

// stubScreener is a canned screener backend for command tests.
type stubScreener struct {
	extraction string
	scoring    string
}

func (s *stubScreener) Extract(_ context.Context, _ []byte) (domain.RawPayload, error) {
	return domain.RawPayload(s.extraction), nil
}

func (s *stubScreener) Score(_ context.Context, _ domain.RawPayload, _, _ string) (domain.RawPayload, error) {
	return domain.RawPayload(s.scoring), nil
}

func (s *stubScreener) ModelName() string           { return "stub-model" }
func (s *stubScreener) Ping(_ context.Context) error { return nil }
func (s *stubScreener) Close() error                 { return nil }

// setupTestServices wires the package-level services with in-memory
// fakes so commands run without a database or network access.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	tmpDir := t.TempDir()
	cs, err := file.NewConfigStore(tmpDir)
	require.NoError(t, err)
	ps, err := file.NewPromptStore(filepath.Join(tmpDir, "prompts"))
	require.NoError(t, err)

	store := memory.NewCacheStore()
	stub := &stubScreener{
		extraction: `{"full_name":"Jane Doe","skills":["Go","Python"]}`,
		scoring: `{"overall_score":7.5,"recommendation":"Strong Match",` +
			`"summary":"Solid backend candidate.",` +
			`"strengths":["Go expertise"],"concerns":["No cloud experience"]}`,
	}

	configStore = cs
	promptStore = ps
	cacheStore = store
	screener = stub
	screeningService = services.NewScreeningService(
		store.ExtractionStore(), store.ScoringStore(), stub, stub)

	return func() {
		configStore = nil
		promptStore = nil
		cacheStore = nil
		screener = nil
		screeningService = nil
		rootCmd.SetArgs(nil)
		resetFlags()
	}
}

// resetFlags clears flag state that cobra carries across executions.
func resetFlags() {
	screenTitle, screenDesc, screenDescFile, screenJSON = "", "", "", false
	parseJSON = false
	lookupTitle, lookupDesc = "", ""
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range c.Commands() {
			sub.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		}
	}
}

// writeTestResume writes a resume fixture and returns its path.
func writeTestResume(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
