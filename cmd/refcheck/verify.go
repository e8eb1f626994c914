package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LyzardKing/refchecker/internal/arxivapi"
	"github.com/LyzardKing/refchecker/internal/compare"
	"github.com/LyzardKing/refchecker/internal/config"
	"github.com/LyzardKing/refchecker/internal/extract"
	"github.com/LyzardKing/refchecker/internal/localdb"
	"github.com/LyzardKing/refchecker/internal/match"
	"github.com/LyzardKing/refchecker/internal/openalex"
	"github.com/LyzardKing/refchecker/internal/reference"
	"github.com/LyzardKing/refchecker/internal/report"
	"github.com/LyzardKing/refchecker/internal/resolve"
	"github.com/LyzardKing/refchecker/internal/s2"
)

var (
	verifyWorkers   int
	verifyProviders string
	verifyLocalDB   string
)

func init() {
	verifyCmd.Flags().IntVar(&verifyWorkers, "workers", 0, "Number of references verified concurrently (default from config)")
	verifyCmd.Flags().StringVar(&verifyProviders, "providers", "", "Comma-separated provider priority order (default from config)")
	verifyCmd.Flags().StringVar(&verifyLocalDB, "local-db", "", "Path to an offline SQLite paper database")
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify the references of a paper",
	Long: `Verify the references of a paper against scholarly databases.

The input format is chosen by extension:
  .pdf    references section extracted from the PDF text
  .json   a JSON array of structured reference claims
  other   plain text bibliography, one entry per number or blank line

Use "-" to read a plain text bibliography from stdin.

Exit code is 1 when any reference has an error-level discrepancy.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	applyVerifyFlags(cfg)

	claims, err := loadClaims(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if len(claims) == 0 {
		exitWithError(ExitDataError, "no bibliography entries found in %s", args[0])
	}

	providers, cleanup, err := buildProviders(cfg)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	defer cleanup()

	resolver := resolve.New(providers, newMatcher(cfg),
		resolve.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		resolve.WithLogger(newLogger()))

	resolutions := resolver.ResolveAll(cmd.Context(), claims, cfg.Workers)

	comparator := compare.New(compare.Config{
		StrictTitle: cfg.Thresholds.StrictTitle,
		Venue:       cfg.Thresholds.Venue,
	})
	discrepancies := make([][]compare.Discrepancy, len(resolutions))
	for i, res := range resolutions {
		discrepancies[i] = comparator.Compare(res)
	}

	rep := report.Aggregate(resolutions, discrepancies)

	if humanOutput {
		printHumanReport(rep)
	} else {
		outputJSON(rep)
	}

	if rep.Summary.Errors > 0 {
		os.Exit(ExitError)
	}
	return nil
}

func applyVerifyFlags(cfg *config.Config) {
	if verifyWorkers > 0 {
		cfg.Workers = verifyWorkers
	}
	if verifyProviders != "" {
		cfg.Providers = strings.Split(verifyProviders, ",")
	}
	if verifyLocalDB != "" {
		cfg.LocalDBPath = config.ExpandTilde(verifyLocalDB)
		if !containsProvider(cfg.Providers, localdb.ProviderName) {
			cfg.Providers = append([]string{localdb.ProviderName}, cfg.Providers...)
		}
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
}

func containsProvider(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// loadClaims reads bibliography claims from a file, chosen by extension.
func loadClaims(path string) ([]reference.Claim, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return extract.Entries(string(data)), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extract.FromPDF(path)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var claims []reference.Claim
		if err := json.Unmarshal(data, &claims); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return claims, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return extract.Entries(string(data)), nil
	}
}

// buildProviders constructs the provider chain in configured priority
// order. The cleanup function closes any opened local database.
func buildProviders(cfg *config.Config) ([]resolve.Provider, func(), error) {
	var providers []resolve.Provider
	cleanup := func() {}

	for _, name := range cfg.Providers {
		switch name {
		case localdb.ProviderName:
			if cfg.LocalDBPath == "" {
				return nil, cleanup, fmt.Errorf("provider localdb requires local_db_path")
			}
			db, err := localdb.Open(cfg.LocalDBPath)
			if err != nil {
				return nil, cleanup, fmt.Errorf("opening local database: %w", err)
			}
			cleanup = func() { db.Close() }
			providers = append(providers, localdb.NewProvider(db))
		case s2.ProviderName:
			var opts []s2.ClientOption
			if cfg.S2APIKey != "" {
				opts = append(opts, s2.WithAPIKey(cfg.S2APIKey))
			}
			providers = append(providers, s2.NewProvider(s2.NewClient(opts...)))
		case openalex.ProviderName:
			var opts []openalex.ClientOption
			if cfg.Mailto != "" {
				opts = append(opts, openalex.WithMailto(cfg.Mailto))
			}
			providers = append(providers, openalex.NewProvider(openalex.NewClient(opts...)))
		case arxivapi.ProviderName:
			providers = append(providers, arxivapi.NewProvider(arxivapi.NewClient()))
		default:
			return nil, cleanup, fmt.Errorf("unknown provider: %s", name)
		}
	}
	return providers, cleanup, nil
}

func newMatcher(cfg *config.Config) *match.Matcher {
	mc := match.DefaultConfig()
	mc.Floor = cfg.Thresholds.Floor
	mc.Accept = cfg.Thresholds.Accept
	mc.Separation = cfg.Thresholds.Separation
	return match.New(mc)
}

func newLogger() *slog.Logger {
	if !verboseOutput {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
