package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LyzardKing/refchecker/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  refcheck config                              # Show all config
  refcheck config providers                    # Get specific value
  refcheck config providers localdb,openalex   # Set value
  refcheck config workers 8                    # Set worker count

Keys:
  providers      Provider priority order, comma-separated
  workers        Number of references verified concurrently
  timeout        Per-query timeout in seconds
  s2-api-key     Semantic Scholar API key
  mailto         Contact address for the OpenAlex polite pool
  local-db-path  Path to an offline SQLite paper database

Config is stored at ` + "~/.config/refcheck/config.yml" + `.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response when showing the full config.
type ConfigResponse struct {
	Providers      []string `json:"providers"`
	Workers        int      `json:"workers"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	S2APIKey       string   `json:"s2_api_key,omitempty"`
	Mailto         string   `json:"mailto,omitempty"`
	LocalDBPath    string   `json:"local_db_path,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("providers:      %s\n", strings.Join(cfg.Providers, ","))
			fmt.Printf("workers:        %d\n", cfg.Workers)
			fmt.Printf("timeout:        %d\n", cfg.TimeoutSeconds)
			fmt.Printf("s2-api-key:     %s\n", maskKey(cfg.S2APIKey))
			fmt.Printf("mailto:         %s\n", cfg.Mailto)
			fmt.Printf("local-db-path:  %s\n", cfg.LocalDBPath)
		} else {
			outputJSON(ConfigResponse{
				Providers:      cfg.Providers,
				Workers:        cfg.Workers,
				TimeoutSeconds: cfg.TimeoutSeconds,
				S2APIKey:       maskKey(cfg.S2APIKey),
				Mailto:         cfg.Mailto,
				LocalDBPath:    cfg.LocalDBPath,
			})
		}
		return nil
	}

	key := args[0]

	if len(args) == 1 {
		value, err := getConfigValue(cfg, key)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	value := args[1]
	if err := setConfigValue(cfg, key, value); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}

func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "providers":
		return strings.Join(cfg.Providers, ","), nil
	case "workers":
		return strconv.Itoa(cfg.Workers), nil
	case "timeout":
		return strconv.Itoa(cfg.TimeoutSeconds), nil
	case "s2-api-key":
		return maskKey(cfg.S2APIKey), nil
	case "mailto":
		return cfg.Mailto, nil
	case "local-db-path":
		return cfg.LocalDBPath, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "providers":
		cfg.Providers = strings.Split(value, ",")
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("workers must be a number: %s", value)
		}
		cfg.Workers = n
	case "timeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout must be a number of seconds: %s", value)
		}
		cfg.TimeoutSeconds = n
	case "s2-api-key":
		cfg.S2APIKey = value
	case "mailto":
		cfg.Mailto = value
	case "local-db-path":
		cfg.LocalDBPath = config.ExpandTilde(value)
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
