package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chanscout configuration",
	Long: `View and set configuration values.

Keys the engine reads:
  ai.base_url                OpenAI-compatible endpoint
  ai.api_key                 API key (empty disables AI assessment)
  ai.model                   model name
  ai.temperature             sampling temperature for assessments
  search.dataset             platform dataset file
  search.catalogs            curated directory handles
  search.cache_ttl_minutes   result cache lifetime
  search.analysis_delay_ms   delay between analyzed results
  storage.data_dir           result database directory`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	cmd.Printf("Configuration (%s)\n\n", configStore.Path())

	cmd.Println("[ai]")
	cmd.Printf("  base_url:    %s\n", orDefault(configStore.GetString("ai.base_url"), "(openai default)"))
	cmd.Printf("  model:       %s\n", orDefault(configStore.GetString("ai.model"), "(default)"))
	cmd.Printf("  api_key:     %s\n", maskAPIKey(configStore.GetString("ai.api_key")))
	cmd.Println()
	cmd.Println("[search]")
	cmd.Printf("  dataset:     %s\n", orDefault(configStore.GetString("search.dataset"), "(default)"))
	cmd.Printf("  catalogs:    %s\n", orDefault(strings.Join(configStore.GetStringSlice("search.catalogs"), ", "), "(built-in)"))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := configStore.Set(key, parseConfigValue(value)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

// initConfig opens the config store without wiring the whole engine,
// so configuration works before a dataset or database exists.
func initConfig() error {
	if configStore != nil {
		return nil
	}
	return openConfigStore()
}

// parseConfigValue converts the CLI string to the closest TOML type.
func parseConfigValue(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return value
}

// maskAPIKey hides all but the last four characters of a key.
func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
