package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recrawl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/recrawl/internal/checksum"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage recrawl configuration",
	Long: `View and change checksum and scan settings.

Available keys:
  checksum.algorithm       digest algorithm (md5, sha256, xxhash64)
  checksum.source_fields   comma-separated metadata fields (empty for content mode)
  checksum.disabled        disable checksumming (true/false)
  checksum.keep            store the checksum in document metadata (true/false)
  checksum.target_field    metadata field used with checksum.keep
  scan.docs_per_second     throttle for directory walks (0 for unlimited)
  scan.burst               token bucket size when throttled`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg, err := file.LoadChecksumConfig(configStore)
	if err != nil {
		return err
	}
	scan := file.LoadScanConfig(configStore)

	algo := cfg.Algorithm
	if algo == "" {
		algo = checksum.AlgorithmMD5
	}

	cmd.Println(headerStyle.Render("[checksum]"))
	cmd.Printf("  algorithm:     %s\n", algo)
	if len(cfg.SourceFields) > 0 {
		cmd.Printf("  source_fields: %s\n", strings.Join(cfg.SourceFields, ", "))
	} else {
		cmd.Printf("  source_fields: %s\n", mutedStyle.Render("(none, content mode)"))
	}
	cmd.Printf("  disabled:      %t\n", cfg.Disabled)
	cmd.Printf("  keep:          %t\n", cfg.Keep)
	target := cfg.TargetField
	if target == "" {
		target = checksum.DefaultTargetField
	}
	cmd.Printf("  target_field:  %s\n", target)
	cmd.Println()

	cmd.Println(headerStyle.Render("[scan]"))
	if scan.DocsPerSecond > 0 {
		cmd.Printf("  docs_per_second: %d\n", scan.DocsPerSecond)
		cmd.Printf("  burst:           %d\n", scan.Burst)
	} else {
		cmd.Printf("  docs_per_second: %s\n", mutedStyle.Render("(unlimited)"))
	}
	cmd.Println()
	cmd.Printf("Config file: %s\n", configStore.Path())

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if _, known := configKeys[key]; !known {
		return fmt.Errorf("unknown configuration key %q", key)
	}

	val, ok := configStore.Get(key)
	if !ok {
		cmd.Println(mutedStyle.Render("(not set)"))
		return nil
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	parse, known := configKeys[key]
	if !known {
		return fmt.Errorf("unknown configuration key %q", key)
	}

	val, err := parse(raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := configStore.Set(key, val); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	cmd.Printf("Set %s = %v\n", key, val)
	return nil
}

// configKeys maps known keys to value parsers.
var configKeys = map[string]func(string) (any, error){
	file.KeyChecksumAlgorithm: func(raw string) (any, error) {
		algo, err := checksum.ParseAlgorithm(raw)
		if err != nil {
			return nil, err
		}
		return string(algo), nil
	},
	file.KeyChecksumSourceFields: func(raw string) (any, error) {
		if raw == "" {
			return []string{}, nil
		}
		fields := strings.Split(raw, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return fields, nil
	},
	file.KeyChecksumDisabled:    parseBoolValue,
	file.KeyChecksumKeep:        parseBoolValue,
	file.KeyChecksumTargetField: func(raw string) (any, error) { return raw, nil },
	file.KeyScanDocsPerSecond:   parseIntValue,
	file.KeyScanBurst:           parseIntValue,
}

func parseBoolValue(raw string) (any, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func parseIntValue(raw string) (any, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.New("must not be negative")
	}
	return int64(n), nil
}
