// Package cli implements the recrawl command line interface.
//
// Import Rules:
//   - MAY import core (domain, ports, services), adapters and connectors
//   - MAY import third-party CLI libraries (cobra, lipgloss)
//   - Commands talk to the core through driving ports only
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recrawl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/recrawl/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/recrawl/internal/checksum"
	"github.com/custodia-labs/recrawl/internal/connectors/filesystem"
	"github.com/custodia-labs/recrawl/internal/core/ports/driven"
	"github.com/custodia-labs/recrawl/internal/core/ports/driving"
	"github.com/custodia-labs/recrawl/internal/core/services"
	"github.com/custodia-labs/recrawl/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Wired services. Tests inject fakes here before Execute.
var (
	detectorService driving.ChangeDetectionService
	configStore     driven.ConfigStore
	checksummer     *checksum.Checksummer
	scanSettings    file.ScanConfig
	store           *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "recrawl",
	Short: "Detect document changes between crawl passes",
	Long: `Recrawl walks document trees, checksums each document and compares
the result against the checksum recorded on the previous pass, so a
pipeline only reprocesses what actually changed.

Checksums are computed over the document content by default, or over a
configured set of metadata fields.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		// version and help never need the database or config
		switch cmd.Name() {
		case "version", "help":
			return nil
		}
		if detectorService != nil {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.recrawl)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.recrawl/data)")
}

// initServices wires the config store, checksum store and change
// detection service from the configured directories.
func initServices() error {
	cs, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	cfg, err := file.LoadChecksumConfig(cs)
	if err != nil {
		return err
	}
	scanSettings = file.LoadScanConfig(cs)

	st, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening checksum store: %w", err)
	}

	configStore = cs
	store = st
	checksummer = checksum.New(cfg)
	detectorService = services.NewChangeDetector(checksummer, st.ChecksumStore())
	return nil
}

// newSource builds a filesystem source for the given root, throttled
// per the scan settings.
func newSource(root string) (*filesystem.Connector, error) {
	var opts []filesystem.Option
	if scanSettings.DocsPerSecond > 0 {
		opts = append(opts, filesystem.WithThrottle(scanSettings.DocsPerSecond, scanSettings.Burst))
	}
	return filesystem.New(root, opts...)
}

// applyChecksumOverrides folds command flags into the active
// checksummer configuration for this invocation.
func applyChecksumOverrides(fields []string, algorithm string) error {
	if len(fields) == 0 && algorithm == "" {
		return nil
	}
	if checksummer == nil {
		return fmt.Errorf("checksummer not configured")
	}

	cfg := checksummer.Config()
	if len(fields) > 0 {
		cfg.SourceFields = fields
	}
	if algorithm != "" {
		algo, err := checksum.ParseAlgorithm(algorithm)
		if err != nil {
			return err
		}
		cfg.Algorithm = algo
	}
	checksummer.SetConfig(cfg)
	return nil
}

// ExecuteContext runs the root command with the given context, so
// commands stop when the process is signalled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// CloseStore releases the database handle if one was opened.
func CloseStore() error {
	if store == nil {
		return nil
	}
	return store.Close()
}
