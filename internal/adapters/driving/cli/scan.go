package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recrawl/internal/core/domain"
)

var (
	scanFields    []string
	scanAlgorithm string
	scanAll       bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <root>",
	Short: "Scan a directory tree and classify changed documents",
	Long: `Walks the directory tree, checksums every document and classifies
each one as created, modified, unmodified or skipped relative to the
previous pass. New checksums are recorded for the next pass.

By default only changed documents are listed; use --all to list
unmodified ones too.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanFields, "fields", nil, "checksum these metadata fields instead of content")
	scanCmd.Flags().StringVar(&scanAlgorithm, "algorithm", "", "digest algorithm (md5, sha256, xxhash64)")
	scanCmd.Flags().BoolVar(&scanAll, "all", false, "list unmodified documents too")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if detectorService == nil {
		return errors.New("change detection service not configured")
	}
	if err := applyChecksumOverrides(scanFields, scanAlgorithm); err != nil {
		return err
	}

	source, err := newSource(args[0])
	if err != nil {
		return err
	}
	defer source.Close() //nolint:errcheck

	ctx := cmd.Context()
	if err := source.Validate(ctx); err != nil {
		return err
	}

	cmd.Printf("Scanning %s...\n\n", source.Root())

	report, err := detectorService.Scan(ctx, source)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	for _, res := range report.Results {
		if res.Type == domain.ChangeUnmodified && !scanAll {
			continue
		}
		cmd.Printf("  %s %s\n", renderChange(res.Type), res.Reference)
	}

	run := report.Run
	cmd.Println()
	cmd.Printf("%s %d created, %d modified, %d unmodified, %d skipped\n",
		headerStyle.Render("Scan complete:"),
		run.Created, run.Modified, run.Unmodified, run.Skipped)
	if run.ErrorCount > 0 {
		cmd.Println(errorStyle.Render(fmt.Sprintf("%d documents failed; rerun with --verbose for details", run.ErrorCount)))
	}

	return nil
}
