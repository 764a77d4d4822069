package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recrawl/internal/core/domain"
	"github.com/custodia-labs/recrawl/internal/logger"
)

var (
	watchFields    []string
	watchAlgorithm string
)

var watchCmd = &cobra.Command{
	Use:   "watch <root>",
	Short: "Watch a directory tree and classify changes as they happen",
	Long: `Watches the directory tree and checksums documents as files are
created or written, printing a classification for each change.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchFields, "fields", nil, "checksum these metadata fields instead of content")
	watchCmd.Flags().StringVar(&watchAlgorithm, "algorithm", "", "digest algorithm (md5, sha256, xxhash64)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if detectorService == nil {
		return errors.New("change detection service not configured")
	}
	if err := applyChecksumOverrides(watchFields, watchAlgorithm); err != nil {
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

	docs, err := source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Printf("Watching %s (ctrl-c to stop)\n", source.Root())

	for doc := range docs {
		res, err := detectorService.Detect(ctx, &doc)
		if err != nil {
			logger.Warn("detect %s: %v", doc.Reference, err)
			continue
		}
		if res.Type == domain.ChangeUnmodified {
			continue
		}
		cmd.Printf("  %s %s\n", renderChange(res.Type), res.Reference)
	}

	return nil
}
