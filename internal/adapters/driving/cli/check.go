package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recrawl/internal/connectors/filesystem"
	"github.com/custodia-labs/recrawl/internal/core/domain"
)

var (
	checkFields    []string
	checkAlgorithm string
)

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Checksum a single file and classify it",
	Long: `Checksums one file, compares it against the recorded checksum and
records the new value, exactly as a full scan would for that file.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringSliceVar(&checkFields, "fields", nil, "checksum these metadata fields instead of content")
	checkCmd.Flags().StringVar(&checkAlgorithm, "algorithm", "", "digest algorithm (md5, sha256, xxhash64)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if detectorService == nil {
		return errors.New("change detection service not configured")
	}
	if err := applyChecksumOverrides(checkFields, checkAlgorithm); err != nil {
		return err
	}

	doc, err := filesystem.NewDocument(filesystem.ResolvePath(args[0]))
	if err != nil {
		return err
	}

	res, err := detectorService.Detect(cmd.Context(), &doc)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	cmd.Printf("%s %s\n", renderChange(res.Type), res.Reference)
	if res.Checksum != "" {
		cmd.Printf("  checksum: %s\n", res.Checksum)
	}
	if res.Type == domain.ChangeModified {
		cmd.Printf("  previous: %s\n", mutedStyle.Render(res.Previous))
	}

	return nil
}
