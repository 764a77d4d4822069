package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recrawl/internal/connectors/filesystem"
)

var forgetCmd = &cobra.Command{
	Use:   "forget <reference>",
	Short: "Remove the recorded checksum for a document",
	Long: `Removes the recorded checksum so the next pass classifies the
document as created. Accepts a file:// reference or a local path.`,
	Args: cobra.ExactArgs(1),
	RunE: runForget,
}

func init() {
	rootCmd.AddCommand(forgetCmd)
}

func runForget(cmd *cobra.Command, args []string) error {
	if detectorService == nil {
		return errors.New("change detection service not configured")
	}

	ref := args[0]
	if !strings.HasPrefix(ref, "file://") {
		abs, err := filepath.Abs(ref)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", ref, err)
		}
		ref = filesystem.Reference(abs)
	}

	if err := detectorService.Forget(cmd.Context(), ref); err != nil {
		return fmt.Errorf("forget failed: %w", err)
	}

	cmd.Printf("Forgot checksum for %s\n", ref)
	return nil
}
