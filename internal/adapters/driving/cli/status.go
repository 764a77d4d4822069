package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recrawl/internal/core/domain"
)

var (
	statusEntries int
	statusJSON    bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recorded checksums and past runs",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&statusEntries, "entries", "n", 10, "maximum checksum entries to list (0 for all)")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if detectorService == nil {
		return errors.New("change detection service not configured")
	}

	entries, runs, err := detectorService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if statusJSON {
		return outputStatusJSON(cmd, entries, runs)
	}
	return outputStatusText(cmd, entries, runs)
}

func outputStatusJSON(cmd *cobra.Command, entries []domain.ChecksumEntry, runs []domain.CrawlRun) error {
	payload := struct {
		Entries []domain.ChecksumEntry `json:"entries"`
		Runs    []domain.CrawlRun      `json:"runs"`
	}{Entries: entries, Runs: runs}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling status: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputStatusText(cmd *cobra.Command, entries []domain.ChecksumEntry, runs []domain.CrawlRun) error {
	cmd.Println(headerStyle.Render("Runs"))
	if len(runs) == 0 {
		cmd.Println(mutedStyle.Render("  none recorded"))
	}
	for _, run := range runs {
		cmd.Printf("  %s  %s\n", run.StartedAt.Local().Format(time.DateTime), run.Root)
		cmd.Printf("      %d created, %d modified, %d unmodified, %d skipped, %d errors\n",
			run.Created, run.Modified, run.Unmodified, run.Skipped, run.ErrorCount)
	}
	cmd.Println()

	cmd.Printf("%s (%d recorded)\n", headerStyle.Render("Checksums"), len(entries))
	shown := 0
	for _, entry := range entries {
		if statusEntries > 0 && shown == statusEntries {
			cmd.Println(mutedStyle.Render(fmt.Sprintf("  ... and %d more", len(entries)-shown)))
			break
		}
		cmd.Printf("  %s  %s  %s\n", entry.Checksum, mutedStyle.Render(entry.Algorithm), entry.Reference)
		shown++
	}

	return nil
}
