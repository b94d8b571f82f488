package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "mutapath.dev/pkg/mutapath/internal/model"
)

// timeRounding trims run durations for display.
const timeRounding = 10 * time.Millisecond

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayRunPlan prints the run parameters.
func (s *SimpleUI) DisplayRunPlan(ctx context.Context, plan m.RunPlan) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Generating guides for %d type(s) with %d worker(s) (shard %d/%d)\n",
		plan.Types, plan.Threads, plan.ShardIndex, plan.ShardCount)
	s.printf("Snapshot digest: %s\n", shortDigest(plan.SnapshotDigest))
}

// DisplayTypeStarted prints the type a worker picked up.
func (s *SimpleUI) DisplayTypeStarted(ctx context.Context, name m.TypeName, workerID int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("[worker %d] %s\n", workerID, name)
}

// DisplayTypeFinished prints one per-type result line.
func (s *SimpleUI) DisplayTypeFinished(ctx context.Context, summary m.TypeSummary) {
	if err := ctx.Err(); err != nil {
		return
	}

	if summary.Error != "" {
		s.printf("  %s -> skipped: %s\n", summary.Type, summary.Error)
		return
	}

	s.printf("  %s -> %d path(s) (%d mutable, %d partial, %d blocked)\n",
		summary.Type, summary.Paths, summary.Mutable, summary.PartiallyMutable, summary.NotMutable)
}

// DisplayRunSummary prints the final run statistics.
func (s *SimpleUI) DisplayRunSummary(ctx context.Context, stats m.RunStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\nGenerated %d guide(s) with %d mutation path(s), %d type(s) skipped, in %s\n",
		stats.Generated, stats.Paths, stats.Failed, stats.Duration.Round(timeRounding))

	return nil
}

// DisplayTypeList renders the type summaries as a table.
func (s *SimpleUI) DisplayTypeList(ctx context.Context, snapshotDigest string, summaries []m.TypeSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Snapshot digest: %s\n\n%s", shortDigest(snapshotDigest), renderTypeTable(summaries))

	return nil
}

// DisplayGuide pretty-prints one guide document.
func (s *SimpleUI) DisplayGuide(ctx context.Context, guide *m.Guide) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(guide, "", "  ")
	if err != nil {
		return fmt.Errorf("encode guide for display: %w", err)
	}

	s.printf("Mutation paths for %s:\n%s\n", guide.Type, data)

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderTypeTable(summaries []m.TypeSummary) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Type", "Kind", "Paths", "Mutable", "Partial", "Blocked"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	totalPaths := 0

	for _, summary := range summaries {
		if summary.Error != "" {
			table.Append([]string{string(summary.Type), "error: " + summary.Error, "-", "-", "-", "-"})
			continue
		}

		table.Append([]string{
			string(summary.Type),
			string(summary.Kind),
			strconv.Itoa(summary.Paths),
			strconv.Itoa(summary.Mutable),
			strconv.Itoa(summary.PartiallyMutable),
			strconv.Itoa(summary.NotMutable),
		})

		totalPaths += summary.Paths
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Types %d", len(summaries)),
		"",
		strconv.Itoa(totalPaths),
		"", "", "",
	})

	table.Render()

	return buffer.String()
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}

	return digest
}
