package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "mutapath.dev/pkg/mutapath/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// maxRecentResults bounds the scrollback of per-type result lines.
const maxRecentResults = 8

// TUI implements UI using Bubble Tea for interactive display during generate
// runs. List and view output render statically.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start implements UI. Only generate mode runs an interactive program.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	config := StartConfig{}
	for _, option := range options {
		option(&config)
	}

	if config.mode != ModeGenerate {
		return nil
	}

	t.program = tea.NewProgram(newRunModel(), tea.WithOutput(t.output))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// Close implements UI.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Quit()
	<-t.done
}

// Wait implements UI: it blocks until the user closes the run view.
func (t *TUI) Wait(ctx context.Context) {
	if t.program == nil {
		return
	}

	select {
	case <-ctx.Done():
	case <-t.done:
	}
}

// DisplayRunPlan implements UI.
func (t *TUI) DisplayRunPlan(_ context.Context, plan m.RunPlan) {
	t.send(runPlanMsg(plan))
}

// DisplayTypeStarted implements UI.
func (t *TUI) DisplayTypeStarted(_ context.Context, name m.TypeName, workerID int) {
	t.send(typeStartedMsg{name: name, worker: workerID})
}

// DisplayTypeFinished implements UI.
func (t *TUI) DisplayTypeFinished(_ context.Context, summary m.TypeSummary) {
	t.send(typeFinishedMsg(summary))
}

// DisplayRunSummary implements UI.
func (t *TUI) DisplayRunSummary(ctx context.Context, stats m.RunStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(runSummaryMsg(stats))

	return nil
}

// DisplayTypeList implements UI with a static render.
func (t *TUI) DisplayTypeList(ctx context.Context, snapshotDigest string, summaries []m.TypeSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	header := titleStyle.Render("mutapath — registered types") + "\n" +
		dimStyle.Render("snapshot "+shortDigest(snapshotDigest)) + "\n\n"

	_, err := fmt.Fprint(t.output, header+renderTypeTable(summaries))

	return err
}

// DisplayGuide implements UI with a static render.
func (t *TUI) DisplayGuide(ctx context.Context, guide *m.Guide) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(guide, "", "  ")
	if err != nil {
		return fmt.Errorf("encode guide for display: %w", err)
	}

	_, err = fmt.Fprintf(t.output, "%s\n%s\n", titleStyle.Render("Mutation paths for "+string(guide.Type)), data)

	return err
}

func (t *TUI) send(msg tea.Msg) {
	if t.program == nil {
		return
	}

	t.program.Send(msg)
}

type runPlanMsg m.RunPlan

type typeStartedMsg struct {
	name   m.TypeName
	worker int
}

type typeFinishedMsg m.TypeSummary

type runSummaryMsg m.RunStats

// runModel is the Bubble Tea model for a generate run: a progress bar,
// per-worker activity and the most recent per-type results.
type runModel struct {
	plan     *m.RunPlan
	bar      progress.Model
	workers  map[int]m.TypeName
	finished int
	recent   []m.TypeSummary
	stats    *m.RunStats
	width    int
	quitting bool
}

func newRunModel() runModel {
	return runModel{
		bar:     progress.New(progress.WithDefaultGradient()),
		workers: make(map[int]m.TypeName),
	}
}

func (rm runModel) Init() tea.Cmd {
	return nil
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.bar.Width = msg.Width - 10

		return rm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			rm.quitting = true
			return rm, tea.Quit
		}

		return rm, nil

	case runPlanMsg:
		plan := m.RunPlan(msg)
		rm.plan = &plan

		return rm, nil

	case typeStartedMsg:
		rm.workers[msg.worker] = msg.name

		return rm, nil

	case typeFinishedMsg:
		rm.finished++

		rm.recent = append(rm.recent, m.TypeSummary(msg))
		if len(rm.recent) > maxRecentResults {
			rm.recent = rm.recent[len(rm.recent)-maxRecentResults:]
		}

		return rm, nil

	case runSummaryMsg:
		stats := m.RunStats(msg)
		rm.stats = &stats

		for worker := range rm.workers {
			delete(rm.workers, worker)
		}

		return rm, nil
	}

	return rm, nil
}

func (rm runModel) View() string {
	if rm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("mutapath — generating mutation-path guides"))
	b.WriteString("\n\n")

	if rm.plan != nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("snapshot %s · %d type(s) · %d worker(s) · shard %d/%d",
			shortDigest(rm.plan.SnapshotDigest), rm.plan.Types, rm.plan.Threads, rm.plan.ShardIndex, rm.plan.ShardCount)))
		b.WriteString("\n\n")

		percent := 1.0
		if rm.plan.Types > 0 {
			percent = float64(rm.finished) / float64(rm.plan.Types)
		}

		b.WriteString(rm.bar.ViewAs(percent))
		b.WriteString(fmt.Sprintf("  %d/%d\n\n", rm.finished, rm.plan.Types))
	}

	rm.renderWorkers(&b)
	rm.renderRecent(&b)

	if rm.stats != nil {
		b.WriteString(fmt.Sprintf("\nGenerated %s guide(s) with %s mutation path(s), %s skipped, in %s\n",
			okStyle.Render(fmt.Sprintf("%d", rm.stats.Generated)),
			okStyle.Render(fmt.Sprintf("%d", rm.stats.Paths)),
			errStyle.Render(fmt.Sprintf("%d", rm.stats.Failed)),
			rm.stats.Duration.Round(timeRounding)))
		b.WriteString(dimStyle.Render("press q to quit"))
		b.WriteString("\n")
	}

	return b.String()
}

func (rm runModel) renderWorkers(b *strings.Builder) {
	if len(rm.workers) == 0 {
		return
	}

	ids := make([]int, 0, len(rm.workers))
	for id := range rm.workers {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	for _, id := range ids {
		b.WriteString(dimStyle.Render(fmt.Sprintf("worker %d", id)))
		b.WriteString(fmt.Sprintf("  %s\n", rm.workers[id]))
	}

	b.WriteString("\n")
}

func (rm runModel) renderRecent(b *strings.Builder) {
	for _, summary := range rm.recent {
		if summary.Error != "" {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				errStyle.Render("✗"), summary.Type, dimStyle.Render(summary.Error)))
			continue
		}

		marker := okStyle.Render("✓")
		if summary.PartiallyMutable > 0 || summary.NotMutable > 0 {
			marker = partialStyle.Render("●")
		}

		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			marker, summary.Type,
			dimStyle.Render(fmt.Sprintf("%d path(s), %d mutable, %d partial, %d blocked",
				summary.Paths, summary.Mutable, summary.PartiallyMutable, summary.NotMutable))))
	}
}
