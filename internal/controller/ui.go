// Package controller provides the user-facing output surfaces for mutapath.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	m "mutapath.dev/pkg/mutapath/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeGenerate StartMode = iota
	ModeList
)

// StartOption is a functional option for the Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithGenerateMode sets the UI to guide-generation mode.
func WithGenerateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeGenerate
	}
}

// WithListMode sets the UI to type-listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// UI is the display surface driven by the workflow. Implementations can use
// different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	// Wait blocks until the UI is finished (e.g. the user closes it).
	Wait(ctx context.Context)
	DisplayRunPlan(ctx context.Context, plan m.RunPlan)
	DisplayTypeStarted(ctx context.Context, name m.TypeName, workerID int)
	DisplayTypeFinished(ctx context.Context, summary m.TypeSummary)
	DisplayRunSummary(ctx context.Context, stats m.RunStats) error
	DisplayTypeList(ctx context.Context, snapshotDigest string, summaries []m.TypeSummary) error
	DisplayGuide(ctx context.Context, guide *m.Guide) error
}

// NewUI picks the display surface: the interactive TUI on a terminal, plain
// command output otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
