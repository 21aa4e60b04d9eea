package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/seqfile/pkg/types"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// useColor reports whether stdout is a terminal that can take color.
func useColor() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

func render(style lipgloss.Style, s string) string {
	if !useColor() {
		return s
	}
	return style.Render(s)
}

// printResult writes the one-line outcome of a publish call.
func printResult(w io.Writer, res types.Result, err error) {
	switch {
	case err == nil && res.Outcome == types.Skipped:
		fmt.Fprintf(w, "%s %s (existing file kept)\n", render(skipStyle, "skipped"), res.FileNameProduced)
	case err == nil:
		fmt.Fprintf(w, "%s %s\n", render(successStyle, "published"), res.FileNameProduced)
	case res.Outcome == types.SentinelFailed:
		fmt.Fprintf(w, "%s %s, done file failed: %v\n", render(failStyle, "partial"), res.FileNameProduced, err)
	default:
		fmt.Fprintf(w, "%s %v\n", render(failStyle, "failed"), err)
	}
}
