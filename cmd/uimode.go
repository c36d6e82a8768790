package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/abhisek/triviaz/internal/config"
)

// uiModeDecision captures whether to run the TUI.
type uiModeDecision struct {
	useTUI  bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode determines whether to run the TUI or the plain line runner.
func resolveUIMode(mode string, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = config.UIAuto
	}
	switch normalized {
	case config.UIAuto:
		return uiModeDecision{useTUI: isTerminal(stdout)}, nil
	case config.UITUI:
		if isTerminal(stdout) {
			return uiModeDecision{useTUI: true}, nil
		}
		return uiModeDecision{
			warning: "TUI requested but stdout is not a TTY; falling back to plain output.",
		}, nil
	case config.UIPlain:
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|tui|plain)", mode)
	}
}

func defaultIsTerminal(stdout io.Writer) bool {
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
