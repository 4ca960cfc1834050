package errors

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

// FormatterConfig controls error formatting behavior.
type FormatterConfig struct {
	// Verbose enables structured context output.
	Verbose bool

	// Color controls color output: "auto", "always", or "never".
	Color string
}

// DefaultFormatterConfig returns default formatting configuration.
func DefaultFormatterConfig() FormatterConfig {
	return FormatterConfig{
		Verbose: false,
		Color:   "auto",
	}
}

// Format renders an error message plus its hints for stderr.
func Format(err error, config FormatterConfig) string {
	if err == nil {
		return ""
	}

	useColor := shouldUseColor(config.Color)

	errorStyle := lipgloss.NewStyle()
	if useColor {
		errorStyle = errorStyle.Foreground(lipgloss.Color("#FF0000"))
	}

	var output strings.Builder
	output.WriteString(errorStyle.Render(err.Error()))

	hints := errors.GetAllHints(err)
	if len(hints) > 0 {
		output.WriteString("\n")
		for _, hint := range hints {
			output.WriteString("    💡 " + hint)
			output.WriteString("\n")
		}
	}

	if config.Verbose {
		details := errors.GetSafeDetails(err)
		for _, detail := range details.SafeDetails {
			output.WriteString(fmt.Sprintf("    %v\n", detail))
		}
	}

	return output.String()
}

// shouldUseColor determines if color output should be used.
func shouldUseColor(colorMode string) bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}
