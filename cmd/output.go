package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/kolja-aws/kolja/pkg/installer"
	"github.com/kolja-aws/kolja/pkg/ui/theme"
)

// printChangeSummary lists the sections a config install touched, then the
// file that was rewritten and the backup taken beforehand.
func printChangeSummary(result *installer.InstallResult) {
	for _, header := range result.Changes.Added {
		fmt.Printf("  + [%s]\n", header)
	}
	for _, header := range result.Changes.Updated {
		fmt.Printf("  ~ [%s]\n", header)
	}
	for _, header := range result.Changes.Removed {
		fmt.Printf("  - [%s]\n", header)
	}
	fmt.Printf("Updated %s\n", result.Path)
	if result.Backup != nil {
		fmt.Printf("Backup written to %s\n", result.Backup.BackupPath)
	}
}

// successBox renders a bordered confirmation panel to stderr so stdout stays
// machine readable for shell capture.
func successBox(title string, rows [][2]string) {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ColorGreen)).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColorGreen)).
		Padding(1, 2).
		Width(60)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ColorDarkGray)).
		Width(14)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ColorWhite)).
		Bold(true)

	checkmark := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ColorCheckmark)).
		SetString("✓")

	lines := []string{checkmark.Render() + " " + titleStyle.Render(title)}
	if len(rows) > 0 {
		lines = append(lines, "")
	}
	for _, row := range rows {
		lines = append(lines, labelStyle.Render(row[0])+" "+valueStyle.Render(row[1]))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	fmt.Fprintln(os.Stderr, "\n"+boxStyle.Render(content)+"\n")
}
