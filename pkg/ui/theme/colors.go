// Package theme defines the color palette used for styled terminal output.
package theme

// Color constants for lipgloss styles.
const (
	ColorGreen     = "#00D700"
	ColorRed       = "#FF0000"
	ColorCyan      = "#00FFFF"
	ColorWhite     = "#FFFFFF"
	ColorGray      = "#808080"
	ColorDarkGray  = "#5F5F5F"
	ColorOrange    = "#FFAF00"
	ColorCheckmark = "#00D700"
)
