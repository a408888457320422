package log

import (
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
)

var (
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")) // Gray
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0000FF")) // Blue
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")) // Yellow
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")) // Red

	fatalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Background(lipgloss.Color("#000000")).
			Bold(true)

	// predefined styles for each level
	levelStyles = []struct {
		level Level
		style lipgloss.Style
	}{
		{level: DebugLevel, style: debugStyle},
		{level: InfoLevel, style: infoStyle},
		{level: WarnLevel, style: warnStyle},
		{level: ErrorLevel, style: errorStyle},
		{level: FatalLevel, style: fatalStyle},
	}
)

const levelWidth = 5

// DefaultStyles returns charmbracelet/log styles with fixed-width level labels
func DefaultStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for _, ls := range levelStyles {
		label := strings.ToUpper(ls.level.String())
		if len(label) < levelWidth {
			label += strings.Repeat(" ", levelWidth-len(label))
		}
		styles.Levels[ls.level] = ls.style.SetString(label)
	}
	return styles
}
