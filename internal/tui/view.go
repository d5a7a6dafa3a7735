package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/music-catalog/internal/importer"
	"github.com/handiism/music-catalog/internal/manifest"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 2)

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4ECDC4")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#1D1D1D")).
		Background(lipgloss.Color("#F8B500")).
		Bold(false)
	return s
}

// albumColumns sizes the album table for a terminal width. The name column
// takes whatever the fixed columns leave over.
func albumColumns(width int) []table.Column {
	const fixed = 6 + 6 + 9 + 9 + 10 // year, songs, average, total, padding
	return []table.Column{
		{Title: "Album", Width: max(width-fixed, 20)},
		{Title: "Year", Width: 6},
		{Title: "Songs", Width: 6},
		{Title: "Average", Width: 9},
		{Title: "Total", Width: 9},
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♫ Music Catalog"))
	b.WriteString("\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateBrowse, StateYearInput:
		b.WriteString(m.viewBrowse())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter sources (manifests, directories, URLs, snapshots):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose output (tab)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Snapshot: %s", m.settings.DatabasePath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Loading sources..."))
	b.WriteString("\n\n")

	var percent float64
	if m.totalSources > 0 {
		percent = float64(m.doneSources) / float64(m.totalSources)
	}
	b.WriteString(m.progress.ViewAs(math.Min(percent, 1)))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Sources: %d/%d", m.doneSources, m.totalSources)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	title := fmt.Sprintf("Albums (%d)", len(m.table.Rows()))
	if m.yearFilter != nil {
		title = fmt.Sprintf("Albums released in %d (%d)", *m.yearFilter, len(m.table.Rows()))
	}
	b.WriteString(subtitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	if m.state == StateYearInput {
		b.WriteString(infoStyle.Render("Year: "))
		b.WriteString(m.yearInput.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewSummary())
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewSummary() string {
	s := m.summary

	longestSong := dimStyle.Render("none")
	if s.LongestSong != "" {
		longestSong = albumStyle.Render(s.LongestSong)
	}
	longestAlbum := dimStyle.Render("none")
	if s.LongestAlbum != "" {
		longestAlbum = albumStyle.Render(s.LongestAlbum)
	}

	return boxStyle.Render(fmt.Sprintf(
		"Songs: %d (%d in no album)   Albums: %d   Total: %s\n"+
			"Longest song: %s\n"+
			"Longest album: %s",
		s.Songs, s.SongsInNoAlbum, s.Albums, formatDuration(s.TotalDuration),
		longestSong,
		longestAlbum,
	))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case importer.LevelError:
			style = errorStyle
			prefix = "✗"
		case importer.LevelWarning:
			style = warningStyle
			prefix = "!"
		case importer.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case importer.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: load • tab: verbose • esc: quit"
	case StateLoading:
		return "esc: cancel"
	case StateBrowse:
		if m.yearFilter != nil {
			return "↑/↓: move • y: year • esc: clear filter • p: playlist • s: save • r: new load • q: quit"
		}
		return "↑/↓: move • y: year • p: playlist • s: save • r: new load • q: quit"
	case StateYearInput:
		return "enter: apply (empty clears) • esc: back"
	case StateError:
		return "r: try again • q: quit"
	}
	return ""
}

func formatDuration(seconds float64) string {
	return manifest.Duration(seconds).String()
}
