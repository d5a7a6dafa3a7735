// Package tui provides a Bubble Tea terminal user interface for browsing a
// music catalog.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/music-catalog/internal/audio"
	"github.com/handiism/music-catalog/internal/catalog"
	"github.com/handiism/music-catalog/internal/config"
	"github.com/handiism/music-catalog/internal/importer"
	"github.com/handiism/music-catalog/internal/model"
	"github.com/handiism/music-catalog/internal/store"
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateLoading
	StateBrowse
	StateYearInput
	StateError
)

const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   importer.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	yearInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	table     table.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	// Load context
	ctx    context.Context
	cancel context.CancelFunc
	events chan importer.ProgressEvent

	// Loaded catalog
	catalog    *catalog.Catalog
	summary    catalog.Summary
	yearFilter *int

	// Source progress
	totalSources int
	doneSources  int

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. The source input is prefilled with
// settings.Sources.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "albums.yaml, ~/Music, https://example.com/catalog.json"
	ti.SetValue(strings.Join(settings.Sources, ", "))
	ti.Focus()
	ti.CharLimit = 1000
	ti.Width = 60

	yi := textinput.New()
	yi.Placeholder = "1969"
	yi.CharLimit = 6
	yi.Width = 10
	yi.Validate = func(s string) error {
		if s == "" || s == "-" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	tbl := table.New(
		table.WithColumns(albumColumns(60)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	tbl.SetStyles(tableStyles())

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		yearInput: yi,
		spinner:   sp,
		progress:  prog,
		table:     tbl,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries an import progress event.
	ProgressMsg struct {
		Event importer.ProgressEvent

		events <-chan importer.ProgressEvent
	}

	// LoadDoneMsg is sent when every source has been read and applied.
	LoadDoneMsg struct {
		Catalog *catalog.Catalog
		Stats   importer.Stats
		Err     error
	}

	// SavedMsg is sent when a snapshot or playlist has been written.
	SavedMsg struct {
		What string
		Path string
		Err  error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		m.table.SetColumns(albumColumns(msg.Width))
		m.table.SetHeight(min(max(msg.Height-22, 5), 20))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StateLoading:
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			case StateYearInput:
				m.state = StateBrowse
				m.yearInput.Blur()
				m.table.Focus()
			case StateBrowse:
				if m.yearFilter != nil {
					m.yearFilter = nil
					m.refreshTable()
				}
			}
			return m, nil

		case "enter":
			switch m.state {
			case StateInput:
				sources := importer.ParseSources(m.textInput.Value())
				if len(sources) == 0 {
					return m, nil
				}
				m.state = StateLoading
				m.logs = nil
				m.totalSources = len(sources)
				m.doneSources = 0
				m.events = make(chan importer.ProgressEvent, 64)
				return m, tea.Batch(m.startLoad(sources), listen(m.events), m.spinner.Tick)
			case StateYearInput:
				m.applyYearFilter()
				return m, nil
			}

		case "tab":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateBrowse || m.state == StateError {
				return m, tea.Quit
			}

		case "y":
			if m.state == StateBrowse {
				m.state = StateYearInput
				m.yearInput.SetValue("")
				m.table.Blur()
				return m, m.yearInput.Focus()
			}

		case "s":
			if m.state == StateBrowse {
				return m, m.saveSnapshot()
			}

		case "p":
			if m.state == StateBrowse {
				return m, m.savePlaylist()
			}

		case "r":
			if m.state == StateBrowse || m.state == StateError {
				// Reset for a new load
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.catalog = nil
				m.yearFilter = nil
				m.table.SetRows(nil)
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		switch msg.Event.Level {
		case importer.LevelSuccess, importer.LevelError:
			m.doneSources++
		}
		if msg.Event.Level != importer.LevelVerbose || m.verbose {
			m.addLog(msg.Event.Message, msg.Event.Level)
		}
		if msg.events != nil {
			cmds = append(cmds, listen(msg.events))
		}

	case LoadDoneMsg:
		// A load cancelled with esc has already moved to StateError.
		if m.state != StateLoading {
			break
		}
		if msg.Err != nil {
			m.state = StateError
			if errors.Is(msg.Err, context.Canceled) {
				m.err = fmt.Errorf("cancelled by user")
			} else {
				m.err = msg.Err
			}
			break
		}
		m.catalog = msg.Catalog
		m.state = StateBrowse
		m.refreshTable()
		m.table.Focus()
		m.addLog(fmt.Sprintf("Loaded %d of %d sources", msg.Stats.Loaded, m.totalSources), importer.LevelSuccess)

	case SavedMsg:
		if msg.Err != nil {
			m.addLog(fmt.Sprintf("Error saving %s: %v", msg.What, msg.Err), importer.LevelError)
		} else {
			m.addLog(fmt.Sprintf("Saved %s to %s", msg.What, msg.Path), importer.LevelSuccess)
		}
	}

	switch m.state {
	case StateInput:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	case StateYearInput:
		var cmd tea.Cmd
		m.yearInput, cmd = m.yearInput.Update(msg)
		cmds = append(cmds, cmd)
	case StateBrowse:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) addLog(message string, level importer.ProgressLevel) {
	m.logs = append(m.logs, LogEntry{Message: message, Level: level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// applyYearFilter reads the year input. An empty input clears the filter.
func (m *Model) applyYearFilter() {
	value := strings.TrimSpace(m.yearInput.Value())
	if value == "" {
		m.yearFilter = nil
	} else if year, err := strconv.Atoi(value); err == nil {
		m.yearFilter = &year
	}
	m.state = StateBrowse
	m.yearInput.Blur()
	m.table.Focus()
	m.refreshTable()
}

// refreshTable rebuilds the album rows and summary from the catalog.
func (m *Model) refreshTable() {
	if m.catalog == nil {
		return
	}

	var inYear map[string]bool
	if m.yearFilter != nil {
		inYear = make(map[string]bool)
		for _, name := range m.catalog.AlbumInYear(*m.yearFilter) {
			inYear[name] = true
		}
	}

	var rows []table.Row
	for _, st := range m.catalog.AlbumStats() {
		if inYear != nil && !inYear[st.Album.Name] {
			continue
		}
		average := "-"
		if st.Songs > 0 {
			average = formatDuration(st.Average)
		}
		rows = append(rows, table.Row{
			st.Album.Name,
			strconv.Itoa(st.Album.Year),
			strconv.Itoa(st.Songs),
			average,
			formatDuration(st.Total),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()

	summary, err := m.catalog.Summary()
	if err != nil {
		m.addLog(err.Error(), importer.LevelError)
	}
	m.summary = summary
}

// selectedAlbum returns the album name of the highlighted row.
func (m Model) selectedAlbum() (string, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return "", false
	}
	return row[0], true
}

// startLoad reads the sources into a fresh catalog in the background.
func (m Model) startLoad(sources []string) tea.Cmd {
	ctx, events, settings := m.ctx, m.events, m.settings
	return func() tea.Msg {
		manager := importer.NewManager(settings, func(event importer.ProgressEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})

		c := catalog.New()
		err := manager.Load(ctx, c, sources)
		close(events)
		return LoadDoneMsg{Catalog: c, Stats: manager.Stats(), Err: err}
	}
}

// listen waits for the next progress event.
func listen(events <-chan importer.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event, events: events}
	}
}

// saveSnapshot writes the catalog to settings.DatabasePath.
func (m Model) saveSnapshot() tea.Cmd {
	ctx, c, path := m.ctx, m.catalog, m.settings.DatabasePath
	return func() tea.Msg {
		st, err := store.Open(path)
		if err != nil {
			return SavedMsg{What: "snapshot", Err: err}
		}
		defer st.Close()

		if err := st.Save(ctx, c); err != nil {
			return SavedMsg{What: "snapshot", Err: err}
		}
		return SavedMsg{What: "snapshot", Path: path}
	}
}

// savePlaylist writes a playlist for the highlighted album.
func (m Model) savePlaylist() tea.Cmd {
	name, ok := m.selectedAlbum()
	if !ok {
		return nil
	}
	year, _ := m.catalog.Year(name)
	songs := m.catalog.SongsInAlbum(name)
	ctx, settings := m.ctx, m.settings

	return func() tea.Msg {
		pl := audio.NewPlaylist(name, songs, settings.SongFileNameFormat)
		creator := audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended)
		fileName := model.NewAlbum(name, year).FileName(settings.PlaylistFileNameFormat)

		path, err := creator.SavePlaylist(ctx, pl, settings.PlaylistDirectory, fileName)
		return SavedMsg{What: fmt.Sprintf("playlist %q", name), Path: path, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
