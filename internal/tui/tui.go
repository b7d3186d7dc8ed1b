// Package tui provides the Bubble Tea terminal user interface for
// albumrate.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/handiism/albumrate/internal/app"
	"github.com/handiism/albumrate/internal/config"
	"github.com/handiism/albumrate/internal/model"
	"github.com/handiism/albumrate/internal/musicbrainz"
	"github.com/handiism/albumrate/internal/store"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C678DD")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C678DD"))

	editingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#61AFEF"))

	starStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E5C07B"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E06C75"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// State represents the current UI state.
type State int

const (
	// StatePrompt reads the artist search query.
	StatePrompt State = iota

	// StateBrowse hands key events to the navigation controller.
	StateBrowse
)

// Deps bundles the collaborators the UI needs.
type Deps struct {
	Catalog  musicbrainz.Catalog
	Gateway  store.Gateway
	Settings *config.Settings
	Log      *logrus.Logger
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	deps      Deps
	ctrl      *app.Controller
	status    string

	width  int
	height int
}

// NewPromptModel creates a model that starts at the search prompt.
func NewPromptModel(deps Deps) Model {
	ti := textinput.New()
	ti.Placeholder = "artist name"
	ti.Prompt = "Enter artist name: "
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		state:     StatePrompt,
		textInput: ti,
		deps:      deps,
	}
}

// NewBrowserModel creates a model browsing an already-built controller,
// used when the artist query came from the command line or for the
// rated-albums view.
func NewBrowserModel(deps Deps, ctrl *app.Controller) Model {
	m := NewPromptModel(deps)
	m.state = StateBrowse
	m.ctrl = ctrl
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.state == StatePrompt {
		return textinput.Blink
	}
	return nil
}

// Update handles messages. Catalog and store calls run to completion
// right here, one key event at a time; the controller enforces its own
// per-call timeout so a dead network cannot wedge the loop for good.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.state == StatePrompt {
			return m.updatePrompt(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.state == StatePrompt {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		query := strings.TrimSpace(m.textInput.Value())
		if query == "" {
			return m, nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), m.deps.Settings.Timeout())
		defer cancel()

		artists, err := m.deps.Catalog.SearchArtists(ctx, query)
		if err != nil {
			m.deps.Log.WithError(err).Warn("artist search failed")
			m.status = fmt.Sprintf("search failed: %v", err)
			return m, nil
		}
		if len(artists) == 0 {
			m.status = fmt.Sprintf("no artists found for %q", query)
			return m, nil
		}

		m.ctrl = app.NewBrowser(artists, m.deps.Catalog, m.deps.Gateway,
			app.WithTimeout(m.deps.Settings.Timeout()),
			app.WithLogger(m.deps.Log),
		)
		m.state = StateBrowse
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if m.ctrl.CanQuit() {
			return m, tea.Quit
		}
		return m, nil

	case "j", "down":
		m.ctrl.OnDown()

	case "k", "up":
		m.ctrl.OnUp()

	case "l", "right":
		m.applyResult(m.ctrl.OnRight(ctx))

	case "h", "left":
		m.ctrl.OnLeft()
		m.status = ""

	case "enter":
		m.applyResult(m.ctrl.OnEnter(ctx))

	case "esc":
		m.ctrl.OnEscape()
		m.status = ""

	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			m.ctrl.OnDigit(int(key[0] - '0'))
		}
	}

	return m, nil
}

// applyResult turns a controller error into a recoverable status line.
// The controller guarantees state did not advance on failure, so the
// user simply retries the same key.
func (m *Model) applyResult(err error) {
	if err != nil {
		m.deps.Log.WithError(err).Warn("action failed")
		m.status = err.Error()
		return
	}
	m.status = ""
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("albumrate"))
	b.WriteString("\n")

	switch m.state {
	case StatePrompt:
		b.WriteString(m.viewPrompt())
	case StateBrowse:
		b.WriteString(m.viewBrowse())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewPrompt() string {
	return m.textInput.View() + "\n"
}

func (m Model) viewBrowse() string {
	switch m.ctrl.Mode() {
	case app.ModeArtists:
		return m.viewArtists()
	case app.ModeRated:
		return m.viewRated()
	default:
		// Albums and the edit session render the same list; only the
		// selected row's style differs.
		return m.viewAlbums()
	}
}

func (m Model) viewArtists() string {
	var b strings.Builder

	artists, selected := m.ctrl.ArtistRows()
	start, end := visibleWindow(len(artists), selected, m.listHeight())
	for i := start; i < end; i++ {
		b.WriteString(renderArtistRow(artists[i], i == selected))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewAlbums() string {
	var b strings.Builder

	albums, selected := m.ctrl.AlbumRows()
	if len(albums) == 0 {
		b.WriteString(dimStyle.Render("no albums for this artist"))
		b.WriteString("\n")
		return b.String()
	}

	start, end := visibleWindow(len(albums), selected, m.listHeight())
	for i := start; i < end; i++ {
		b.WriteString(renderAlbumRow(albums[i], i == selected))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRated() string {
	var b strings.Builder

	items, selected := m.ctrl.RatedRows()
	start, end := visibleWindow(len(items), selected, m.listHeight())
	for i := start; i < end; i++ {
		b.WriteString(renderRatedRow(items[i], i == selected))
		b.WriteString("\n")
	}

	return b.String()
}

func renderArtistRow(artist model.Artist, selected bool) string {
	label := artist.Name
	if artist.Disambiguation != "" {
		label = fmt.Sprintf("%s (%s)", artist.Name, artist.Disambiguation)
	}
	if selected {
		return selectedStyle.Render("> " + label)
	}
	return "  " + label
}

func renderAlbumRow(album *model.Album, selected bool) string {
	label := fmt.Sprintf("(%d) %s", album.ReleaseYear, album.Title)

	prefix := "  "
	style := lipgloss.NewStyle()
	if selected {
		prefix = "> "
		style = selectedStyle
		if album.BeingRated {
			style = editingStyle
		}
	}

	row := style.Render(prefix + label)
	if album.Rating != nil {
		row += "  " + starStyle.Render(renderStars(*album.Rating))
	}
	return row
}

func renderRatedRow(item app.RatedAlbum, selected bool) string {
	label := fmt.Sprintf("%s - %s", item.Artist.Name, item.Album.Title)

	prefix := "  "
	style := lipgloss.NewStyle()
	if selected {
		prefix = "> "
		style = selectedStyle
		if item.Album.BeingRated {
			style = editingStyle
		}
	}

	row := style.Render(prefix + label)
	if item.Album.Rating != nil {
		row += "  " + starStyle.Render(renderStars(*item.Album.Rating))
	}
	return row
}

// renderStars draws a rating out of 10 as five stars with halves.
func renderStars(rating int) string {
	var b strings.Builder
	full := rating / 2
	half := rating % 2

	for i := 0; i < full; i++ {
		b.WriteString("★")
	}
	if half == 1 {
		b.WriteString("⯪")
	}
	for i := full + half; i < 5; i++ {
		b.WriteString("☆")
	}
	return b.String()
}

func (m Model) listHeight() int {
	// Title, status, and help take a few rows; keep the list inside
	// whatever remains.
	h := m.height - 6
	if h < 3 {
		h = 10
	}
	return h
}

// visibleWindow returns the half-open row range to draw so the selection
// stays on screen for lists taller than the terminal.
func visibleWindow(length, selected, max int) (int, int) {
	if length <= max {
		return 0, length
	}

	start := selected - max/2
	if start < 0 {
		start = 0
	}
	end := start + max
	if end > length {
		end = length
		start = end - max
	}
	return start, end
}

func (m Model) helpText() string {
	if m.state == StatePrompt {
		return "enter: search • esc: quit"
	}

	switch m.ctrl.Mode() {
	case app.ModeArtists:
		return "j/k: move • l/enter: albums • q: quit"
	case app.ModeAlbums:
		return "j/k: move • l/enter: rate • h: back • q: quit"
	case app.ModeRated:
		return "j/k: move • l/enter: rate • q: quit"
	case app.ModeEditing:
		return "0-9: set • h/l: adjust • enter: save • esc: cancel"
	}
	return ""
}

// Run starts the TUI application. Bubble Tea restores the terminal on
// every exit path, panics included.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
