package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tileblast/internal/registry"
	"github.com/vovakirdan/tileblast/internal/storage"
)

// maxScores is the number of results loaded per level.
const maxScores = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	statLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	wonStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// scoreboardKeys narrows the help footer to scoreboard bindings.
type scoreboardKeys struct {
	KeyMap
}

var switchLevelKey = key.NewBinding(
	key.WithKeys("left", "right", "tab", "shift+tab"),
	key.WithHelp("←/→/tab", "level"),
)

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, switchLevelKey, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ScoreboardModel lists stored results per level with summary stats.
type ScoreboardModel struct {
	levels  []registry.GameInfo
	active  int
	store   *storage.Store
	entries []storage.ScoreEntry
	stats   *storage.GameStats
	table   table.Model
	help    help.Model
	keys    KeyMap
	width   int
	height  int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the first registered level.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		levels: registry.List(),
		store:  store,
		help:   help.New(),
		keys:   DefaultKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

// newTable sizes the results table to the window.
func (m ScoreboardModel) newTable() table.Model {
	played := 14
	if m.width > 70 {
		played = min(24, m.width-50)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Result", Width: 16},
			{Title: "Moves", Width: 6},
			{Title: "Played", Width: played},
		}),
		table.WithFocused(true),
		// Title, tabs, stats panel, borders and help
		table.WithHeight(max(3, m.height-13)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads results and stats of the active level.
func (m *ScoreboardModel) load() {
	m.entries = nil
	m.stats = nil

	if m.store != nil && len(m.levels) > 0 {
		id := m.levels[m.active].ID
		if entries, err := m.store.TopScores(id, maxScores); err == nil {
			m.entries = entries
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			humanize.Comma(int64(e.Score)),
			e.Outcome,
			fmt.Sprintf("%d", e.MovesUsed),
			humanize.Time(e.CreatedAt),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// switchLevel moves the active level by delta, wrapping around.
func (m *ScoreboardModel) switchLevel(delta int) {
	if len(m.levels) == 0 {
		return
	}
	m.active = (m.active + delta + len(m.levels)) % len(m.levels)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles keys and resizes; other messages go to the table.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Scores), key.Matches(msg, m.keys.Right):
			m.switchLevel(1)
			return m, nil
		case msg.String() == "shift+tab", key.Matches(msg, m.keys.Left):
			m.switchLevel(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the title, level tabs, stats, results and help.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	if m.stats != nil && m.stats.GamesCount > 0 {
		b.WriteString(centerText(panelStyle.Render(m.renderStats()), m.width))
		b.WriteString("\n")
	}

	var results string
	if len(m.entries) == 0 {
		results = emptyStyle.Render("No scores recorded yet.\nPlay a level to set a high score!")
	} else {
		results = m.table.View()
	}
	for _, line := range strings.Split(panelStyle.Render(results), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(m.help.View(scoreboardKeys{m.keys})))
	return b.String()
}

// renderTabs shows every level, or only the active one with arrows when
// the tabs do not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.levels) == 0 {
		return tabStyle.Render("No levels")
	}

	tabs := make([]string, len(m.levels))
	for i, lvl := range m.levels {
		if i == m.active {
			tabs[i] = activeTabStyle.Render(lvl.Title)
		} else {
			tabs[i] = tabStyle.Render(lvl.Title)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(row) > m.width {
		return "< " + activeTabStyle.Render(m.levels[m.active].Title) + " >"
	}
	return row
}

// renderStats summarizes the active level's results.
func (m ScoreboardModel) renderStats() string {
	s := m.stats
	cells := []string{
		statLabelStyle.Render("Played ") + fmt.Sprintf("%d", s.GamesCount),
		statLabelStyle.Render("Won ") + wonStyle.Render(fmt.Sprintf("%.0f%%", s.WinRate()*100)),
		statLabelStyle.Render("Best ") + humanize.Comma(int64(s.HighScore)),
		statLabelStyle.Render("Avg ") + fmt.Sprintf("%.0f in %.1f moves", s.AvgScore, s.AvgMoves),
	}
	return strings.Join(cells, "   ")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
