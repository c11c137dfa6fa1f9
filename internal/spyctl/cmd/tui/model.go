package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kiosk404/spycats/internal/dashboard"
)

// loadedMsg is sent when a roster load completes.
type loadedMsg struct {
	err error
}

// deletedMsg is sent when a delete request completes. The outcome itself
// reaches the status line through the notifier.
type deletedMsg struct {
	id  string
	err error
}

// statusLine is the notifier of the TUI. It keeps the latest message.
type statusLine struct {
	mu    sync.Mutex
	msg   string
	isErr bool
}

func (s *statusLine) Success(msg string) { s.set(msg, false) }
func (s *statusLine) Error(msg string)   { s.set(msg, true) }

func (s *statusLine) set(msg string, isErr bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg, s.isErr = msg, isErr
}

func (s *statusLine) get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg, s.isErr
}

// Model is the bubbletea model of the roster dashboard.
type Model struct {
	dash    *dashboard.Dashboard
	status  *statusLine
	keys    KeyMap
	timeout time.Duration

	table  table.Model
	search textinput.Model

	searching bool
	// confirmID is the record awaiting delete confirmation.
	confirmID string
	visible   []dashboard.Cat

	width  int
	height int
}

var columns = []table.Column{
	{Title: "ID", Width: 10},
	{Title: "Name", Width: 22},
	{Title: "Breed", Width: 18},
	{Title: "Experience", Width: 11},
	{Title: "Level", Width: 7},
	{Title: "Salary", Width: 14},
}

// New returns a dashboard model talking to api. Each request is bounded
// by timeout.
func New(api dashboard.API, timeout time.Duration) Model {
	status := &statusLine{}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "name or breed"

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return Model{
		dash:    dashboard.New(api, dashboard.WithNotifier(status)),
		status:  status,
		keys:    DefaultKeyMap,
		timeout: timeout,
		table:   t,
		search:  search,
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	d, timeout := m.dash, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loadedMsg{err: d.Load(ctx)}
	}
}

func (m Model) remove(id string) tea.Cmd {
	d, timeout := m.dash, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return deletedMsg{id: id, err: d.SubmitDelete(ctx, id)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(3, msg.Height-12))
		return m, nil

	case loadedMsg:
		if msg.err == nil {
			m.status.Success(fmt.Sprintf("Loaded %d spy cats", len(m.dash.Cats())))
		}
		m.refresh()
		return m, nil

	case deletedMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.confirmID != "":
			return m.updateConfirm(msg)
		case m.searching:
			return m.updateSearch(msg)
		}
		return m.updateTable(msg)
	}

	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		id := m.confirmID
		m.confirmID = ""
		return m, m.remove(id)
	case key.Matches(msg, m.keys.No):
		m.confirmID = ""
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Filter):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Clear):
		m.search.SetValue("")
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	case key.Matches(msg, m.keys.Delete):
		if cat, ok := m.selected(); ok {
			if m.dash.Pending(cat.ID) {
				m.status.Error(dashboard.Describe(dashboard.ErrSubmitting))
				return m, nil
			}
			m.confirmID = cat.ID
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refresh rebuilds the visible rows from the cache and the search term.
func (m *Model) refresh() {
	m.visible = dashboard.Filter(m.dash.Cats(), m.search.Value())
	rows := make([]table.Row, 0, len(m.visible))
	for _, c := range m.visible {
		rows = append(rows, table.Row{
			c.ID,
			c.Name,
			c.Breed,
			dashboard.FormatExperience(c.YearsOfExperience),
			dashboard.ExperienceLevel(c.YearsOfExperience),
			dashboard.FormatSalary(c.Salary),
		})
	}
	m.table.SetRows(rows)
	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) selected() (dashboard.Cat, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return dashboard.Cat{}, false
	}
	return m.visible[i], true
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Spy Cats Agency"))
	b.WriteString("\n")
	b.WriteString(m.statsView())
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	state := m.dash.State()
	switch {
	case !state.Loaded && state.Err != nil:
		b.WriteString(errorStyle.Render("Could not load the roster. Press r to retry."))
	case !state.Loaded:
		b.WriteString("Loading spy cats...")
	case len(m.visible) == 0:
		b.WriteString("No spy cats found.")
	default:
		b.WriteString(m.table.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) statsView() string {
	s := dashboard.ComputeStats(m.dash.Cats())
	box := func(label, value string) string {
		return statBoxStyle.Render(statLabelStyle.Render(label) + "\n" + statValueStyle.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Total Agents", strconv.Itoa(s.Total)),
		box("Average Salary", dashboard.FormatCurrency(s.AverageSalary.Round(0))),
		box("Average Experience", dashboard.FormatYears(s.AverageExperience)),
		box("Total Payroll", dashboard.FormatCurrency(s.Payroll)),
	)
}

func (m Model) statusView() string {
	if m.confirmID != "" {
		name := m.confirmID
		if cat, ok := m.dash.Cat(m.confirmID); ok {
			name = cat.Name
		}
		return confirmStyle.Render(fmt.Sprintf("Remove %s from the agency? [y/N]", name))
	}
	msg, isErr := m.status.get()
	if isErr {
		return errorStyle.Render(msg)
	}
	return successStyle.Render(msg)
}

func (m Model) helpView() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

// Run starts the dashboard on the terminal attached to in and out.
func Run(api dashboard.API, timeout time.Duration, in io.Reader, out io.Writer) error {
	_, err := tea.NewProgram(New(api, timeout),
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
	).Run()
	return err
}
