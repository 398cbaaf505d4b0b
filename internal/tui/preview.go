// Package tui shows an interactive preview
// of a parsed table before it is sent.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/domonda/go-textable"
)

const (
	maxColumnWidth = 40
	tableHeight    = 12
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#6EAF23"))

	boardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type keyMap struct {
	base    table.KeyMap
	Confirm key.Binding
	Cancel  key.Binding
	Help    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		base: table.DefaultKeyMap(),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "send rows"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.base.LineUp, k.base.LineDown, k.Confirm, k.Cancel, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.base.LineUp, k.base.LineDown},
		{k.base.GotoTop, k.base.GotoBottom},
		{k.base.PageUp, k.base.PageDown},
		{k.Confirm, k.Cancel},
	}
}

// Preview is a bubbletea model listing the rows of a parsed table.
// Confirming quits the program with Confirmed returning true.
type Preview struct {
	keys      keyMap
	table     table.Model
	help      help.Model
	board     string
	confirmed bool
}

// NewPreview returns a Preview of parsed
// classified as pattern for the send target.
func NewPreview(parsed textable.Table, pattern textable.Pattern, target string) Preview {
	rows := parsed.Strings()
	widths := textable.StringColumnWidths(rows, textable.NumCols)
	columns := make([]table.Column, textable.NumCols)
	for i := range columns {
		title := textable.ColumnLetters(i)
		columns[i] = table.Column{
			Title: title,
			Width: min(max(widths[i], len(title)), maxColumnWidth),
		}
	}
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(min(max(len(rows), 1), tableHeight)),
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

	board := fmt.Sprintf("%d rows, %s", len(rows), pattern)
	if target != "" {
		board += " → " + target
	}
	return Preview{
		keys:  defaultKeyMap(),
		table: t,
		help:  help.New(),
		board: board,
	}
}

// Confirmed returns true if the user confirmed sending the rows.
func (m Preview) Confirmed() bool {
	return m.confirmed
}

func (m Preview) Init() tea.Cmd { return nil }

func (m Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Preview) View() string {
	return baseStyle.Render(m.table.View()) + "\n" +
		boardStyle.Render(m.board) + "\n" +
		m.help.View(m.keys) + "\n"
}

// Run shows the preview until the user confirms or cancels
// and returns true if confirmed.
func Run(ctx context.Context, preview Preview, opts ...tea.ProgramOption) (bool, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(preview, opts...).Run()
	if err != nil {
		return false, err
	}
	return final.(Preview).Confirmed(), nil
}
