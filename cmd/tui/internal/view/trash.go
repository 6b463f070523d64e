package view

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type trashState int

const (
	trashStateBrowse trashState = iota
	trashStateConfirmEmpty
)

type TrashModel struct {
	CommonModel
	trash *transaction.Trash

	state    trashState
	table    table.Model
	items    []*transaction.Trashed
	selected map[string]bool
	form     *huh.Form
	confirm  *bool

	status string
	err    error
}

func NewTrashModel(trash *transaction.Trash) TrashModel {
	columns := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Date", Width: 12},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 10},
		{Title: "Note", Width: 30},
		{Title: "Expiry", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := TrashModel{
		trash:    trash,
		table:    t,
		selected: make(map[string]bool),
	}
	m.refresh()

	return m
}

func (m TrashModel) Title() string { return "Trash" }

func (m TrashModel) ShortHelp() string {
	if m.state == trashStateConfirmEmpty {
		return "Confirm | Esc: cancel"
	}

	return "Esc: back | Space: toggle | a: all | n: none | r: restore | d: delete forever | E: empty"
}

func (m TrashModel) Init() tea.Cmd {
	return nil
}

func (m TrashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trashResultMsg:
		m.status, m.err = msg.status, msg.err
		m.state = trashStateBrowse
		m.form = nil
		m.selected = make(map[string]bool)
		m.table.Focus()
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	if m.state == trashStateConfirmEmpty {
		return m.updateConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case " ":
		if item := m.current(); item != nil {
			m.selected[item.ID] = !m.selected[item.ID]
			m.refresh()
		}

		return m, nil
	case "a":
		for _, item := range m.items {
			m.selected[item.ID] = true
		}

		m.refresh()

		return m, nil
	case "n":
		m.selected = make(map[string]bool)
		m.refresh()

		return m, nil
	case "r":
		if ids := m.targets(); len(ids) > 0 {
			return m, m.restoreCmd(ids)
		}

		return m, nil
	case "d":
		if ids := m.targets(); len(ids) > 0 {
			return m, m.deleteCmd(ids)
		}

		return m, nil
	case "E":
		if len(m.items) == 0 {
			return m, nil
		}

		return m.openConfirm()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TrashModel) openConfirm() (tea.Model, tea.Cmd) {
	confirmed := false

	m.confirm = &confirmed
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Permanently delete %d items?", len(m.items))).
				Description("This cannot be undone.").
				Affirmative("Empty trash").
				Negative("Cancel").
				Value(m.confirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = trashStateConfirmEmpty
	m.table.Blur()

	return m, m.form.Init()
}

func (m TrashModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = trashStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if *m.confirm {
			return m, m.emptyCmd()
		}

		m.state = trashStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, cmd
}

// targets returns the checked ids in display order, or the row under the cursor when
// nothing is checked.
func (m TrashModel) targets() []string {
	var ids []string

	for _, item := range m.items {
		if m.selected[item.ID] {
			ids = append(ids, item.ID)
		}
	}

	if len(ids) > 0 {
		return ids
	}

	if item := m.current(); item != nil {
		return []string{item.ID}
	}

	return nil
}

func (m TrashModel) current() *transaction.Trashed {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m *TrashModel) refresh() {
	m.items = m.trash.List()

	// Newest deletions first.
	slices.Reverse(m.items)

	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		check := "[ ]"
		if m.selected[item.ID] {
			check = "[x]"
		}

		rows = append(rows, table.Row{
			check,
			item.Date,
			item.Category,
			FormatAmount(item.Amount),
			item.Note,
			m.trash.ExpiryDescription(item.DeletedAt),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m TrashModel) View() string {
	if len(m.items) == 0 && m.state == trashStateBrowse {
		body := "Trash is empty."
		if line := statusLine(m.status, m.err); line != "" {
			body = line + "\n\n" + body
		}

		return lipgloss.NewStyle().Padding(2).Render(body)
	}

	checked := 0
	for _, v := range m.selected {
		if v {
			checked++
		}
	}

	header := fmt.Sprintf("%d items, %d selected. Items are removed for good 7 days after deletion.", len(m.items), checked)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	)

	if m.state == trashStateConfirmEmpty && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.form.View()))
	}

	if line := statusLine(m.status, m.err); line != "" {
		content = line + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type trashResultMsg struct {
	status string
	err    error
}

func (m TrashModel) restoreCmd(ids []string) tea.Cmd {
	trash := m.trash

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		n, err := trash.RestoreSelected(ctx, ids)
		if err != nil {
			return trashResultMsg{err: err}
		}

		return trashResultMsg{status: fmt.Sprintf("Restored %d items.", n)}
	}
}

func (m TrashModel) deleteCmd(ids []string) tea.Cmd {
	trash := m.trash

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		n, err := trash.DeleteSelected(ctx, ids)
		if err != nil {
			return trashResultMsg{err: err}
		}

		return trashResultMsg{status: fmt.Sprintf("Permanently deleted %d items.", n)}
	}
}

func (m TrashModel) emptyCmd() tea.Cmd {
	trash := m.trash

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		n, err := trash.Empty(ctx)
		if err != nil {
			return trashResultMsg{err: err}
		}

		return trashResultMsg{status: fmt.Sprintf("Emptied trash, %d items removed.", n)}
	}
}
