package view

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
	"github.com/MrJamesThe3rd/pocketbook/internal/query"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateForm
	txStateSearch
	txStateTimeframe
	txStateWipe
)

// txForm holds form bindings behind a pointer so copies of the model share them.
type txForm struct {
	editingID string
	amount    string
	category  string
	note      string
	date      string
	confirmed bool
}

type TransactionsModel struct {
	CommonModel
	ledger *transaction.Ledger
	trash  *transaction.Trash
	clock  clock.Clock

	state  txState
	table  table.Model
	txs    []*transaction.Transaction
	form   *huh.Form
	fields *txForm
	search textinput.Model
	picker TimeframePicker

	q           query.Query
	rangeLabel  string
	categoryIdx int

	status string
	err    error
}

func NewTransactionsModel(ledger *transaction.Ledger, trash *transaction.Trash, clk clock.Clock) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 10},
		{Title: "Note", Width: 40},
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

	si := textinput.New()
	si.Prompt = "Search: "
	si.Placeholder = "note or category"
	si.CharLimit = 64

	m := TransactionsModel{
		ledger:     ledger,
		trash:      trash,
		clock:      clk,
		table:      t,
		search:     si,
		picker:     NewTimeframePicker(clk),
		rangeLabel: TimeframeAll.String(),
	}
	m.refresh()

	return m
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateForm, txStateWipe:
		return "Navigate form | Esc: cancel"
	case txStateSearch:
		return "Enter: apply | Esc: cancel"
	case txStateTimeframe:
		return "Enter: select | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | d: trash | /: search | c: category | t: timeframe | x: clear | D: delete all"
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case txResultMsg:
		m.status, m.err = msg.status, msg.err
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()
		m.refresh()

		return m, nil

	case RangeSelectedMsg:
		m.q.DateFrom, m.q.DateTo = msg.From, msg.To
		m.rangeLabel = msg.Label
		m.state = txStateBrowse
		m.table.Focus()
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateForm, txStateWipe:
		return m.updateForm(msg)
	case txStateSearch:
		return m.updateSearch(msg)
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.openForm(nil)
		case "e", "enter":
			if tx := m.current(); tx != nil {
				return m.openForm(tx)
			}

			return m, nil
		case "d":
			if tx := m.current(); tx != nil {
				return m, m.moveToTrashCmd(tx.ID)
			}

			return m, nil
		case "/":
			m.state = txStateSearch
			m.search.SetValue(m.q.Search)
			m.table.Blur()

			return m, m.search.Focus()
		case "t":
			m.state = txStateTimeframe
			m.picker.Reset()
			m.table.Blur()

			return m, nil
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % (len(transaction.Categories) + 1)
			m.q.Category = categoryFilter(m.categoryIdx)
			m.refresh()

			return m, nil
		case "x":
			m.q = query.Query{}
			m.categoryIdx = 0
			m.rangeLabel = TimeframeAll.String()
			m.refresh()

			return m, nil
		case "D":
			return m.openWipe()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func categoryFilter(idx int) string {
	if idx == 0 {
		return query.CategoryAll
	}

	return transaction.Categories[idx-1]
}

func (m TransactionsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = txStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.q.Search = m.search.Value()
			m.state = txStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			m.state = txStateBrowse
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) openForm(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	f := &txForm{
		category: transaction.CategoryGeneral,
		date:     clock.Today(m.clock),
	}

	title := "Add Transaction"

	if tx != nil {
		title = "Edit Transaction"
		f.editingID = tx.ID
		f.amount = tx.Amount.String()
		f.category = tx.Category
		f.note = tx.Note
		f.date = tx.Date
	}

	m.fields = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&f.amount).
				Validate(func(s string) error {
					_, err := transaction.ParseAmount(s)
					return err
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions(f.category)...).
				Value(&f.category),

			huh.NewInput().
				Key("note").
				Title("Note").
				Value(&f.note),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.date).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}

					return nil
				}),
		).Title(title),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateForm
	m.table.Blur()

	return m, m.form.Init()
}

// categoryOptions lists the known categories, keeping an unknown current value selectable.
func categoryOptions(current string) []huh.Option[string] {
	names := transaction.Categories
	if current != "" && !slices.Contains(names, current) {
		names = append([]string{current}, names...)
	}

	return huh.NewOptions(names...)
}

func (m TransactionsModel) openWipe() (tea.Model, tea.Cmd) {
	f := &txForm{}

	m.fields = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete ALL data?").
				Description("Every transaction and everything in the trash will be removed. This cannot be undone.").
				Affirmative("Delete everything").
				Negative("Cancel").
				Value(&f.confirmed),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = txStateWipe
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == txStateWipe {
			return m, m.wipeCmd(m.fields.confirmed)
		}

		return m, m.saveCmd(*m.fields)
	case huh.StateAborted:
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, cmd
}

func (m TransactionsModel) current() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m *TransactionsModel) refresh() {
	m.txs = query.Filter(m.ledger.List(), m.q)

	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			tx.Date,
			tx.Category,
			FormatAmount(tx.Amount),
			tx.Note,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m TransactionsModel) View() string {
	category := m.q.Category
	if category == "" {
		category = query.CategoryAll
	}

	search := m.q.Search
	if search == "" {
		search = "-"
	}

	header := fmt.Sprintf(
		"[/] Search: %s | [c] Category: %s | [t] Range: %s | %d of %d",
		activeStyle(search),
		activeStyle(category),
		activeStyle(m.rangeLabel),
		len(m.txs),
		m.ledger.Len(),
	)

	if !m.q.IsZero() {
		header += " | " + faintStyle.Render("filtered, x to clear")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch m.state {
	case txStateSearch:
		content = lipgloss.JoinVertical(lipgloss.Left, m.search.View(), "", content)
	case txStateTimeframe:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.picker.View()))
	case txStateForm, txStateWipe:
		if m.form != nil {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.form.View()))
		}
	}

	if line := statusLine(m.status, m.err); line != "" {
		content = line + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func panel(body string) string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(56).
		Render(body)
}

// Messages

type txResultMsg struct {
	status string
	err    error
}

func (m TransactionsModel) saveCmd(f txForm) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		amount, err := transaction.ParseAmount(f.amount)
		if err != nil {
			return txResultMsg{err: err}
		}

		date := strings.TrimSpace(f.date)

		if f.editingID == "" {
			tx, err := ledger.Add(ctx, transaction.CreateParams{
				Amount:   amount,
				Category: f.category,
				Note:     f.note,
				Date:     date,
			})
			if err != nil {
				return txResultMsg{err: err}
			}

			return txResultMsg{status: fmt.Sprintf("Added %s %s.", FormatAmount(tx.Amount), tx.Category)}
		}

		tx, err := ledger.Update(ctx, f.editingID, transaction.Patch{
			Amount:   &amount,
			Category: &f.category,
			Note:     &f.note,
			Date:     &date,
		})
		if err != nil {
			return txResultMsg{err: err}
		}

		if tx == nil {
			return txResultMsg{status: "Transaction no longer exists."}
		}

		return txResultMsg{status: "Saved."}
	}
}

func (m TransactionsModel) moveToTrashCmd(id string) tea.Cmd {
	trash := m.trash

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		item, err := trash.MoveToTrash(ctx, id)
		if err != nil {
			return txResultMsg{err: err}
		}

		if item == nil {
			return txResultMsg{}
		}

		return txResultMsg{status: "Moved to trash. " + trash.ExpiryDescription(item.DeletedAt) + "."}
	}
}

func (m TransactionsModel) wipeCmd(confirmed bool) tea.Cmd {
	trash := m.trash

	return func() tea.Msg {
		if !confirmed {
			return txResultMsg{status: "Nothing deleted."}
		}

		ctx, cancel := OpCtx()
		defer cancel()

		if err := trash.DeleteAll(ctx); err != nil {
			return txResultMsg{err: err}
		}

		return txResultMsg{status: "All data deleted."}
	}
}
