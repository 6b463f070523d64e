package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
	"github.com/MrJamesThe3rd/pocketbook/internal/query"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

const barWidth = 30

type StatsModel struct {
	CommonModel
	ledger *transaction.Ledger
	clock  clock.Clock

	stats query.Stats
	count int
}

func NewStatsModel(ledger *transaction.Ledger, clk clock.Clock) StatsModel {
	m := StatsModel{ledger: ledger, clock: clk}
	m.refresh()

	return m
}

func (m StatsModel) Title() string     { return "Statistics" }
func (m StatsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m StatsModel) Init() tea.Cmd {
	return nil
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refresh()
		}
	}

	return m, nil
}

func (m *StatsModel) refresh() {
	records := m.ledger.List()
	m.count = len(records)
	m.stats = query.ComputeStats(records, m.clock.Now())
}

func (m StatsModel) View() string {
	title := lipgloss.NewStyle().Bold(true)

	summary := fmt.Sprintf(
		"Today: %s   This month: %s   Transactions: %d",
		activeStyle(FormatAmount(m.stats.TodayTotal)),
		activeStyle(FormatAmount(m.stats.MonthTotal)),
		m.count,
	)

	daily := make([]bar, len(m.stats.Last7))
	for i, d := range m.stats.Last7 {
		daily[i] = bar{label: d.Date, value: d.Total, color: "63"}
	}

	byCategory := make([]bar, len(m.stats.ByCategory))
	for i, c := range m.stats.ByCategory {
		byCategory[i] = bar{label: c.Category, value: c.Total, color: c.Color}
	}

	categories := renderBars(byCategory)
	if len(byCategory) == 0 {
		categories = faintStyle.Render("No spending yet.")
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		summary,
		"",
		title.Render("Last 7 days"),
		renderBars(daily),
		"",
		title.Render("By category"),
		categories,
	))
}

type bar struct {
	label string
	value decimal.Decimal
	color string
}

// renderBars draws one horizontal bar per entry, scaled to the largest value.
func renderBars(bars []bar) string {
	peak := decimal.Zero
	labelWidth := 0

	for _, b := range bars {
		if b.value.GreaterThan(peak) {
			peak = b.value
		}

		labelWidth = max(labelWidth, len(b.label))
	}

	lines := make([]string, 0, len(bars))

	for _, b := range bars {
		n := 0
		if peak.IsPositive() {
			n = int(b.value.Mul(decimal.NewFromInt(barWidth)).Div(peak).Round(0).IntPart())
		}

		fill := lipgloss.NewStyle().Foreground(lipgloss.Color(b.color)).Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%-*s %s %s", labelWidth, b.label, fill, FormatAmount(b.value)))
	}

	return strings.Join(lines, "\n")
}
