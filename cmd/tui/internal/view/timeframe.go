package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
	"github.com/MrJamesThe3rd/pocketbook/internal/query"
)

// Timeframe is one row of the picker: a date preset or a custom range.
type Timeframe int

const (
	TimeframeToday Timeframe = iota
	TimeframeWeek
	TimeframeMonth
	TimeframeAll
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeToday:
		return "Today"
	case TimeframeWeek:
		return "Last 7 Days"
	case TimeframeMonth:
		return "This Month"
	case TimeframeAll:
		return "All Time"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

func (t Timeframe) preset() query.Preset {
	switch t {
	case TimeframeToday:
		return query.PresetToday
	case TimeframeWeek:
		return query.PresetWeek
	case TimeframeMonth:
		return query.PresetMonth
	}

	return query.PresetClear
}

// RangeSelectedMsg carries the chosen inclusive YYYY-MM-DD bounds. Empty bounds are open.
type RangeSelectedMsg struct {
	From  string
	To    string
	Label string
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker is a reusable component for selecting a date range.
type TimeframePicker struct {
	clock    clock.Clock
	state    timeframeState
	selected Timeframe

	fromInput  textinput.Model
	toInput    textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker(clk clock.Clock) TimeframePicker {
	fi := textinput.New()
	fi.Placeholder = "YYYY-MM-DD"
	fi.CharLimit = 10
	fi.Width = 12
	fi.Prompt = "From: "

	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = 10
	ti.Width = 12
	ti.Prompt = "To:   "

	return TimeframePicker{
		clock:     clk,
		state:     timeframeStateSelect,
		selected:  TimeframeAll,
		fromInput: fi,
		toInput:   ti,
	}
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(keyMsg)
		case timeframeStateCustom:
			if next, cmd, handled := m.updateCustom(keyMsg); handled {
				return next, cmd
			}
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeToday {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == TimeframeCustom {
			m.state = timeframeStateCustom
			m.focusIndex = 0
			m.fromInput.Focus()

			return m, textinput.Blink
		}

		q := query.ApplyPreset(query.Query{}, m.selected.preset(), m.clock.Now())
		label := m.selected.String()

		return m, func() tea.Msg {
			return RangeSelectedMsg{From: q.DateFrom, To: q.DateTo, Label: label}
		}
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.fromInput.Blur()
		m.toInput.Blur()

		if m.focusIndex == 0 {
			m.fromInput.Focus()
		} else {
			m.toInput.Focus()
		}

		return m, textinput.Blink, true

	case "enter":
		from, to, err := parseRange(m.fromInput.Value(), m.toInput.Value())
		if err != nil {
			m.err = err
			return m, nil, true
		}

		m.err = nil

		return m, func() tea.Msg {
			return RangeSelectedMsg{From: from, To: to, Label: fmt.Sprintf("%s .. %s", from, to)}
		}, true

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

// parseRange validates custom bounds. Either side may be left empty.
func parseRange(from, to string) (string, string, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)

	if from != "" {
		if _, err := time.Parse(time.DateOnly, from); err != nil {
			return "", "", fmt.Errorf("invalid start date (YYYY-MM-DD)")
		}
	}

	if to != "" {
		if _, err := time.Parse(time.DateOnly, to); err != nil {
			return "", "", fmt.Errorf("invalid end date (YYYY-MM-DD)")
		}
	}

	if from != "" && to != "" && from > to {
		return "", "", fmt.Errorf("start date is after end date")
	}

	return from, to, nil
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.fromInput, c = m.fromInput.Update(msg)
	cmds = append(cmds, c)
	m.toInput, c = m.toInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.fromInput.View(),
			m.toInput.View(),
			errStr,
		)
	}

	var b strings.Builder

	b.WriteString("Select Timeframe:\n\n")

	for i := TimeframeToday; i <= TimeframeCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		fmt.Fprintf(&b, "%s %s\n", cursor, i.String())
	}

	b.WriteString("\n(Enter to select, Esc to back)")

	return b.String() + errStr
}

// IsSelecting reports whether the picker is on the preset list rather than custom input.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.selected = TimeframeAll
	m.err = nil
	m.fromInput.SetValue("")
	m.toInput.SetValue("")
}
