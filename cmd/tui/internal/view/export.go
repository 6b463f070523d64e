package view

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
	"github.com/MrJamesThe3rd/pocketbook/internal/export"
)

type exportState int

const (
	exportStatePath exportState = iota
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService *export.Service
	clock         clock.Clock

	state exportState
	form  *huh.Form
	path  *string

	summary string
	err     error
}

func NewExportModel(svc *export.Service, clk clock.Clock) ExportModel {
	path := filepath.Join("exports", export.Filename(clk.Now()))

	m := ExportModel{
		exportService: svc,
		clock:         clk,
		path:          &path,
	}
	m.form = m.buildPathForm()

	return m
}

func (m ExportModel) Title() string { return "Export CSV" }

func (m ExportModel) ShortHelp() string {
	if m.state == exportStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	switch m.state {
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateResult:
		if result, ok := msg.(exportResultMsg); ok {
			m.summary, m.err = result.summary, result.err
		}
	}

	return m, nil
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateResult

	return m, m.runExportCmd(*m.path)
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output File").
				Description("Parent directories will be created if they don't exist").
				Value(m.path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}

					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ExportModel) View() string {
	if m.state == exportStatePath {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.summary == "" {
		return lipgloss.NewStyle().Padding(1).Render("Exporting...")
	}

	header := lipgloss.NewStyle().Bold(true).Inherit(successStyle).Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.summary),
	)
}

type exportResultMsg struct {
	summary string
	err     error
}

func (m ExportModel) runExportCmd(path string) tea.Cmd {
	svc := m.exportService
	path = strings.TrimSpace(path)

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		var buf bytes.Buffer

		n, err := svc.Export(ctx, &buf)
		if err != nil {
			return exportResultMsg{err: err}
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return exportResultMsg{err: fmt.Errorf("create directory: %w", err)}
		}

		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return exportResultMsg{err: fmt.Errorf("write file: %w", err)}
		}

		return exportResultMsg{summary: fmt.Sprintf("Wrote %d transactions to %s", n, path)}
	}
}
