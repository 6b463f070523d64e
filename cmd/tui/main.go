package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocketbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/config"
	"github.com/MrJamesThe3rd/pocketbook/internal/export"
	"github.com/MrJamesThe3rd/pocketbook/internal/importer"
	"github.com/MrJamesThe3rd/pocketbook/internal/logger"
)

type model struct {
	app           *app.App
	importService *importer.Service
	exportService *export.Service
	sweepInterval time.Duration

	currentView View
	size        tea.WindowSizeMsg

	transactionsView view.TransactionsModel
	trashView        view.TrashModel
	statsView        view.StatsModel
	importView       view.ImportModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewTransactions View = 1
	ViewTrash        View = 2
	ViewStats        View = 3
	ViewImport       View = 4
	ViewExport       View = 5
)

type sweepMsg struct{}

func initialModel(a *app.App, cfg *config.Config, log *slog.Logger) model {
	return model{
		app:           a,
		importService: importer.NewService(a.Ledger, log),
		exportService: export.NewService(a.Ledger),
		sweepInterval: cfg.Server.SweepInterval,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return m.scheduleSweep()
}

func (m model) scheduleSweep() tea.Cmd {
	return tea.Tick(m.sweepInterval, func(time.Time) tea.Msg {
		return sweepMsg{}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case sweepMsg:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := m.app.Trash.SweepExpired(ctx); err != nil {
			slog.Error("trash sweep failed", "error", err)
		}

		return m, m.scheduleSweep()

	case tea.WindowSizeMsg:
		m.size = msg

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewTrash:
		var newModel tea.Model
		newModel, cmd = m.trashView.Update(msg)
		m.trashView = newModel.(view.TrashModel)
	case ViewStats:
		var newModel tea.Model
		newModel, cmd = m.statsView.Update(msg)
		m.statsView = newModel.(view.StatsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.app

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.currentView = ViewTransactions
		m.transactionsView = resize(view.NewTransactionsModel(a.Ledger, a.Trash, a.Clock), m.size)

		return m, m.transactionsView.Init()
	case "2":
		m.currentView = ViewTrash
		m.trashView = resize(view.NewTrashModel(a.Trash), m.size)

		return m, m.trashView.Init()
	case "3":
		m.currentView = ViewStats
		m.statsView = view.NewStatsModel(a.Ledger, a.Clock)

		return m, m.statsView.Init()
	case "4":
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.importService)

		return m, m.importView.Init()
	case "5":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.exportService, a.Clock)

		return m, m.exportView.Init()
	}

	return m, nil
}

// resize hands a freshly built view the last known terminal size.
func resize[T tea.Model](v T, size tea.WindowSizeMsg) T {
	if size.Height == 0 {
		return v
	}

	next, _ := v.Update(size)

	return next.(T)
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf(
			"Pocketbook\n\n"+
				"1. Transactions (%d)\n"+
				"2. Trash (%d)\n"+
				"3. Statistics\n"+
				"4. Import CSV\n"+
				"5. Export CSV\n\n"+
				"q. Quit",
			m.app.Ledger.Len(), m.app.Trash.Len(),
		))
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewTrash:
		return m.trashView.View()
	case ViewStats:
		return m.statsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

// openLogFile keeps log output off the terminal the TUI draws on.
func openLogFile(cfg *config.Config) (*os.File, error) {
	dir := filepath.Dir(cfg.Data.SQLitePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return os.OpenFile(filepath.Join(dir, "pocketbook-tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := openLogFile(cfg)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log := logger.New(logFile, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	a, err := app.Open(context.Background(), cfg, log, nil)
	if err != nil {
		slog.Error("failed to open ledger", "error", err)
		fmt.Fprintf(os.Stderr, "failed to open ledger: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(initialModel(a, cfg, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		fmt.Fprintf(os.Stderr, "failed to run TUI: %v\n", err)
	}
}
