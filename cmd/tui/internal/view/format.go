package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const opTimeout = 5 * time.Second

var (
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// FormatAmount renders an amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// OpCtx returns a context with a standard timeout for ledger writes.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func activeStyle(s string) string {
	return accentStyle.Render(s)
}

func statusLine(status string, err error) string {
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", err))
	}

	if status == "" {
		return ""
	}

	return faintStyle.Render(status)
}
