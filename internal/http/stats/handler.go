package stats

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
	"github.com/MrJamesThe3rd/pocketbook/internal/query"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type Handler struct {
	ledger *transaction.Ledger
	clock  clock.Clock
}

func NewHandler(ledger *transaction.Ledger, clk clock.Clock) *Handler {
	return &Handler{ledger: ledger, clock: clk}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type dailyResponse struct {
	Date  string      `json:"date"`
	Total json.Number `json:"total"`
}

type categoryResponse struct {
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
	Color    string      `json:"color"`
}

type statsResponse struct {
	Count      int                `json:"count"`
	TodayTotal json.Number        `json:"todayTotal"`
	MonthTotal json.Number        `json:"monthTotal"`
	Last7      []dailyResponse    `json:"last7"`
	Last30     []dailyResponse    `json:"last30"`
	ByCategory []categoryResponse `json:"byCategory"`
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	records := h.ledger.List()
	s := query.ComputeStats(records, h.clock.Now())

	resp := statsResponse{
		Count:      len(records),
		TodayTotal: json.Number(s.TodayTotal.StringFixed(2)),
		MonthTotal: json.Number(s.MonthTotal.StringFixed(2)),
		Last7:      toDaily(s.Last7),
		Last30:     toDaily(s.Last30),
		ByCategory: make([]categoryResponse, len(s.ByCategory)),
	}

	for i, c := range s.ByCategory {
		resp.ByCategory[i] = categoryResponse{
			Category: c.Category,
			Total:    json.Number(c.Total.StringFixed(2)),
			Color:    c.Color,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toDaily(days []query.DailyTotal) []dailyResponse {
	out := make([]dailyResponse, len(days))
	for i, d := range days {
		out[i] = dailyResponse{Date: d.Date, Total: json.Number(d.Total.StringFixed(2))}
	}

	return out
}
