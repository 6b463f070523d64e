package transaction

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
	"github.com/MrJamesThe3rd/pocketbook/internal/query"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type Handler struct {
	ledger *transaction.Ledger
	trash  *transaction.Trash
	clock  clock.Clock
}

func NewHandler(ledger *transaction.Ledger, trash *transaction.Trash, clk clock.Clock) *Handler {
	return &Handler{ledger: ledger, trash: trash, clock: clk}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/", h.deleteAll)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Note     string      `json:"note"`
	Date     string      `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := transaction.ParseAmount(req.Amount.String())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.Date = strings.TrimSpace(req.Date)
	if !validDate(req.Date, true) {
		http.Error(w, "invalid date: must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	tx, err := h.ledger.Add(r.Context(), transaction.CreateParams{
		Amount:   amount,
		Category: req.Category,
		Note:     req.Note,
		Date:     req.Date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := query.Query{
		Search:   params.Get("search"),
		Category: params.Get("category"),
		DateFrom: params.Get("from"),
		DateTo:   params.Get("to"),
	}

	if s := params.Get("preset"); s != "" {
		preset, err := query.ParsePreset(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		q = query.ApplyPreset(q, preset, h.clock.Now())
	}

	txs := query.Filter(h.ledger.List(), q)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx := h.ledger.Get(chi.URLParam(r, "id"))
	if tx == nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTransactionRequest struct {
	Amount   *json.Number `json:"amount,omitempty"`
	Category *string      `json:"category,omitempty"`
	Note     *string      `json:"note,omitempty"`
	Date     *string      `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := transaction.Patch{
		Category: req.Category,
		Note:     req.Note,
		Date:     req.Date,
	}

	if req.Amount != nil {
		amount, err := transaction.ParseAmount(req.Amount.String())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		patch.Amount = &amount
	}

	if req.Date != nil {
		date := strings.TrimSpace(*req.Date)
		if !validDate(date, false) {
			http.Error(w, "invalid date: must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		patch.Date = &date
	}

	tx, err := h.ledger.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}

	// Unknown ids are a no-op.
	if tx == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// delete moves the record to the trash.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.trash.MoveToTrash(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteAll wipes the ledger and the trash. It refuses to run without confirm=true.
func (h *Handler) deleteAll(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "deleting all data requires confirm=true", http.StatusBadRequest)
		return
	}

	if err := h.trash.DeleteAll(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validDate(s string, allowEmpty bool) bool {
	if s == "" {
		return allowEmpty
	}

	_, err := time.Parse(time.DateOnly, s)

	return err == nil
}

func writeError(w http.ResponseWriter, err error) {
	if transaction.IsValidation(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.Error("request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
