package trash

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type Handler struct {
	trash *transaction.Trash
}

func NewHandler(trash *transaction.Trash) *Handler {
	return &Handler{trash: trash}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Delete("/", h.empty)
	r.Post("/restore", h.restoreSelected)
	r.Post("/delete", h.deleteSelected)
	r.Post("/sweep", h.sweep)
	r.Post("/{id}/restore", h.restore)
	r.Delete("/{id}", h.delete)
}

type trashedResponse struct {
	ID        string      `json:"id"`
	Amount    json.Number `json:"amount"`
	Category  string      `json:"category"`
	Note      string      `json:"note"`
	Date      string      `json:"date"`
	CreatedAt time.Time   `json:"createdAt"`
	DeletedAt time.Time   `json:"deletedAt"`
	Expiry    string      `json:"expiry"`
}

type listResponse struct {
	Count int               `json:"count"`
	Items []trashedResponse `json:"items"`
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

type countResponse struct {
	Count int `json:"count"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	items := h.trash.List()

	resp := listResponse{
		Count: len(items),
		Items: make([]trashedResponse, len(items)),
	}

	for i, item := range items {
		resp.Items[i] = trashedResponse{
			ID:        item.ID,
			Amount:    json.Number(item.Amount.StringFixed(2)),
			Category:  item.Category,
			Note:      item.Note,
			Date:      item.Date,
			CreatedAt: item.CreatedAt,
			DeletedAt: item.DeletedAt,
			Expiry:    h.trash.ExpiryDescription(item.DeletedAt),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	if _, err := h.trash.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.trash.PermanentlyDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restoreSelected(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.trash.RestoreSelected(r.Context(), req.IDs)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

func (h *Handler) deleteSelected(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.trash.DeleteSelected(r.Context(), req.IDs)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// empty purges the whole trash. It refuses to run without confirm=true.
func (h *Handler) empty(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "emptying the trash requires confirm=true", http.StatusBadRequest)
		return
	}

	n, err := h.trash.Empty(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

func (h *Handler) sweep(w http.ResponseWriter, r *http.Request) {
	n, err := h.trash.SweepExpired(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func internalError(w http.ResponseWriter, err error) {
	slog.Error("trash request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
