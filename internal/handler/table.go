package handler

import (
	"encoding/json"
	"net/http"
)

type scanRequest struct {
	Code string `json:"code"`
}

// ScanQR обрабатывает скан QR-кода стола.
func (h *Handler) ScanQR(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		h.badRequest(w, "code is required")
		return
	}

	table, err := h.service.HandleQRScan(r.Context(), req.Code)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, map[string]any{"table": table})
}

// GetTable возвращает текущий стол или null.
func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, map[string]any{"table": h.service.Table()})
}

// ReleaseTable освобождает занятый стол.
func (h *Handler) ReleaseTable(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ReleaseTable(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, nil)
}
