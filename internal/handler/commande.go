package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetCommandes возвращает заказы текущей сессии от новых к старым.
func (h *Handler) GetCommandes(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, map[string]any{"commandes": h.service.Commandes()})
}

// CancelCommande отменяет заказ.
func (h *Handler) CancelCommande(w http.ResponseWriter, r *http.Request) {
	commandeID := chi.URLParam(r, "commandeID")
	if commandeID == "" {
		h.badRequest(w, "commandeID is required")
		return
	}

	if err := h.service.CancelCommande(r.Context(), commandeID); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, map[string]any{"commandes": h.service.Commandes()})
}

type paymentRequest struct {
	CommandeID string  `json:"commandeId"`
	Montant    float64 `json:"montant"`
	ReturnURL  string  `json:"returnUrl,omitempty"`
}

// StartPayment создаёт платёж и возвращает ссылку на оплату.
func (h *Handler) StartPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	if req.CommandeID == "" || req.Montant <= 0 {
		h.badRequest(w, "commandeId and positive montant are required")
		return
	}

	link, err := h.service.StartPayment(r.Context(), req.CommandeID, req.Montant, req.ReturnURL)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, map[string]string{"link": link})
}

// PaymentReturn обрабатывает возврат пользователя с платёжного шлюза.
func (h *Handler) PaymentReturn(w http.ResponseWriter, r *http.Request) {
	paymentID := r.URL.Query().Get("paymentId")
	if paymentID == "" {
		h.badRequest(w, "paymentId is required")
		return
	}

	verification, err := h.service.VerifyPaymentReturn(r.Context(), paymentID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, map[string]string{
		"status":     verification.Status,
		"commandeId": verification.CommandeID,
	})
}

// PaymentStatus возвращает статус платежа по заказу.
func (h *Handler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	commandeID := chi.URLParam(r, "commandeID")
	if commandeID == "" {
		h.badRequest(w, "commandeID is required")
		return
	}

	status, err := h.service.PaymentStatus(r.Context(), commandeID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, map[string]string{"status": status})
}
