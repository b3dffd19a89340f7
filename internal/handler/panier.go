package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foodhive/client-shell/internal/api"
	"github.com/foodhive/client-shell/internal/model"
)

type panierResponse struct {
	Panier    model.Panier `json:"panier"`
	ItemCount int          `json:"itemCount"`
}

func (h *Handler) panierSnapshot() panierResponse {
	return panierResponse{
		Panier:    h.service.Panier(),
		ItemCount: h.service.ItemCount(),
	}
}

// GetPanier возвращает снимок активной корзины и счётчик позиций.
func (h *Handler) GetPanier(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, h.panierSnapshot())
}

// AddItem добавляет позицию в корзину.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req api.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	if req.PlatID == "" || req.Quantite <= 0 {
		h.badRequest(w, "platId and positive quantite are required")
		return
	}

	if err := h.service.AddToCart(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, h.panierSnapshot())
}

// UpdateItem изменяет количество или комментарий позиции. Нулевое
// количество удаляет позицию.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req api.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	if req.PlatID == "" || req.Quantite < 0 {
		h.badRequest(w, "platId and non-negative quantite are required")
		return
	}

	if err := h.service.UpdateCartItem(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, h.panierSnapshot())
}

// RemoveItem убирает позицию из корзины.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	platID := chi.URLParam(r, "platID")
	if platID == "" {
		h.badRequest(w, "platID is required")
		return
	}

	if err := h.service.RemoveCartItem(r.Context(), platID); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, h.panierSnapshot())
}

// ClearPanier опустошает корзину.
func (h *Handler) ClearPanier(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCart(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, h.panierSnapshot())
}

type checkoutRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Checkout преобразует корзину в заказ.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.badRequest(w, "invalid request body")
			return
		}
	}

	var coords *model.Coordinates
	if req.Latitude != nil && req.Longitude != nil {
		coords = &model.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	commande, err := h.service.Checkout(r.Context(), coords)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, map[string]any{"commande": commande})
}

// GetDeliveryFee возвращает стоимость доставки для координат клиента.
func (h *Handler) GetDeliveryFee(w http.ResponseWriter, r *http.Request) {
	latRaw := r.URL.Query().Get("latitude")
	lngRaw := r.URL.Query().Get("longitude")

	var coords *model.Coordinates
	if latRaw != "" && lngRaw != "" {
		lat, errLat := strconv.ParseFloat(latRaw, 64)
		lng, errLng := strconv.ParseFloat(lngRaw, 64)
		if errLat != nil || errLng != nil {
			h.badRequest(w, "invalid coordinates")
			return
		}
		coords = &model.Coordinates{Latitude: lat, Longitude: lng}
	}

	h.writeData(w, http.StatusOK, map[string]float64{
		"fraisLivraison": h.service.DeliveryFee(coords),
	})
}

// GetFavoris возвращает избранные блюда пользователя.
func (h *Handler) GetFavoris(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, map[string][]string{"favoris": h.service.Favoris()})
}

type favoriRequest struct {
	PlatID string `json:"platId"`
}

// AddFavori добавляет блюдо в избранное.
func (h *Handler) AddFavori(w http.ResponseWriter, r *http.Request) {
	var req favoriRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlatID == "" {
		h.badRequest(w, "platId is required")
		return
	}

	if err := h.service.AddFavori(r.Context(), req.PlatID); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, map[string][]string{"favoris": h.service.Favoris()})
}

// RemoveFavori убирает блюдо из избранного.
func (h *Handler) RemoveFavori(w http.ResponseWriter, r *http.Request) {
	platID := chi.URLParam(r, "platID")
	if platID == "" {
		h.badRequest(w, "platID is required")
		return
	}

	if err := h.service.RemoveFavori(r.Context(), platID); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, map[string][]string{"favoris": h.service.Favoris()})
}
