// Package handler содержит HTTP-обработчики локального интерфейса
// клиентской оболочки FoodHive.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/api"
	"github.com/foodhive/client-shell/internal/model"
	"github.com/foodhive/client-shell/internal/qr"
	"github.com/foodhive/client-shell/internal/service"
	syncer "github.com/foodhive/client-shell/internal/sync"
	"github.com/foodhive/client-shell/internal/validation"
)

// Service определяет контракт прикладной логики, используемой
// HTTP-обработчиками.
type Service interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req api.RegisterRequest) error
	Logout()
	UpdateProfile(ctx context.Context, patch model.UserPatch) error
	Session() model.Session
	Refresh(ctx context.Context) error

	Panier() model.Panier
	ItemCount() int
	AddToCart(ctx context.Context, item api.ItemRequest) error
	UpdateCartItem(ctx context.Context, item api.ItemRequest) error
	RemoveCartItem(ctx context.Context, platID string) error
	ClearCart(ctx context.Context) error
	CheckoutEligibility() error
	Checkout(ctx context.Context, coords *model.Coordinates) (*model.Commande, error)
	DeliveryFee(coords *model.Coordinates) float64

	HandleQRScan(ctx context.Context, raw string) (*model.Table, error)
	ReleaseTable(ctx context.Context) error
	Table() *model.Table

	Favoris() []string
	AddFavori(ctx context.Context, platID string) error
	RemoveFavori(ctx context.Context, platID string) error

	Commandes() []model.Commande
	CancelCommande(ctx context.Context, commandeID string) error

	StartPayment(ctx context.Context, commandeID string, montant float64, returnURL string) (string, error)
	VerifyPaymentReturn(ctx context.Context, paymentID string) (*api.PaymentVerification, error)
	PaymentStatus(ctx context.Context, commandeID string) (string, error)
}

// Handler реализует HTTP-обработчики локального интерфейса.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
	}
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (h *Handler) writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response{Success: true, Data: data}); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, syncer.ErrRoleMismatch):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotAuthenticated) || errors.Is(err, api.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, api.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, api.ErrConflict) || errors.Is(err, service.ErrNoTable):
		status = http.StatusConflict
	case errors.Is(err, qr.ErrInvalidPayload),
		errors.Is(err, service.ErrNoPanier),
		errors.Is(err, service.ErrEmptyPanier),
		errors.Is(err, service.ErrUnavailableItems),
		errors.Is(err, service.ErrLocationRequired):
		status = http.StatusBadRequest
	default:
		h.logger.Error("request failed", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Success: false, Message: err.Error()})
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(response{Success: false, Message: message})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login аутентифицирует пользователя и открывает новую сессию.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	if !validation.IsValidEmail(req.Email) || req.Password == "" {
		h.badRequest(w, "invalid credentials format")
		return
	}

	if err := h.service.Login(r.Context(), req.Email, req.Password); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, h.service.Session())
}

// Register регистрирует нового пользователя и сразу открывает сессию.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	switch {
	case req.Nom == "":
		h.badRequest(w, "nom is required")
		return
	case !validation.IsValidEmail(req.Email):
		h.badRequest(w, "invalid email")
		return
	case req.Telephone != "" && !validation.IsValidPhone(req.Telephone):
		h.badRequest(w, "invalid telephone")
		return
	case !validation.IsValidPassword(req.Password):
		h.badRequest(w, "password too short")
		return
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, h.service.Session())
}

// Logout закрывает текущую сессию.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout()
	h.writeData(w, http.StatusOK, nil)
}

// GetSession возвращает снимок текущей сессии.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, h.service.Session())
}

// UpdateProfile применяет частичное обновление профиля пользователя.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch model.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	if patch.Email != nil && !validation.IsValidEmail(*patch.Email) {
		h.badRequest(w, "invalid email")
		return
	}
	if patch.Telephone != nil && *patch.Telephone != "" && !validation.IsValidPhone(*patch.Telephone) {
		h.badRequest(w, "invalid telephone")
		return
	}

	if err := h.service.UpdateProfile(r.Context(), patch); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusOK, h.service.Session())
}

// Refresh запускает проход синхронизации с сервером FoodHive.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, nil)
}
