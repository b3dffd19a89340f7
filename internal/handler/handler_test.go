package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/foodhive/client-shell/internal/api"
	"github.com/foodhive/client-shell/internal/model"
	"github.com/foodhive/client-shell/internal/service"
	syncer "github.com/foodhive/client-shell/internal/sync"
)

type stubService struct {
	loginErr    error
	registerErr error
	profileErr  error
	refreshErr  error

	session model.Session

	panier    model.Panier
	itemCount int
	cartErr   error

	checkoutCommande *model.Commande
	checkoutErr      error
	deliveryFee      float64

	table    *model.Table
	scanErr  error
	tableErr error

	favoris    []string
	favorisErr error

	commandes []model.Commande
	cancelErr error

	paymentLink  string
	paymentErr   error
	verification *api.PaymentVerification

	logoutCalled bool
}

func (s *stubService) Login(ctx context.Context, email, password string) error { return s.loginErr }

func (s *stubService) Register(ctx context.Context, req api.RegisterRequest) error {
	return s.registerErr
}

func (s *stubService) Logout() { s.logoutCalled = true }

func (s *stubService) UpdateProfile(ctx context.Context, patch model.UserPatch) error {
	return s.profileErr
}

func (s *stubService) Session() model.Session { return s.session }

func (s *stubService) Refresh(ctx context.Context) error { return s.refreshErr }

func (s *stubService) Panier() model.Panier { return s.panier }

func (s *stubService) ItemCount() int { return s.itemCount }

func (s *stubService) AddToCart(ctx context.Context, item api.ItemRequest) error { return s.cartErr }

func (s *stubService) UpdateCartItem(ctx context.Context, item api.ItemRequest) error {
	return s.cartErr
}

func (s *stubService) RemoveCartItem(ctx context.Context, platID string) error { return s.cartErr }

func (s *stubService) ClearCart(ctx context.Context) error { return s.cartErr }

func (s *stubService) CheckoutEligibility() error { return s.checkoutErr }

func (s *stubService) Checkout(ctx context.Context, coords *model.Coordinates) (*model.Commande, error) {
	return s.checkoutCommande, s.checkoutErr
}

func (s *stubService) DeliveryFee(coords *model.Coordinates) float64 { return s.deliveryFee }

func (s *stubService) HandleQRScan(ctx context.Context, raw string) (*model.Table, error) {
	return s.table, s.scanErr
}

func (s *stubService) ReleaseTable(ctx context.Context) error { return s.tableErr }

func (s *stubService) Table() *model.Table { return s.table }

func (s *stubService) Favoris() []string { return s.favoris }

func (s *stubService) AddFavori(ctx context.Context, platID string) error { return s.favorisErr }

func (s *stubService) RemoveFavori(ctx context.Context, platID string) error { return s.favorisErr }

func (s *stubService) Commandes() []model.Commande { return s.commandes }

func (s *stubService) CancelCommande(ctx context.Context, commandeID string) error {
	return s.cancelErr
}

func (s *stubService) StartPayment(ctx context.Context, commandeID string, montant float64, returnURL string) (string, error) {
	return s.paymentLink, s.paymentErr
}

func (s *stubService) VerifyPaymentReturn(ctx context.Context, paymentID string) (*api.PaymentVerification, error) {
	return s.verification, s.paymentErr
}

func (s *stubService) PaymentStatus(ctx context.Context, commandeID string) (string, error) {
	return "complete", s.paymentErr
}

func doRequest(t *testing.T, svc Service, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(svc, zap.NewNop())
	router := h.SetupRouter()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func TestLoginRejectsInvalidEmail(t *testing.T) {
	w := doRequest(t, &stubService{}, http.MethodPost, "/api/auth/login",
		`{"email":"not-an-email","password":"secret"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLoginRoleMismatchForbidden(t *testing.T) {
	svc := &stubService{loginErr: syncer.ErrRoleMismatch}
	w := doRequest(t, svc, http.MethodPost, "/api/auth/login",
		`{"email":"a@b.fr","password":"secret"}`)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if payload := decodeResponse(t, w); payload["success"] != false {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestLoginReturnsSession(t *testing.T) {
	svc := &stubService{
		session: model.Session{
			User:  &model.User{ID: "u1", Nom: "Awa", Role: model.RoleClient},
			Token: "token-1",
		},
	}
	w := doRequest(t, svc, http.MethodPost, "/api/auth/login",
		`{"email":"a@b.fr","password":"secret"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	payload := decodeResponse(t, w)
	if payload["success"] != true {
		t.Fatalf("unexpected payload: %v", payload)
	}
	data := payload["data"].(map[string]any)
	user := data["user"].(map[string]any)
	if user["id"] != "u1" {
		t.Fatalf("unexpected user: %v", user)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	w := doRequest(t, &stubService{}, http.MethodPost, "/api/auth/register",
		`{"nom":"Awa","email":"a@b.fr","password":"12345"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLogout(t *testing.T) {
	svc := &stubService{}
	w := doRequest(t, svc, http.MethodPost, "/api/auth/logout", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !svc.logoutCalled {
		t.Fatalf("logout must reach the service")
	}
}

func TestGetPanierSnapshot(t *testing.T) {
	svc := &stubService{
		panier: model.Panier{
			ID: "pan-1",
			Items: []model.PanierItem{
				{Plat: model.Plat{ID: "p1", Disponible: true}, Quantite: 2},
			},
			Total: 5000,
		},
		itemCount: 2,
	}
	w := doRequest(t, svc, http.MethodGet, "/api/panier", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	data := decodeResponse(t, w)["data"].(map[string]any)
	if data["itemCount"].(float64) != 2 {
		t.Fatalf("itemCount = %v, want 2", data["itemCount"])
	}
	panier := data["panier"].(map[string]any)
	if panier["total"].(float64) != 5000 {
		t.Fatalf("total = %v, want 5000", panier["total"])
	}
}

func TestAddItemValidation(t *testing.T) {
	w := doRequest(t, &stubService{}, http.MethodPost, "/api/panier/items",
		`{"platId":"","quantite":0}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAddItemWithoutPanier(t *testing.T) {
	svc := &stubService{cartErr: service.ErrNoPanier}
	w := doRequest(t, svc, http.MethodPost, "/api/panier/items",
		`{"platId":"p1","quantite":1}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCheckoutLocationRequired(t *testing.T) {
	svc := &stubService{checkoutErr: service.ErrLocationRequired}
	w := doRequest(t, svc, http.MethodPost, "/api/checkout", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCheckoutReturnsCommande(t *testing.T) {
	svc := &stubService{checkoutCommande: &model.Commande{ID: "c1", Statut: model.StatutEnAttente}}
	w := doRequest(t, svc, http.MethodPost, "/api/checkout",
		`{"latitude":14.6928,"longitude":-17.4467}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	data := decodeResponse(t, w)["data"].(map[string]any)
	commande := data["commande"].(map[string]any)
	if commande["_id"] != "c1" {
		t.Fatalf("unexpected commande: %v", commande)
	}
}

func TestScanQRRequiresCode(t *testing.T) {
	w := doRequest(t, &stubService{}, http.MethodPost, "/api/qr/scan", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestReleaseTableConflict(t *testing.T) {
	svc := &stubService{tableErr: service.ErrNoTable}
	w := doRequest(t, svc, http.MethodPost, "/api/table/release", "")

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestAddFavoriRequiresAuth(t *testing.T) {
	svc := &stubService{favorisErr: service.ErrNotAuthenticated}
	w := doRequest(t, svc, http.MethodPost, "/api/favoris", `{"platId":"p1"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCancelCommandeNotFound(t *testing.T) {
	svc := &stubService{cancelErr: api.ErrNotFound}
	w := doRequest(t, svc, http.MethodDelete, "/api/commandes/c404", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestStartPaymentConflict(t *testing.T) {
	svc := &stubService{paymentErr: api.ErrConflict}
	w := doRequest(t, svc, http.MethodPost, "/api/payments",
		`{"commandeId":"c1","montant":5000}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestPaymentReturnRequiresPaymentID(t *testing.T) {
	w := doRequest(t, &stubService{}, http.MethodGet, "/api/payments/return", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPaymentReturnPersistsOutcome(t *testing.T) {
	svc := &stubService{verification: &api.PaymentVerification{Status: "complete", CommandeID: "c1"}}
	w := doRequest(t, svc, http.MethodGet, "/api/payments/return?paymentId=pay-1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	data := decodeResponse(t, w)["data"].(map[string]any)
	if data["status"] != "complete" || data["commandeId"] != "c1" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestUnknownRoute(t *testing.T) {
	w := doRequest(t, &stubService{}, http.MethodGet, "/api/unknown", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
