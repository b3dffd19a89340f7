package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/foodhive/client-shell/internal/middleware"
)

// SetupRouter настраивает маршруты локального HTTP-интерфейса оболочки.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/auth/register", h.Register)
		r.Post("/auth/logout", h.Logout)

		r.Get("/session", h.GetSession)
		r.Put("/profile", h.UpdateProfile)
		r.Post("/sync", h.Refresh)

		r.Post("/qr/scan", h.ScanQR)
		r.Get("/table", h.GetTable)
		r.Post("/table/release", h.ReleaseTable)

		r.Route("/panier", func(r chi.Router) {
			r.Get("/", h.GetPanier)
			r.Delete("/", h.ClearPanier)
			r.Post("/items", h.AddItem)
			r.Put("/items", h.UpdateItem)
			r.Delete("/items/{platID}", h.RemoveItem)
		})

		r.Post("/checkout", h.Checkout)
		r.Get("/frais-livraison", h.GetDeliveryFee)

		r.Route("/favoris", func(r chi.Router) {
			r.Get("/", h.GetFavoris)
			r.Post("/", h.AddFavori)
			r.Delete("/{platID}", h.RemoveFavori)
		})

		r.Route("/commandes", func(r chi.Router) {
			r.Get("/", h.GetCommandes)
			r.Delete("/{commandeID}", h.CancelCommande)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", h.StartPayment)
			r.Get("/return", h.PaymentReturn)
			r.Get("/status/{commandeID}", h.PaymentStatus)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
