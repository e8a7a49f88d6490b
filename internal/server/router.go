package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"tableside/internal/auth"
	"tableside/internal/menu"
	"tableside/internal/notify"
	"tableside/internal/order"
	"tableside/internal/table"
)

type RouterDeps struct {
	Auth           *auth.Module
	Menu           *menu.Module
	Table          *table.Module
	Order          *order.Module
	Hub            *notify.Hub
	AllowedOrigins []string
	Logger         *zap.Logger
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	requireAuth := auth.RequireAuth(deps.Auth.Service, deps.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	r.Get("/ws", deps.Hub.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", deps.Auth.Controller.HandleLogin)

		r.Get("/menu", deps.Menu.Controller.HandleList)
		r.Get("/menu/all", deps.Menu.Controller.HandleListAll)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/menu", deps.Menu.Controller.HandleCreate)
			r.Put("/menu/{id}", deps.Menu.Controller.HandleUpdate)
			r.Delete("/menu/{id}", deps.Menu.Controller.HandleDelete)
		})

		r.Post("/orders", deps.Order.Controller.HandleCreate)
		r.Post("/orders/{id}/pay", deps.Order.Controller.HandlePay)
		r.Post("/payments/verify", deps.Order.Controller.HandleVerifyPayment)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/orders", deps.Order.Controller.HandleList)
			r.Put("/orders/{id}/status", deps.Order.Controller.HandleUpdateStatus)
			r.Post("/orders/{id}/archive", deps.Order.Controller.HandleArchive)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/admin/tables", deps.Table.Controller.HandleCreate)
			r.Get("/admin/tables", deps.Table.Controller.HandleList)
			r.Get("/admin/tables/{id}/qr", deps.Table.Controller.HandleQR)
		})
	})

	return r
}
