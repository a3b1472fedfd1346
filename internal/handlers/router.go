package handlers

import (
	"net/http"

	"shgledger/internal/config"
	"shgledger/internal/middleware"
	"shgledger/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg           config.Config
	registry      RegistryService
	ledger        LedgerService
	groups        GroupReader
	loans         LoanReader
	passbook      PassbookReader
	reports       ReportStore
	notifications NotificationReader
	hub           *websocket.Hub
}

func New(cfg config.Config, registry RegistryService, ledger LedgerService, groups GroupReader, loans LoanReader, passbook PassbookReader, reports ReportStore, notifications NotificationReader, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:           cfg,
		registry:      registry,
		ledger:        ledger,
		groups:        groups,
		loans:         loans,
		passbook:      passbook,
		reports:       reports,
		notifications: notifications,
		hub:           hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Route("/auth", func(r chi.Router) {
		r.Post("/groups", h.RegisterGroup)
		r.Post("/login/president", h.PresidentLogin)
		r.Post("/login/member", h.MemberLogin)
		r.With(middleware.Auth(h.cfg.JWTSecret), middleware.RequirePresident).Post("/password", h.ChangePassword)
	})
	router.Route("/members", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/", h.ListMembers)
		r.With(middleware.RequirePresident).Post("/", h.AddMember)
		r.With(middleware.RequirePresident).Put("/{id}", h.UpdateMember)
		r.With(middleware.RequirePresident).Post("/{id}/deactivate", h.DeactivateMember)
		r.With(middleware.RequirePresident).Post("/{id}/reactivate", h.ReactivateMember)
	})
	router.With(middleware.Auth(h.cfg.JWTSecret), middleware.RequirePresident).Post("/deposits", h.AddDeposit)
	router.Route("/loans", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/", h.ListLoans)
		r.With(middleware.RequirePresident).Post("/", h.IssueLoan)
		r.With(middleware.RequirePresident).Post("/{id}/payments", h.RecordRepayment)
	})
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/dashboard", h.Dashboard)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/passbook", h.Passbook)
	router.With(middleware.Auth(h.cfg.JWTSecret), middleware.RequirePresident).Get("/reports/summary", h.SummaryReport)
	router.With(middleware.Auth(h.cfg.JWTSecret), middleware.RequirePresident).Get("/notifications", h.ListNotifications)
	router.Get("/ws/wallet", h.WSWallet)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
