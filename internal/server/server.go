package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jwkim/corgicheck/internal/handler"
	"github.com/jwkim/corgicheck/internal/middleware"
	"github.com/jwkim/corgicheck/internal/store"
	ws "github.com/jwkim/corgicheck/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	adminH       *handler.AdminHandler
	memberH      *handler.MemberHandler
	statusH      *handler.StatusHandler
	settlementH  *handler.SettlementHandler
	historyH     *handler.HistoryHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	memberStore := store.NewMemberStore(db)
	statusStore := store.NewWeeklyStatusStore(db)
	summaryStore := store.NewSummaryStore(db)
	configStore := store.NewConfigStore(db)
	sessionStore := store.NewSessionStore(db)

	rateLimiter := middleware.NewRateLimiter()

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(configStore, sessionStore, rateLimiter, logger.With("component", "auth")),
		adminH:       handler.NewAdminHandler(configStore, logger.With("component", "admin")),
		memberH:      handler.NewMemberHandler(memberStore, hub, logger.With("component", "member")),
		statusH:      handler.NewStatusHandler(memberStore, statusStore, hub, logger.With("component", "status")),
		settlementH:  handler.NewSettlementHandler(memberStore, statusStore, summaryStore, configStore, hub, logger.With("component", "settlement")),
		historyH:     handler.NewHistoryHandler(memberStore, statusStore, summaryStore, logger.With("component", "history")),
		sessionStore: sessionStore,
		rateLimiter:  rateLimiter,
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public routes (no auth required)
	mux.HandleFunc("GET /api/auth/check", s.authH.Check)
	mux.HandleFunc("POST /api/auth/login", s.authH.Login)
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)
	mux.HandleFunc("POST /api/auth/setup", s.adminH.Setup)
	mux.HandleFunc("GET /health", s.healthHandler)

	// Read-only board routes — the kiosk polls these without a session
	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.HandleFunc("GET /api/status/current", s.statusH.Current)
	mux.HandleFunc("GET /api/history/weeks", s.historyH.Weeks)
	mux.HandleFunc("GET /api/history/{week}", s.historyH.Week)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	// Admin routes — wrapped with RequireAdmin middleware
	admin := middleware.RequireAdmin(s.sessionStore)
	mux.Handle("POST /api/members", admin(http.HandlerFunc(s.memberH.Create)))
	mux.Handle("PUT /api/members/{id}", admin(http.HandlerFunc(s.memberH.Update)))
	mux.Handle("PUT /api/members/{id}/leave", admin(http.HandlerFunc(s.memberH.Leave)))
	mux.Handle("PUT /api/members/{id}/return", admin(http.HandlerFunc(s.memberH.Return)))
	mux.Handle("DELETE /api/members/{id}", admin(http.HandlerFunc(s.memberH.Delete)))
	mux.Handle("PUT /api/status/{id}", admin(http.HandlerFunc(s.statusH.UpdateStatus)))
	mux.Handle("POST /api/admin/password", admin(http.HandlerFunc(s.adminH.SetPassword)))
	mux.Handle("GET /api/admin/manager", admin(http.HandlerFunc(s.adminH.GetManager)))
	mux.Handle("PUT /api/admin/manager", admin(http.HandlerFunc(s.adminH.SetManager)))
	mux.Handle("POST /api/admin/settlement", admin(http.HandlerFunc(s.settlementH.Run)))
	mux.Handle("POST /api/admin/mid-settlement", admin(http.HandlerFunc(s.settlementH.RunMid)))

	// Apply request logging middleware
	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
