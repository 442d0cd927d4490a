package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwkim/corgicheck/internal/middleware"
	"github.com/jwkim/corgicheck/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const SessionCookieName = "corgicheck_session"

type AuthHandler struct {
	configStore  *store.ConfigStore
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func NewAuthHandler(cs *store.ConfigStore, ss *store.SessionStore, rl *middleware.RateLimiter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{configStore: cs, sessionStore: ss, rateLimiter: rl, logger: logger}
}

// Check reports whether an admin password has been configured yet.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	hash, err := h.configStore.Get(store.ConfigAdminPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": hash != ""})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(middleware.RealIP(r), 5, time.Minute) {
		writeError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	hash, err := h.configStore.Get(store.ConfigAdminPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load password")
		return
	}
	if hash == "" {
		writeError(w, http.StatusBadRequest, "password_not_set")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_password")
		return
	}

	sess, err := h.sessionStore.Create()
	if err != nil {
		h.logger.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  sess.ExpiresAt,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessionStore.Delete(cookie.Value); err != nil {
			h.logger.Warn("delete session", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
