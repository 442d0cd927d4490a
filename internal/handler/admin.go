package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwkim/corgicheck/internal/store"
	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	configStore *store.ConfigStore
	logger      *slog.Logger
}

func NewAdminHandler(cs *store.ConfigStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{configStore: cs, logger: logger}
}

// Setup stores the initial admin password. It only works while no
// password has been configured, so the route can stay public.
func (h *AdminHandler) Setup(w http.ResponseWriter, r *http.Request) {
	existing, err := h.configStore.Get(store.ConfigAdminPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check password")
		return
	}
	if existing != "" {
		writeError(w, http.StatusConflict, "password_already_set")
		return
	}
	h.SetPassword(w, r)
}

// SetPassword stores the admin password as a bcrypt hash.
func (h *AdminHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.Password) < 4 {
		writeError(w, http.StatusBadRequest, "password must be at least 4 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	if err := h.configStore.Set(store.ConfigAdminPassword, string(hash)); err != nil {
		h.logger.Error("store password", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) SetManager(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.configStore.Set(store.ConfigManagerName, req.Name); err != nil {
		h.logger.Error("store manager name", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store manager name")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) GetManager(w http.ResponseWriter, r *http.Request) {
	name, err := h.configStore.Get(store.ConfigManagerName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load manager name")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}
