package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jwkim/corgicheck/internal/model"
	"github.com/jwkim/corgicheck/internal/store"
	ws "github.com/jwkim/corgicheck/internal/websocket"
)

type MemberHandler struct {
	store  *store.MemberStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewMemberHandler(s *store.MemberStore, hub *ws.Hub, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{store: s, hub: hub, logger: logger}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	includeLeft := r.URL.Query().Get("include_left") == "true"
	members, err := h.store.List(includeLeft)
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		BirthYear *int   `json:"birth_year"`
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

	var birthDate string
	if req.BirthYear != nil {
		birthDate = strconv.Itoa(*req.BirthYear)
	}

	member, err := h.store.Create(req.Name, birthDate)
	if err != nil {
		h.logger.Error("create member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create member")
		return
	}

	h.hub.Broadcast(ws.NewMessage("member", "created", member.ID, nil))
	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "member_not_found")
		return
	}

	var req struct {
		Name      *string `json:"name"`
		BirthYear *int    `json:"birth_year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	name := existing.Name
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		name = strings.TrimSpace(*req.Name)
	}
	birthDate := existing.BirthDate
	if req.BirthYear != nil {
		birthDate = strconv.Itoa(*req.BirthYear)
	}

	member, err := h.store.Update(id, name, birthDate)
	if err != nil {
		h.logger.Error("update member", "member_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update member")
		return
	}

	h.hub.Broadcast(ws.NewMessage("member", "updated", id, nil))
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		LeftDate   string `json:"left_date"`
		LeftReason string `json:"left_reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "member_not_found")
		return
	}

	if err := h.store.Leave(id, req.LeftDate, req.LeftReason); err != nil {
		h.logger.Error("leave member", "member_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to deactivate member")
		return
	}

	h.hub.Broadcast(ws.NewMessage("member", "left", id, nil))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *MemberHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "member_not_found")
		return
	}

	if err := h.store.Return(id); err != nil {
		h.logger.Error("return member", "member_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reactivate member")
		return
	}

	h.hub.Broadcast(ws.NewMessage("member", "returned", id, nil))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "member_not_found")
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete member", "member_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete member")
		return
	}

	h.hub.Broadcast(ws.NewMessage("member", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
