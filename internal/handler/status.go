package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwkim/corgicheck/internal/settlement"
	"github.com/jwkim/corgicheck/internal/store"
	"github.com/jwkim/corgicheck/internal/week"
	ws "github.com/jwkim/corgicheck/internal/websocket"
)

type StatusHandler struct {
	memberStore *store.MemberStore
	statusStore *store.WeeklyStatusStore
	hub         *ws.Hub
	logger      *slog.Logger
}

func NewStatusHandler(ms *store.MemberStore, ss *store.WeeklyStatusStore, hub *ws.Hub, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{memberStore: ms, statusStore: ss, hub: hub, logger: logger}
}

type memberStatus struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	BirthDate           string  `json:"birth_date"`
	Status              string  `json:"status"`
	ExcludeReason       *string `json:"exclude_reason"`
	ExcludeReasonDetail *string `json:"exclude_reason_detail"`
	ExcludeEnd          *string `json:"exclude_end"`
	WeekLabel           string  `json:"week_label"`
	WeekDisplay         string  `json:"week_display"`
}

// Current renders the status board for a week. The week query
// parameter selects a specific week label; it defaults to the current
// ISO week. Members without a record default to injeung — a record
// only exists once someone settles the week or edits a member.
func (h *StatusHandler) Current(w http.ResponseWriter, r *http.Request) {
	weekLabel := r.URL.Query().Get("week")
	if weekLabel == "" {
		weekLabel = week.Current()
	} else if _, _, err := week.Parse(weekLabel); err != nil {
		writeError(w, http.StatusBadRequest, "invalid week label")
		return
	}

	members, err := h.memberStore.List(false)
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	statuses, err := h.statusStore.ListByWeek(weekLabel)
	if err != nil {
		h.logger.Error("list statuses", "week", weekLabel, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list statuses")
		return
	}

	monday, err := week.Monday(weekLabel)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid week label")
		return
	}
	display := week.DisplayLabel(monday)

	board := make([]memberStatus, 0, len(members))
	for _, m := range members {
		entry := memberStatus{
			ID:          m.ID,
			Name:        m.Name,
			BirthDate:   m.BirthDate,
			Status:      string(settlement.StatusInjeung),
			WeekLabel:   weekLabel,
			WeekDisplay: display,
		}
		if rec, ok := statuses[m.ID]; ok {
			entry.Status = rec.Status
			entry.ExcludeReason = rec.ExcludeReason
			entry.ExcludeReasonDetail = rec.ExcludeReasonDetail

			if settlement.Status(rec.Status) == settlement.StatusExclude {
				end, ok, err := settlement.ExclusionEnd(h.statusStore, m.ID, weekLabel)
				if err != nil {
					h.logger.Error("exclusion end", "member_id", m.ID, "error", err)
				} else if ok {
					entry.ExcludeEnd = &end
				}
			}
		}
		board = append(board, entry)
	}
	writeJSON(w, http.StatusOK, board)
}

// UpdateStatus manually sets a member's status, optionally across a
// run of consecutive weeks (weeks defaults to 1, capped per policy).
func (h *StatusHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Status              string  `json:"status"`
		ExcludeReason       *string `json:"exclude_reason"`
		ExcludeReasonDetail *string `json:"exclude_reason_detail"`
		Weeks               int     `json:"weeks"`
		StartWeek           string  `json:"start_week"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	member, err := h.memberStore.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member_not_found")
		return
	}

	if req.Weeks == 0 {
		req.Weeks = 1
	}
	if req.StartWeek == "" {
		req.StartWeek = week.FromTime(time.Now())
	}

	var reason settlement.Reason
	if req.ExcludeReason != nil {
		reason = settlement.Reason(*req.ExcludeReason)
	}
	var detail string
	if req.ExcludeReasonDetail != nil {
		detail = *req.ExcludeReasonDetail
	}

	err = settlement.SetStatusRange(h.statusStore, id, req.StartWeek, req.Weeks,
		settlement.Status(req.Status), reason, detail)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.hub.Broadcast(ws.NewMessage("status", "updated", id, map[string]any{
		"week":  req.StartWeek,
		"weeks": req.Weeks,
	}))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
