package handler

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/jwkim/corgicheck/internal/store"
)

type HistoryHandler struct {
	memberStore  *store.MemberStore
	statusStore  *store.WeeklyStatusStore
	summaryStore *store.SummaryStore
	logger       *slog.Logger
}

func NewHistoryHandler(ms *store.MemberStore, ss *store.WeeklyStatusStore, sums *store.SummaryStore, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{memberStore: ms, statusStore: ss, summaryStore: sums, logger: logger}
}

// Weeks lists all settled week labels, newest first.
func (h *HistoryHandler) Weeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.summaryStore.ListWeeks()
	if err != nil {
		h.logger.Error("list weeks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list weeks")
		return
	}
	if weeks == nil {
		weeks = []string{}
	}
	writeJSON(w, http.StatusOK, weeks)
}

type historyEntry struct {
	Name                string  `json:"name"`
	BirthDate           string  `json:"birth_date"`
	Status              string  `json:"status"`
	ExcludeReason       *string `json:"exclude_reason"`
	ExcludeReasonDetail *string `json:"exclude_reason_detail"`
}

// Week returns the stored summary and the per-member records of one
// settled week.
func (h *HistoryHandler) Week(w http.ResponseWriter, r *http.Request) {
	weekLabel := r.PathValue("week")

	summary, err := h.summaryStore.Get(weekLabel)
	if err != nil {
		h.logger.Error("get summary", "week", weekLabel, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}
	if summary == nil {
		writeError(w, http.StatusNotFound, "week_not_found")
		return
	}

	statuses, err := h.statusStore.ListByWeek(weekLabel)
	if err != nil {
		h.logger.Error("list statuses", "week", weekLabel, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list statuses")
		return
	}

	entries := make([]historyEntry, 0, len(statuses))
	for memberID, rec := range statuses {
		entry := historyEntry{
			Name:                "unknown",
			Status:              rec.Status,
			ExcludeReason:       rec.ExcludeReason,
			ExcludeReasonDetail: rec.ExcludeReasonDetail,
		}
		member, err := h.memberStore.GetByID(memberID)
		if err != nil {
			h.logger.Warn("get member", "member_id", memberID, "error", err)
		} else if member != nil {
			entry.Name = member.Name
			entry.BirthDate = member.BirthDate
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	writeJSON(w, http.StatusOK, map[string]any{
		"week_label":   weekLabel,
		"summary_text": summary.SummaryText,
		"members":      entries,
	})
}
