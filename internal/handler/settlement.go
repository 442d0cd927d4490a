package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/jwkim/corgicheck/internal/settlement"
	"github.com/jwkim/corgicheck/internal/store"
	"github.com/jwkim/corgicheck/internal/transcript"
	"github.com/jwkim/corgicheck/internal/week"
	ws "github.com/jwkim/corgicheck/internal/websocket"
)

// Uploaded chat exports are small text archives; cap the upload to
// keep a bad client from exhausting memory.
const maxUploadBytes = 32 << 20

const defaultManagerName = "운영진"

type SettlementHandler struct {
	memberStore  *store.MemberStore
	statusStore  *store.WeeklyStatusStore
	summaryStore *store.SummaryStore
	configStore  *store.ConfigStore
	hub          *ws.Hub
	logger       *slog.Logger
}

func NewSettlementHandler(ms *store.MemberStore, ss *store.WeeklyStatusStore, sums *store.SummaryStore, cs *store.ConfigStore, hub *ws.Hub, logger *slog.Logger) *SettlementHandler {
	return &SettlementHandler{
		memberStore:  ms,
		statusStore:  ss,
		summaryStore: sums,
		configStore:  cs,
		hub:          hub,
		logger:       logger,
	}
}

// settleWeek runs one settlement pass over an uploaded chat export and
// returns the resolved results plus the week bounds. An empty result
// with ok=false means there was nothing to settle, which is a normal
// outcome, not an error.
func (h *SettlementHandler) settleWeek(w http.ResponseWriter, r *http.Request) (results []settlement.Result, monday, sunday time.Time, ok bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, monday, sunday, false
	}

	weekStart := r.FormValue("week_start")
	monday, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "week_start must be YYYY-MM-DD")
		return nil, monday, sunday, false
	}
	sunday = monday.AddDate(0, 0, 6)

	file, _, err := r.FormFile("chat_zip")
	if err != nil {
		writeError(w, http.StatusBadRequest, "chat_zip file is required")
		return nil, monday, sunday, false
	}
	defer file.Close()

	zipData, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read upload")
		return nil, monday, sunday, false
	}

	text, found, err := transcript.Extract(zipData)
	if err != nil {
		h.logger.Warn("extract transcript", "error", err)
		writeError(w, http.StatusBadRequest, "corrupt chat archive")
		return nil, monday, sunday, false
	}
	if !found {
		// Nothing to settle.
		writeJSON(w, http.StatusOK, map[string]string{"error": "no txt file found in zip"})
		return nil, monday, sunday, false
	}

	counts, err := transcript.Parse(text, monday, sunday)
	if err != nil {
		writeError(w, http.StatusBadRequest, "transcript is empty")
		return nil, monday, sunday, false
	}

	members, err := h.memberStore.List(false)
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return nil, monday, sunday, false
	}

	weekLabel := week.FromTime(monday)
	overrides, err := h.statusStore.ListByWeek(weekLabel)
	if err != nil {
		h.logger.Error("list statuses", "week", weekLabel, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list statuses")
		return nil, monday, sunday, false
	}

	return settlement.Settle(counts, members, overrides), monday, sunday, true
}

// Run settles a week: parses the uploaded export, resolves statuses,
// persists the per-member records and the rendered summary, and
// returns both to the caller.
func (h *SettlementHandler) Run(w http.ResponseWriter, r *http.Request) {
	results, monday, sunday, ok := h.settleWeek(w, r)
	if !ok {
		return
	}
	weekLabel := week.FromTime(monday)

	managerName, err := h.configStore.Get(store.ConfigManagerName)
	if err != nil {
		h.logger.Warn("load manager name", "error", err)
	}
	if managerName == "" {
		managerName = defaultManagerName
	}
	summary := settlement.BuildReport(results, monday, sunday, managerName)

	if err := h.persist(r.Context(), weekLabel, results, summary); err != nil {
		h.logger.Error("persist settlement", "week", weekLabel, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to persist settlement")
		return
	}

	h.hub.Broadcast(ws.NewMessage("settlement", "completed", 0, map[string]any{
		"week": weekLabel,
	}))
	h.logger.Info("settlement complete", "week", weekLabel, "members", len(results))

	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"summary": summary,
		"period": map[string]string{
			"start": monday.Format("2006-01-02"),
			"end":   sunday.Format("2006-01-02"),
		},
	})
}

// RunMid produces the mid-week reminder notice without persisting
// anything.
func (h *SettlementHandler) RunMid(w http.ResponseWriter, r *http.Request) {
	results, _, _, ok := h.settleWeek(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"summary": settlement.BuildReminder(results),
	})
}

// persist writes the resolved status rows and the summary. Each write
// is an idempotent upsert, so the whole batch is safe to retry on
// transient store errors.
func (h *SettlementHandler) persist(ctx context.Context, weekLabel string, results []settlement.Result, summary string) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))

	for _, res := range results {
		if res.MemberID == nil {
			continue
		}
		var reason, detail *string
		if res.Status == settlement.StatusExclude {
			if res.ExcludeReason != "" {
				r := string(res.ExcludeReason)
				reason = &r
			}
			if res.ExcludeReasonDetail != "" {
				d := res.ExcludeReasonDetail
				detail = &d
			}
		}

		memberID := *res.MemberID
		status := string(res.Status)
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := h.statusStore.Upsert(memberID, weekLabel, status, reason, detail); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := h.summaryStore.Upsert(weekLabel, summary); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
