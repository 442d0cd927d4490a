package settlement

import (
	"sort"

	"github.com/jwkim/corgicheck/internal/model"
	"github.com/jwkim/corgicheck/internal/transcript"
)

// Result is one member's resolved outcome for a settled week. MemberID
// is nil when a transcript identity could not be matched to any active
// member; such entries are reported but never persisted.
type Result struct {
	Nickname              string `json:"nickname"`
	Name                  string `json:"name"`
	BirthPrefix           string `json:"birth_prefix"`
	PhotoCount            int    `json:"photo_count"`
	Status                Status `json:"status"`
	ExcludeReason         Reason `json:"exclude_reason,omitempty"`
	ExcludeReasonDetail   string `json:"exclude_reason_detail,omitempty"`
	MemberID              *int64 `json:"member_id"`
	IsExcludeButCertified bool   `json:"is_exclude_but_certified"`
}

// Settle merges per-identity photo counts with the active roster and
// any recorded per-member overrides for the target week, and resolves
// one status per member. Precedence, first match wins:
//
//  1. recorded exclude  → exclude (flagging certifying-level activity)
//  2. recorded fine     → fine
//  3. count ≥ threshold → injeung
//  4. otherwise         → penalty
//
// Active members with no matched activity are emitted with count 0.
// The result order is deterministic: sorted by name, then nickname.
func Settle(counts map[string]int, members []model.Member, overrides map[int64]model.WeeklyStatus) []Result {
	// Name collisions between active members are not disambiguated:
	// the last-registered member with a given name wins.
	byName := make(map[string]model.Member)
	for _, m := range members {
		if m.IsActive {
			byName[m.Name] = m
		}
	}

	var results []Result
	matched := make(map[int64]bool)

	for nickname, count := range counts {
		name, prefix := transcript.ResolveIdentity(nickname)
		member, ok := byName[name]
		if !ok {
			// Unknown identity: reported for review, no member record.
			r := Result{Nickname: nickname, Name: name, BirthPrefix: prefix, PhotoCount: count}
			r.Status = StatusPenalty
			if count >= CertifyThreshold {
				r.Status = StatusInjeung
			}
			results = append(results, r)
			continue
		}

		if prefix == "" {
			prefix = transcript.BirthPrefixFromDate(member.BirthDate)
		}

		id := member.ID
		r := Result{
			Nickname:    nickname,
			Name:        name,
			BirthPrefix: prefix,
			PhotoCount:  count,
			MemberID:    &id,
		}
		applyPrecedence(&r, overrides, count)
		results = append(results, r)
		matched[member.ID] = true
	}

	// Members with zero matched activity still get a row.
	for _, m := range members {
		if !m.IsActive || matched[m.ID] {
			continue
		}
		id := m.ID
		r := Result{
			Name:        m.Name,
			BirthPrefix: transcript.BirthPrefixFromDate(m.BirthDate),
			MemberID:    &id,
		}
		applyPrecedence(&r, overrides, 0)
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Name != results[j].Name {
			return results[i].Name < results[j].Name
		}
		return results[i].Nickname < results[j].Nickname
	})
	return results
}

func applyPrecedence(r *Result, overrides map[int64]model.WeeklyStatus, count int) {
	var ws *model.WeeklyStatus
	if r.MemberID != nil {
		if rec, ok := overrides[*r.MemberID]; ok {
			ws = &rec
		}
	}

	switch {
	case ws != nil && Status(ws.Status) == StatusExclude:
		r.Status = StatusExclude
		if ws.ExcludeReason != nil {
			r.ExcludeReason = Reason(*ws.ExcludeReason)
		}
		if ws.ExcludeReasonDetail != nil {
			r.ExcludeReasonDetail = *ws.ExcludeReasonDetail
		}
		// Excused members who still certified get surfaced for review;
		// the stored exclude is never auto-overridden.
		if count >= CertifyThreshold {
			r.IsExcludeButCertified = true
		}
	case ws != nil && Status(ws.Status) == StatusFine:
		r.Status = StatusFine
	case count >= CertifyThreshold:
		r.Status = StatusInjeung
	default:
		r.Status = StatusPenalty
	}
}
