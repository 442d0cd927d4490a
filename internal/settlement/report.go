package settlement

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwkim/corgicheck/internal/week"
)

const reminderNotice = "[알림] 태그되신 분들은 현재 시간 기준 아직 인증이 되지 않았거나 벌금을 납부하지 않은 것으로 확인 됩니다. 오늘 자정까지 늦지 않게 인증 또는 증빙 또는 벌금 납부 해주시기 바랍니다 ~"

// BuildReport renders the weekly settlement summary posted to the
// group chat. The structure is fixed: period header, headcount line,
// excused listing, fined listing, penalty listing, manager contact
// line. Every section renders on every run, with an explicit "none"
// line when its group is empty.
func BuildReport(results []Result, start, end time.Time, managerName string) string {
	var injeung, exclude, fine, penalty []Result
	for _, r := range results {
		switch r.Status {
		case StatusInjeung:
			injeung = append(injeung, r)
		case StatusExclude:
			exclude = append(exclude, r)
		case StatusFine:
			fine = append(fine, r)
		case StatusPenalty:
			penalty = append(penalty, r)
		}
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("집계 기간: %s ~ %s", week.FormatDate(start), week.FormatDate(end)))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf(
		"총 인원: %d명, 인증 인원: %d명, 미인증 인원: %d명, 인증 제외 인원: %d명",
		len(results), len(injeung), len(fine)+len(penalty), len(exclude)))
	lines = append(lines, "")

	if len(exclude) > 0 {
		names := make([]string, 0, len(exclude))
		for _, r := range exclude {
			label := r.BirthPrefix + r.Name
			reason := r.ExcludeReason.Label()
			if reason == "" {
				reason = r.ExcludeReasonDetail
			}
			if reason != "" {
				label += fmt.Sprintf("(%s)", reason)
			}
			names = append(names, label)
		}
		lines = append(lines, fmt.Sprintf("인증 제외 인원 (%d명): %s", len(exclude), strings.Join(names, ", ")))
	} else {
		lines = append(lines, "인증 제외 인원이 없습니다.")
	}
	lines = append(lines, "")

	if len(fine) > 0 {
		lines = append(lines, fmt.Sprintf("벌금 납부 인원 (%d명): %s", len(fine), strings.Join(displayNames(fine), ", ")))
	} else {
		lines = append(lines, "벌금 납부 인원이 없습니다.")
	}
	lines = append(lines, "")

	if len(penalty) > 0 {
		lines = append(lines, fmt.Sprintf("벌점 인원 (%d명): %s", len(penalty), strings.Join(displayNames(penalty), ", ")))
	} else {
		lines = append(lines, "벌점 인원이 없습니다.")
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("궁금한 사항은 담당 운영진 %s에게 문의 바랍니다.", managerName))

	return strings.Join(lines, "\n")
}

// BuildReminder renders the short mid-week nudge listing members still
// in the uncertified (penalty) group.
func BuildReminder(results []Result) string {
	var penalty []Result
	for _, r := range results {
		if r.Status == StatusPenalty {
			penalty = append(penalty, r)
		}
	}
	return reminderNotice + "\n" + strings.Join(displayNames(penalty), ", ")
}

func displayNames(results []Result) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.BirthPrefix+r.Name)
	}
	return names
}
