package settlement

import (
	"strings"
	"testing"
	"time"
)

var (
	reportStart = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	reportEnd   = time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
)

func TestBuildReport(t *testing.T) {
	results := []Result{
		{Name: "김용진", BirthPrefix: "94", PhotoCount: 5, Status: StatusInjeung},
		{Name: "박철수", BirthPrefix: "88", PhotoCount: 0, Status: StatusFine},
		{Name: "이민수", BirthPrefix: "91", PhotoCount: 2, Status: StatusPenalty},
		{Name: "장영범", BirthPrefix: "96", PhotoCount: 0, Status: StatusExclude, ExcludeReason: ReasonTravel},
	}

	report := BuildReport(results, reportStart, reportEnd, "김운영")

	wantLines := []string{
		"집계 기간: 2026-02-02(월) ~ 2026-02-08(일)",
		"총 인원: 4명, 인증 인원: 1명, 미인증 인원: 2명, 인증 제외 인원: 1명",
		"인증 제외 인원 (1명): 96장영범(여행)",
		"벌금 납부 인원 (1명): 88박철수",
		"벌점 인원 (1명): 91이민수",
		"궁금한 사항은 담당 운영진 김운영에게 문의 바랍니다.",
	}
	for _, want := range wantLines {
		if !strings.Contains(report, want) {
			t.Errorf("report missing line %q\n---\n%s", want, report)
		}
	}
}

// The report structure is stable: every section renders even when its
// group is empty, including for an empty result set.
func TestBuildReportEmptyGroups(t *testing.T) {
	report := BuildReport(nil, reportStart, reportEnd, "김운영")

	wantLines := []string{
		"총 인원: 0명, 인증 인원: 0명, 미인증 인원: 0명, 인증 제외 인원: 0명",
		"인증 제외 인원이 없습니다.",
		"벌금 납부 인원이 없습니다.",
		"벌점 인원이 없습니다.",
		"궁금한 사항은 담당 운영진 김운영에게 문의 바랍니다.",
	}
	for _, want := range wantLines {
		if !strings.Contains(report, want) {
			t.Errorf("empty report missing line %q\n---\n%s", want, report)
		}
	}
}

func TestBuildReportCustomReasonFallsBackToDetail(t *testing.T) {
	results := []Result{
		{Name: "장영범", BirthPrefix: "96", Status: StatusExclude, ExcludeReasonDetail: "해외 이사"},
	}
	report := BuildReport(results, reportStart, reportEnd, "김운영")
	if !strings.Contains(report, "96장영범(해외 이사)") {
		t.Errorf("detail not used when reason code missing:\n%s", report)
	}

	// A member with no reason and no detail renders without annotation.
	results[0].ExcludeReasonDetail = ""
	report = BuildReport(results, reportStart, reportEnd, "김운영")
	if !strings.Contains(report, "인증 제외 인원 (1명): 96장영범") || strings.Contains(report, "96장영범(") {
		t.Errorf("unexpected annotation:\n%s", report)
	}
}

func TestBuildReminder(t *testing.T) {
	results := []Result{
		{Name: "김용진", BirthPrefix: "94", Status: StatusInjeung},
		{Name: "이민수", BirthPrefix: "91", Status: StatusPenalty},
		{Name: "정다운", BirthPrefix: "93", Status: StatusPenalty},
		{Name: "장영범", BirthPrefix: "96", Status: StatusExclude},
	}

	reminder := BuildReminder(results)
	lines := strings.Split(reminder, "\n")
	if len(lines) != 2 {
		t.Fatalf("reminder has %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "[알림]") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if lines[1] != "91이민수, 93정다운" {
		t.Errorf("line 2 = %q, want penalty members only", lines[1])
	}
}
