package transcript

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Line shapes produced by the chat export. The separator tokens and
// field order are fixed by the export format and must not change.
var (
	dateHeaderRe = regexp.MustCompile(`(\d{4})년 (\d{1,2})월 (\d{1,2})일`)
	photoLineRe  = regexp.MustCompile(`(\d{4})\. (\d{1,2})\. (\d{1,2})\. \d{2}:\d{2}, (.+?) : 사진 (\d+)장`)
)

// One member's export client emits a bare "." as the sender identity.
const brokenNickname = "."
const brokenNicknameAlias = "94김용진"

// ErrEmptyTranscript reports a transcript with no content at all,
// which means the export itself is corrupt.
var ErrEmptyTranscript = errors.New("transcript is empty")

// Parse scans transcript lines for photo posts and accumulates photo
// counts per raw sender identity. start and end bound the post dates
// inclusively; a zero time means unbounded on that side. Lines that
// match neither recognized shape are skipped silently.
func Parse(text string, start, end time.Time) (map[string]int, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyTranscript
	}

	counts := make(map[string]int)
	for _, line := range strings.Split(text, "\n") {
		// Date headers exist for human readability only.
		if dateHeaderRe.MatchString(line) {
			continue
		}

		m := photoLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		lineDate := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)

		if !start.IsZero() && lineDate.Before(dateOnly(start)) {
			continue
		}
		if !end.IsZero() && lineDate.After(dateOnly(end)) {
			continue
		}

		nickname := strings.TrimSpace(m[4])
		if nickname == brokenNickname {
			nickname = brokenNicknameAlias
		}

		n, _ := strconv.Atoi(m[5])
		counts[nickname] += n
	}
	return counts, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
