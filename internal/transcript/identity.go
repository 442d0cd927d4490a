package transcript

import "regexp"

// Nickname patterns used in the group chat, tried in order:
//
//	헬톡96장영범_7  → name 장영범, birth prefix 96
//	94김용진        → name 김용진, birth prefix 94
var (
	taggedNicknameRe = regexp.MustCompile(`^헬톡(\d{2})(.+?)_\d+`)
	bareNicknameRe   = regexp.MustCompile(`^(\d{2})(.+)`)
)

// ResolveIdentity decomposes a raw sender identity into a display name
// and a 2-digit birth-year prefix. It is total: an identity matching
// neither pattern resolves to itself with an empty prefix.
func ResolveIdentity(raw string) (name, birthPrefix string) {
	if m := taggedNicknameRe.FindStringSubmatch(raw); m != nil {
		return m[2], m[1]
	}
	if m := bareNicknameRe.FindStringSubmatch(raw); m != nil {
		return m[2], m[1]
	}
	return raw, ""
}

// BirthPrefixFromDate derives a 2-digit birth-year prefix from a
// member's stored birth value, which may be a bare 2-digit year, a
// 4-digit year, or a full YYYY-MM-DD date.
func BirthPrefixFromDate(birthDate string) string {
	switch {
	case birthDate == "":
		return ""
	case len(birthDate) == 2:
		return birthDate
	case len(birthDate) >= 4:
		return birthDate[2:4]
	}
	return ""
}
