package transcript

import "testing"

func TestResolveIdentity(t *testing.T) {
	tests := []struct {
		raw        string
		wantName   string
		wantPrefix string
	}{
		{"헬톡96장영범_7", "장영범", "96"},
		{"94김용진", "김용진", "94"},
		{"김용진", "김용진", ""},
		{"헬톡88박철수_12", "박철수", "88"},
		{"", "", ""},
		{"7짧음", "7짧음", ""}, // single leading digit does not count as a year
	}
	for _, tt := range tests {
		name, prefix := ResolveIdentity(tt.raw)
		if name != tt.wantName || prefix != tt.wantPrefix {
			t.Errorf("ResolveIdentity(%q) = (%q, %q), want (%q, %q)",
				tt.raw, name, prefix, tt.wantName, tt.wantPrefix)
		}
	}
}

func TestBirthPrefixFromDate(t *testing.T) {
	tests := []struct{ birth, want string }{
		{"", ""},
		{"94", "94"},
		{"1994", "94"},
		{"1994-03-02", "94"},
		{"9", ""},
	}
	for _, tt := range tests {
		if got := BirthPrefixFromDate(tt.birth); got != tt.want {
			t.Errorf("BirthPrefixFromDate(%q) = %q, want %q", tt.birth, got, tt.want)
		}
	}
}
