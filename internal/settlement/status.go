// Package settlement resolves weekly certification statuses for group
// members from transcript photo counts and recorded overrides, and
// renders the weekly summary reports.
package settlement

// CertifyThreshold is the minimum weekly photo count for automatic
// certification. Group policy, not a tunable.
const CertifyThreshold = 4

type Status string

const (
	StatusInjeung Status = "injeung" // certified
	StatusFine    Status = "fine"    // manual penalty, paid in money
	StatusExclude Status = "exclude" // excused for the week
	StatusPenalty Status = "penalty" // uncertified, default-delinquent
)

// Valid reports whether s is one of the four recognized status tags.
func (s Status) Valid() bool {
	switch s {
	case StatusInjeung, StatusFine, StatusExclude, StatusPenalty:
		return true
	}
	return false
}

type Reason string

const (
	ReasonIllness  Reason = "illness"
	ReasonTravel   Reason = "travel"
	ReasonBusiness Reason = "business"
	ReasonInjury   Reason = "injury"
	ReasonSurgery  Reason = "surgery"
	ReasonCustom   Reason = "custom"
)

var reasonLabels = map[Reason]string{
	ReasonIllness:  "질병",
	ReasonTravel:   "여행",
	ReasonBusiness: "출장",
	ReasonInjury:   "부상",
	ReasonSurgery:  "수술",
	ReasonCustom:   "직접쓰기",
}

// Valid reports whether r is one of the recognized exclusion reasons.
func (r Reason) Valid() bool {
	_, ok := reasonLabels[r]
	return ok
}

// Label returns the Korean display label for r, or "" if r is not a
// recognized reason code.
func (r Reason) Label() string {
	return reasonLabels[r]
}
