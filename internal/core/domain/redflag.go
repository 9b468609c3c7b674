package domain

import "strings"

// Severity classifies how risky a flagged clause is for the tenant.
// Model output is free-form text, so values are validated at the parsing
// boundary; anything outside the closed set downgrades to SeverityUnknown.
type Severity string

const (
	SeverityLow     Severity = "low"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
	SeverityUnknown Severity = "unknown"
)

// ParseSeverity coerces a free-form severity string from the model into
// the closed set. Unrecognised values map to SeverityUnknown rather than
// failing: a flag with a bad severity is still worth showing.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow
	case SeverityMedium:
		return SeverityMedium
	case SeverityHigh:
		return SeverityHigh
	default:
		return SeverityUnknown
	}
}

// RedFlag is one potentially tenant-unfriendly clause identified by the
// model.
type RedFlag struct {
	// ID is a short machine identifier chosen by the model,
	// like "late_fee_high".
	ID string `json:"id"`

	// Title is a short human-readable name of the issue.
	Title string `json:"title"`

	// Severity is validated against the closed set.
	Severity Severity `json:"severity"`

	// ClauseText is the lease excerpt that triggered the flag.
	ClauseText string `json:"clause_text"`

	// Explanation says in plain language why the clause may be risky.
	Explanation string `json:"explanation"`
}

// RedFlagsResult carries the outcome of a red-flag scan. Flags keep the
// model's own ordering: the model lists what it considers most important
// first and that narrative is preserved.
type RedFlagsResult struct {
	Flags []RedFlag `json:"flags"`
	Raw   string    `json:"raw"`
	Err   string    `json:"error,omitempty"`

	// Truncated reports that the document was clipped to the context budget.
	Truncated bool `json:"truncated"`
}
