package domain

// TermUnknown is the explicit marker for a lease term the model could not
// find in the text. Every recognised field is always present in a
// LeaseTerms value; unknown is explicit absence, not a missing key.
const TermUnknown = "unknown"

// TermFields is the fixed set of lease term fields, in presentation order.
// The extraction prompt requires the model to emit exactly these keys.
var TermFields = []string{
	"monthly_rent",
	"rent_due_date",
	"lease_start",
	"lease_end",
	"security_deposit",
	"late_fee",
	"utilities_tenant",
	"utilities_landlord",
	"pets_allowed",
	"notice_period",
	"property_address",
}

// LeaseTerms maps every field in TermFields to an extracted value or
// TermUnknown. It is never partially populated.
type LeaseTerms map[string]string

// NewLeaseTerms returns a LeaseTerms with every recognised field set to
// TermUnknown.
func NewLeaseTerms() LeaseTerms {
	t := make(LeaseTerms, len(TermFields))
	for _, f := range TermFields {
		t[f] = TermUnknown
	}
	return t
}

// IsTermField reports whether name is one of the recognised fields.
func IsTermField(name string) bool {
	for _, f := range TermFields {
		if f == name {
			return true
		}
	}
	return false
}

// TermsResult carries the outcome of a term extraction request. When the
// model output could not be parsed, Err holds the annotation and Raw the
// unmodified model text so the caller can still surface it.
type TermsResult struct {
	Terms LeaseTerms `json:"terms"`
	Raw   string     `json:"raw"`
	Err   string     `json:"error,omitempty"`

	// Truncated reports that the document was clipped to the context budget.
	Truncated bool `json:"truncated"`
}
