// Package compare checks a resolved claim's metadata fields against the
// canonical record and emits typed discrepancies.
package compare

// Field identifies which metadata field a discrepancy concerns.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldYear   Field = "year"
	FieldVenue  Field = "venue"
	FieldURL    Field = "url"
	FieldDOI    Field = "doi"

	// FieldUnverified marks the single warning emitted for a claim that
	// no provider could resolve.
	FieldUnverified Field = "unverified"
)

// Severity distinguishes definite citation errors from advisory warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Discrepancy is one detected mismatch between the claim and the
// canonical record.
type Discrepancy struct {
	Field     Field    `json:"field"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Claimed   string   `json:"claimed,omitempty"`
	Canonical string   `json:"canonical,omitempty"`
}
