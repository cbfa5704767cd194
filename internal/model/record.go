package model

import "time"

// Status classifies the outcome of validating one term
type Status string

const (
	StatusValid   Status = "valid"   // Value satisfied the rule
	StatusInvalid Status = "invalid" // Value failed the rule
	StatusUnknown Status = "unknown" // Term has no rule in the master sheet
	StatusMissing Status = "missing" // Rule exists, term not found in document
)

// MissingValue is the placeholder extracted value on missing-term records
const MissingValue = "Missing"

// ValidationRecord is the terminal artifact for one term: the five report
// fields serialized verbatim by the rendering layer.
type ValidationRecord struct {
	Term           string `json:"term"`
	ExtractedValue string `json:"extracted_value"`
	Status         Status `json:"status"`
	ExpectedValue  string `json:"expected_value,omitempty"`
	AllowedRange   string `json:"allowed_range,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// Report is the complete result of checking one term sheet against one
// master sheet.
type Report struct {
	TermSheet   string    `json:"term_sheet"`
	MasterSheet string    `json:"master_sheet"`
	CheckedAt   time.Time `json:"checked_at"`

	ExtractedTerms  *TermMap           `json:"extracted_terms"`
	NormalizedTerms *TermMap           `json:"normalized_terms"`
	Records         []ValidationRecord `json:"records"`

	Summary Summary `json:"summary"`
}

// Summary holds per-status counts. It is a downstream aggregation over
// the records, computed by the pipeline, never by the validator.
type Summary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
	Unknown int `json:"unknown"`
	Missing int `json:"missing"`
}

// Summarize counts records by status
func Summarize(records []ValidationRecord) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusValid:
			s.Valid++
		case StatusInvalid:
			s.Invalid++
		case StatusUnknown:
			s.Unknown++
		case StatusMissing:
			s.Missing++
		}
	}
	return s
}
