package validate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Dedsec0098/Termsheet-Validation/internal/dates"
	"github.com/Dedsec0098/Termsheet-Validation/internal/fuzzy"
	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
)

// Relative tolerance for numeric equality against an expected value
const numericRelTol = 1e-5

// Validator checks normalized terms against the master sheet's rules.
// Each value's domain (date, number, text) is inferred by sequential
// best-effort parse attempts, then domain-specific comparison logic runs.
type Validator struct {
	scorer        fuzzy.Scorer
	textThreshold int
}

// NewValidator creates a validator around the injected similarity scorer
func NewValidator(scorer fuzzy.Scorer, cfg model.ValidateConfig) *Validator {
	threshold := cfg.TextMatchThreshold
	if threshold <= 0 {
		threshold = 90
	}
	return &Validator{scorer: scorer, textThreshold: threshold}
}

// Validate produces exactly one record per normalized term, in insertion
// order, followed by one missing record per master rule whose term was not
// extracted, in table order. A failure validating one term never prevents
// validation of the others.
func (v *Validator) Validate(normalized *model.TermMap, rules []model.MasterRule) []model.ValidationRecord {
	index := make(map[string]model.MasterRule, len(rules))
	for _, r := range rules {
		term := strings.TrimSpace(r.Term)
		if term == "" {
			continue
		}
		if _, exists := index[term]; !exists {
			index[term] = r
		}
	}

	records := make([]model.ValidationRecord, 0, normalized.Len()+len(rules))

	normalized.Each(func(term, value string) {
		record := model.ValidationRecord{
			Term:           term,
			ExtractedValue: value,
		}

		rule, known := index[term]
		if !known {
			record.Status = model.StatusUnknown
			record.Notes = "Term not found in master sheet"
			records = append(records, record)
			return
		}

		record.ExpectedValue = rule.ExpectedValue
		record.AllowedRange = rule.AllowedRange
		record.Status, record.Notes = v.evaluate(value, rule)
		records = append(records, record)
	})

	// Master terms absent from the extracted set surface as missing
	// records, once per distinct term, in table order.
	emitted := make(map[string]bool, len(rules))
	for _, r := range rules {
		term := strings.TrimSpace(r.Term)
		if term == "" || emitted[term] {
			continue
		}
		emitted[term] = true
		if normalized.Has(term) {
			continue
		}
		records = append(records, model.ValidationRecord{
			Term:           term,
			ExtractedValue: model.MissingValue,
			Status:         model.StatusMissing,
			ExpectedValue:  r.ExpectedValue,
			AllowedRange:   r.AllowedRange,
			Notes:          "Term not found in document",
		})
	}

	return records
}

// evaluate runs the domain cascade for a single value.
// A panic inside one term's comparison is converted into an invalid
// record so the batch always completes.
func (v *Validator) evaluate(value string, rule model.MasterRule) (status model.Status, notes string) {
	defer func() {
		if r := recover(); r != nil {
			status = model.StatusInvalid
			notes = fmt.Sprintf("Validation error: %v", r)
		}
	}()

	expected := strings.TrimSpace(rule.ExpectedValue)
	allowed := strings.TrimSpace(rule.AllowedRange)
	value = strings.TrimSpace(value)

	if expected == "" && allowed == "" {
		return model.StatusValid, "No validation rules specified"
	}

	if d, err := dates.Parse(value); err == nil {
		return v.validateDate(d, expected, allowed)
	}
	if n, err := parseNumber(value); err == nil {
		return v.validateNumber(n, expected, allowed)
	}
	return v.validateText(value, expected, allowed)
}

// validateDate applies expected-value equality, then range dispatch
func (v *Validator) validateDate(extracted time.Time, expected, allowed string) (model.Status, string) {
	const layout = "2006-01-02"

	if expected != "" {
		if expectedDate, err := dates.Parse(expected); err == nil && extracted.Equal(expectedDate) {
			return model.StatusValid, "Date matches expected value"
		}
	}

	if allowed != "" {
		switch kind, lo, hi := splitRange(allowed); kind {
		case rangeMin:
			minDate, err := dates.Parse(lo)
			if err != nil {
				return model.StatusInvalid, rangeParseNote(lo, allowed)
			}
			if !extracted.Before(minDate) {
				return model.StatusValid, fmt.Sprintf("Date is after minimum %s", minDate.Format(layout))
			}
			return model.StatusInvalid, fmt.Sprintf("Date is before minimum %s", minDate.Format(layout))

		case rangeMax:
			maxDate, err := dates.Parse(lo)
			if err != nil {
				return model.StatusInvalid, rangeParseNote(lo, allowed)
			}
			if !extracted.After(maxDate) {
				return model.StatusValid, fmt.Sprintf("Date is before maximum %s", maxDate.Format(layout))
			}
			return model.StatusInvalid, fmt.Sprintf("Date is after maximum %s", maxDate.Format(layout))

		case rangeInterval:
			minDate, errLo := dates.Parse(lo)
			maxDate, errHi := dates.Parse(hi)
			if errLo != nil {
				return model.StatusInvalid, rangeParseNote(lo, allowed)
			}
			if errHi != nil {
				return model.StatusInvalid, rangeParseNote(hi, allowed)
			}
			if !extracted.Before(minDate) && !extracted.After(maxDate) {
				return model.StatusValid, fmt.Sprintf("Date is within range %s to %s", minDate.Format(layout), maxDate.Format(layout))
			}
			return model.StatusInvalid, fmt.Sprintf("Date is outside range %s to %s", minDate.Format(layout), maxDate.Format(layout))
		}
	}

	if expected != "" {
		return model.StatusInvalid, fmt.Sprintf("Date %s doesn't match expected %s", extracted.Format(layout), expected)
	}
	return model.StatusValid, "No specific date validation rules"
}

// validateNumber applies tolerant equality, then range dispatch. Range
// bounds run through the same stripping rule as values; a percent sign on
// the extracted value never rescales it.
func (v *Validator) validateNumber(extracted float64, expected, allowed string) (model.Status, string) {
	if expected != "" {
		if expectedNum, err := parseNumber(expected); err == nil && closeEnough(extracted, expectedNum) {
			return model.StatusValid, "Number matches expected value"
		}
	}

	if allowed != "" {
		switch kind, lo, hi := splitRange(allowed); kind {
		case rangeMin:
			minVal, err := parseNumber(lo)
			if err != nil {
				return model.StatusInvalid, rangeParseNote(lo, allowed)
			}
			if extracted >= minVal {
				return model.StatusValid, fmt.Sprintf("Number is greater than or equal to minimum %s", formatNumber(minVal))
			}
			return model.StatusInvalid, fmt.Sprintf("Number is below minimum %s", formatNumber(minVal))

		case rangeMax:
			maxVal, err := parseNumber(lo)
			if err != nil {
				return model.StatusInvalid, rangeParseNote(lo, allowed)
			}
			if extracted <= maxVal {
				return model.StatusValid, fmt.Sprintf("Number is less than or equal to maximum %s", formatNumber(maxVal))
			}
			return model.StatusInvalid, fmt.Sprintf("Number is above maximum %s", formatNumber(maxVal))

		case rangeInterval:
			minVal, errLo := parseNumber(lo)
			maxVal, errHi := parseNumber(hi)
			if errLo != nil {
				return model.StatusInvalid, rangeParseNote(lo, allowed)
			}
			if errHi != nil {
				return model.StatusInvalid, rangeParseNote(hi, allowed)
			}
			if extracted >= minVal && extracted <= maxVal {
				return model.StatusValid, fmt.Sprintf("Number is within range %s to %s", formatNumber(minVal), formatNumber(maxVal))
			}
			return model.StatusInvalid, fmt.Sprintf("Number is outside range %s to %s", formatNumber(minVal), formatNumber(maxVal))
		}
	}

	if expected != "" {
		return model.StatusInvalid, fmt.Sprintf("Number %s doesn't match expected %s", formatNumber(extracted), expected)
	}
	return model.StatusValid, "No specific numeric validation rules"
}

// validateText applies exact equality, fuzzy equality, then enumeration
// membership when the allowed range is a |-delimited list.
func (v *Validator) validateText(extracted, expected, allowed string) (model.Status, string) {
	similarity := -1

	if expected != "" {
		if strings.EqualFold(extracted, expected) {
			return model.StatusValid, "Text matches expected value"
		}
		similarity = v.scorer.Score(strings.ToLower(extracted), strings.ToLower(expected))
		if similarity >= v.textThreshold {
			return model.StatusValid, fmt.Sprintf("Text matches expected value with %d%% similarity", similarity)
		}
	}

	if strings.Contains(allowed, "|") {
		values := strings.Split(allowed, "|")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}
		for _, val := range values {
			if strings.EqualFold(extracted, val) {
				return model.StatusValid, "Text is in list of allowed values"
			}
		}
		return model.StatusInvalid, fmt.Sprintf("Text is not in list of allowed values: %s", strings.Join(values, ", "))
	}

	if expected != "" {
		return model.StatusInvalid, fmt.Sprintf("Text doesn't match expected value (similarity: %d%%)", similarity)
	}
	return model.StatusValid, "No specific text validation rules"
}

// closeEnough compares numbers with a relative tolerance anchored on the
// expected value.
func closeEnough(extracted, expected float64) bool {
	return math.Abs(extracted-expected) <= 1e-8+numericRelTol*math.Abs(expected)
}

// rangeParseNote describes a malformed range bound. The rule is a
// data-quality fault in the master sheet, not a reason to stop the run.
func rangeParseNote(bound, rangeStr string) string {
	return fmt.Sprintf("Range parse error: cannot interpret %q in range %q", bound, rangeStr)
}
