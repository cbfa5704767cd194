package extract

import "regexp"

// Term labels produced by the extraction stages. Keys are lower-case,
// underscore-joined tokens.
const (
	LabelInterestRate = "interest_rate"
	LabelMaturityDate = "maturity_date"
	LabelPrincipal    = "principal"
	LabelCounterparty = "counterparty"
	LabelGoverningLaw = "governing_law"
	LabelLoanAmount   = "loan_amount"
	LabelBorrower     = "borrower"
	LabelLender       = "lender"
)

// labeledPattern pairs a term label with the regex that harvests its value
// (first capture group).
type labeledPattern struct {
	label string
	re    *regexp.Regexp
}

// patternLibrary is applied in order by the pattern stage. The first match
// per label wins; the value classes deliberately include whitespace so a
// value wrapped onto the next line is still captured.
var patternLibrary = []labeledPattern{
	{LabelInterestRate, regexp.MustCompile(`(?i)interest\s*rate\s*[:=\-]?\s*([\d.]+)\s*%`)},
	{LabelMaturityDate, regexp.MustCompile(`(?i)maturity\s*date\s*[:=\-]?\s*([a-zA-Z0-9\s\-.,/]+)`)},
	{LabelPrincipal, regexp.MustCompile(`(?i)principal\s*[:=\-]?\s*[$£€]?\s*([\d,.]+)`)},
	{LabelCounterparty, regexp.MustCompile(`(?i)(?:counterparty|counter[/\- ]?party)\s*[:=\-]?\s*([a-zA-Z0-9\s\-.,&]+)`)},
	{LabelGoverningLaw, regexp.MustCompile(`(?i)governing\s*law\s*[:=\-]?\s*([a-zA-Z\s]+)`)},
	{LabelLoanAmount, regexp.MustCompile(`(?i)(?:loan|facility)\s*amount\s*[:=\-]?\s*[$£€]?\s*([\d,.]+\s*(?:million|billion|m|b)?)`)},
	{LabelBorrower, regexp.MustCompile(`(?i)borrower\s*[:=\-]?\s*([a-zA-Z0-9\s\-.,&]+)`)},
	{LabelLender, regexp.MustCompile(`(?i)lender\s*[:=\-]?\s*([a-zA-Z0-9\s\-.,&]+)`)},
}

// financialTerms is the fixed vocabulary the line heuristic matches keys
// against. Space-joined display forms; underscores are applied when a term
// is recorded.
var financialTerms = []string{
	"interest rate", "maturity date", "principal", "coupon",
	"governing law", "counterparty", "collateral", "amortization",
	"default rate", "prepayment penalty", "term", "closing date",
	"loan amount", "borrower", "lender", "facility", "commitment",
	"pricing", "margin", "fee", "documentation", "security", "covenant",
	"debt", "equity", "currency", "payment date", "repayment", "default",
}
