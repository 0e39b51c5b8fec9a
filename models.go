package main

// Transaction source tags
const (
	sourceBankStatement = "bank_statement"
	sourceMastercardPDF = "mastercard_pdf"
)

// Spending category taxonomy. Classification always resolves to one of these;
// anything unmatched falls back to CategoryOther (or CategoryIncome for
// positive amounts, which is checked first).
const (
	CategoryIncome            = "Income"
	CategoryGroceries         = "Groceries"
	CategoryDining            = "Dining"
	CategoryTransportation    = "Transportation"
	CategoryHousing           = "Housing"
	CategoryUtilities         = "Utilities"
	CategoryShopping          = "Shopping"
	CategoryEntertainment     = "Entertainment"
	CategoryHealthFitness     = "Health & Fitness"
	CategoryCreditCardPayment = "Credit Card Payment"
	CategorySubscriptions     = "Subscriptions"
	CategoryTravel            = "Travel"
	CategoryOther             = "Other"
)

// categoryTaxonomy is the closed set of categories, in display order.
var categoryTaxonomy = []string{
	CategoryIncome,
	CategoryGroceries,
	CategoryDining,
	CategoryTransportation,
	CategoryHousing,
	CategoryUtilities,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealthFitness,
	CategoryCreditCardPayment,
	CategorySubscriptions,
	CategoryTravel,
	CategoryOther,
}

func isValidCategory(name string) bool {
	for _, c := range categoryTaxonomy {
		if c == name {
			return true
		}
	}
	return false
}

// Transaction is the canonical transaction record persisted in the store.
// Amount is signed: negative for outflows, positive for inflows.
// RawDescription keeps the untouched source text; together with date and
// amount it forms the deduplication key enforced by the database.
type Transaction struct {
	ID                  int     `json:"id"`
	Date                string  `json:"date"` // YYYY-MM-DD
	Amount              float64 `json:"amount"`
	Description         string  `json:"description"`
	RawDescription      string  `json:"raw_description"`
	Details             string  `json:"details"`
	Counterparty        *string `json:"counterparty"`
	Category            string  `json:"category"`
	Type                string  `json:"type"`
	Source              string  `json:"source"`
	IsCreditCardPayment bool    `json:"is_credit_card_payment"`
	CreatedAt           string  `json:"created_at"`
}

// IncomingTransaction is a raw row submitted via the JSON API before
// normalization.
type IncomingTransaction struct {
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	Details      string  `json:"details"`
	Counterparty string  `json:"counterparty"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
}

// ColumnMapping assigns each canonical field to a source CSV header.
// An empty string means the field is unmapped. Date and Amount are
// mandatory for import.
type ColumnMapping struct {
	Date         string `json:"date"`
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	Details      string `json:"details"`
	Counterparty string `json:"counterparty"`
	Type         string `json:"type"`
	Status       string `json:"status"`
}

// Complete reports whether the mandatory fields are mapped.
func (m ColumnMapping) Complete() bool {
	return m.Date != "" && m.Amount != ""
}

// ImportResult reports the outcome of a batch import. Inserted + Duplicates
// equals the number of transactions handed to the store; Skipped counts
// source rows dropped before persistence (missing date, bad amount,
// rejected status).
type ImportResult struct {
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
}

// FileError records a per-file parse failure during a multi-file PDF import.
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// GroupResult is one group produced by the aggregation engine.
type GroupResult struct {
	Group       string  `json:"group"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Average     float64 `json:"average"`
}

// Summary holds overall income/expense totals. Credit-card lump sums are
// excluded by default so they do not double-count against itemized PDF
// imports of the same bill.
type Summary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetBalance       float64 `json:"net_balance"`
	TransactionCount int     `json:"transaction_count"`
}

// CreditCardReconciliation compares lump-sum card-bill payments from bank
// statements against itemized Mastercard PDF spending. The comparison is a
// best-effort heuristic with a fixed tolerance and no statement-period
// alignment.
type CreditCardReconciliation struct {
	LumpSumTotal  float64 `json:"lump_sum_total"`
	ItemizedTotal float64 `json:"itemized_total"`
	Difference    float64 `json:"difference"`
	Balanced      bool    `json:"balanced"`
}

// Category represents a taxonomy entry with its display color.
type Category struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
}

// TransactionFilter narrows transaction queries. Zero values mean "no
// constraint"; Limit 0 means unbounded.
type TransactionFilter struct {
	Category string
	Source   string
	Type     string
	From     string // YYYY-MM-DD inclusive
	To       string // YYYY-MM-DD inclusive
	Search   string
	SortBy   string
	Order    string
	Limit    int
	Offset   int
}
