package main

import (
	"strings"
	"time"
)

// sourceDateFormats are the date layouts seen in bank exports, tried in
// order. All are normalized to ISO YYYY-MM-DD at ingestion.
var sourceDateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// normalizeDate converts a source date to ISO form, returning "" for
// anything unparseable so the row can be dropped.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range sourceDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// rejectedStatus marks rows the bank refused to execute; they never enter
// the store.
const rejectedStatus = "geweigerd"

func isRejectedStatus(status string) bool {
	return strings.Contains(strings.ToLower(status), rejectedStatus)
}

// buildTransaction assembles the canonical record from normalized parts.
// The credit-card flag is decided from the raw description and type label
// before any counterparty prefix is applied; flagged rows bypass the
// keyword classifier entirely.
func buildTransaction(date string, amount float64, description, details, counterparty, txType, source string) Transaction {
	rawDescription := description

	ccPayment := isCreditCardPayment(rawDescription, txType)

	counterparty = strings.TrimSpace(counterparty)
	if counterparty == "" {
		counterparty = extractCounterparty(rawDescription, details)
	}

	display := description
	if counterparty != "" {
		display = counterparty + " - " + description
	}

	category := CategoryCreditCardPayment
	if !ccPayment {
		category = classify(display, amount)
	}

	t := Transaction{
		Date:                date,
		Amount:              amount,
		Description:         display,
		RawDescription:      rawDescription,
		Details:             details,
		Category:            category,
		Type:                txType,
		Source:              source,
		IsCreditCardPayment: ccPayment,
	}
	if counterparty != "" {
		t.Counterparty = &counterparty
	}
	return t
}

// normalizeRow turns one mapped CSV row into a canonical transaction.
// The second return value is false for rows that must be dropped: missing
// date, unparseable amount, or a rejected status.
func normalizeRow(row map[string]string, m ColumnMapping) (Transaction, bool) {
	if m.Status != "" && isRejectedStatus(row[m.Status]) {
		return Transaction{}, false
	}

	date := normalizeDate(row[m.Date])
	if date == "" {
		return Transaction{}, false
	}

	amount, err := parseAmount(row[m.Amount])
	if err != nil {
		return Transaction{}, false
	}

	description := strings.TrimSpace(row[m.Description])
	details := strings.TrimSpace(row[m.Details])
	if description == "" {
		description = details
	}
	if description == "" {
		return Transaction{}, false
	}

	return buildTransaction(
		date, amount, description, details,
		row[m.Counterparty], strings.TrimSpace(row[m.Type]),
		sourceBankStatement,
	), true
}

// normalizeRows materializes a whole CSV upload, counting the rows dropped
// as malformed or rejected.
func normalizeRows(rows []map[string]string, m ColumnMapping) ([]Transaction, int) {
	txns := make([]Transaction, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		t, ok := normalizeRow(row, m)
		if !ok {
			skipped++
			continue
		}
		txns = append(txns, t)
	}
	return txns, skipped
}

// normalizeIncoming maps a JSON API row through the same pipeline as a CSV
// row.
func normalizeIncoming(in IncomingTransaction) (Transaction, bool) {
	if isRejectedStatus(in.Status) {
		return Transaction{}, false
	}
	date := normalizeDate(in.Date)
	if date == "" {
		return Transaction{}, false
	}
	description := strings.TrimSpace(in.Description)
	details := strings.TrimSpace(in.Details)
	if description == "" {
		description = details
	}
	if description == "" {
		return Transaction{}, false
	}
	return buildTransaction(
		date, round2(in.Amount), description, details,
		in.Counterparty, strings.TrimSpace(in.Type),
		sourceBankStatement,
	), true
}
