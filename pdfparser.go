package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dslipak/pdf"
)

// The Mastercard statement text is scanned line by line with a small state
// machine. The detail section opens at the masked card-number header and
// closes at the "Subtotaal" marker; in between, a transaction line opens a
// pending record that the next euro-amount line completes.
type pdfScanState int

const (
	seekingDetailSection pdfScanState = iota
	inDetailSection
	doneScanning
)

var (
	// Two concatenated DD/MM dates (transaction date and booking date,
	// rendered without separator) immediately followed by the narrative.
	pdfTransactionLineRe = regexp.MustCompile(`^(\d{2})/(\d{2})(\d{2})/(\d{2})(.+)$`)

	// A euro amount on its own line completes the pending transaction.
	pdfAmountLineRe = regexp.MustCompile(`^€\s*([+-]?[\d.,]+)$`)

	// "Van DD/MM/YYYY tot DD/MM/YYYY" period header supplies the year.
	pdfPeriodRe = regexp.MustCompile(`Van\s+\d{2}/\d{2}/(\d{4})\s+tot`)
)

type statementScanner struct {
	state   pdfScanState
	year    string
	pending *Transaction
	txns    []Transaction
}

// parseStatement extracts itemized card transactions from the text of one
// Mastercard PDF statement. Lines between a transaction line and its amount
// line are continuation text and are ignored. A missing period header falls
// back to the current year.
func parseStatement(rawText string) []Transaction {
	s := &statementScanner{state: seekingDetailSection, year: statementYear(rawText)}

	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s.state == doneScanning {
			break
		}
		s.scanLine(line)
	}
	s.flush()
	return s.txns
}

func statementYear(rawText string) string {
	if m := pdfPeriodRe.FindStringSubmatch(rawText); m != nil {
		return m[1]
	}
	return fmt.Sprintf("%d", time.Now().Year())
}

func (s *statementScanner) scanLine(line string) {
	// Header rows appear in both states and carry no transaction data.
	if strings.Contains(line, "Transacties van") ||
		(strings.Contains(line, "Datum") && strings.Contains(line, "transactie")) {
		return
	}

	if strings.Contains(line, "Subtotaal") {
		s.flush()
		s.state = doneScanning
		return
	}

	switch s.state {
	case seekingDetailSection:
		if strings.Contains(line, "Kaartnummer") && strings.Contains(line, "XXXX") {
			s.state = inDetailSection
		}
	case inDetailSection:
		if m := pdfTransactionLineRe.FindStringSubmatch(line); m != nil {
			s.flush()
			s.openTransaction(m)
			return
		}
		if s.pending != nil {
			if m := pdfAmountLineRe.FindStringSubmatch(line); m != nil {
				if amount, err := parseAmount(m[1]); err == nil {
					s.pending.Amount = amount
				}
				s.flush()
			}
		}
	}
}

// openTransaction starts a pending record from a transaction line. The
// amount stays zero until the matching euro line arrives; the category is
// decided up front with a forced negative amount, since itemized card spend
// is classified as expense regardless of sign.
func (s *statementScanner) openTransaction(m []string) {
	day, month := m[1], m[2]
	description := strings.TrimSpace(m[5])
	counterparty := extractMastercardCounterparty(description)

	t := Transaction{
		Date:           fmt.Sprintf("%s-%s-%s", s.year, month, day),
		Description:    description,
		RawDescription: description,
		Category:       classify(description, -1),
		Type:           "Mastercard",
		Source:         sourceMastercardPDF,
	}
	if counterparty != "" {
		t.Counterparty = &counterparty
	}
	s.pending = &t
}

func (s *statementScanner) flush() {
	if s.pending == nil {
		return
	}
	s.txns = append(s.txns, *s.pending)
	s.pending = nil
}

// mastercardOverrides canonicalizes merchant spellings that come through
// the card network mangled. Keys are matched as substrings of the
// uppercased narrative.
var mastercardOverrides = []struct {
	match string
	name  string
}{
	{"IBOOD", "iBood"},
	{"ITUNESAPPST AP", "Apple/iTunes"},
	{"AIRBNB", "Airbnb"},
	{"DISNEYPLUS", "Disney+"},
	{"IKEA", "IKEA"},
	{"DPG MEDIA", "DPG Media"},
	{"RING STANDARD", "Ring"},
}

var (
	paypalNarrativeRe = regexp.MustCompile(`(?i)^PAYPAL\s+(.+)$`)
	trailingCountryRe = regexp.MustCompile(`\s+[A-Z]{2}$`)
	trailingDigitsRe  = regexp.MustCompile(`[\s\d]+$`)
)

// extractMastercardCounterparty resolves the merchant from a card-statement
// narrative. Unlike the bank-statement extractor this never returns "":
// when nothing cleaner remains, the original trimmed description stands.
func extractMastercardCounterparty(description string) string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return ""
	}
	upper := strings.ToUpper(trimmed)

	for _, o := range mastercardOverrides {
		if strings.Contains(upper, o.match) {
			return o.name
		}
	}

	if m := paypalNarrativeRe.FindStringSubmatch(trimmed); m != nil {
		var kept []string
		for _, tok := range strings.Fields(m[1]) {
			if tok[0] >= '0' && tok[0] <= '9' {
				break
			}
			kept = append(kept, tok)
		}
		if len(kept) > 0 {
			return titleCase(strings.Join(kept, " "))
		}
	}

	cleaned := trailingCountryRe.ReplaceAllString(trimmed, "")
	cleaned = strings.TrimSpace(trailingDigitsRe.ReplaceAllString(cleaned, ""))
	if cleaned == "" {
		return trimmed
	}
	return cleaned
}

// extractPDFText pulls the plain text out of an uploaded PDF document.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
