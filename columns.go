package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// detectColumns maps CSV headers onto canonical transaction fields by
// case-insensitive matching against known localized header names. The result
// is advisory: the caller may override any slot before confirming an import.
// The first header matching a slot wins; later headers never reassign it.
// The execution date ("uitvoeringsdatum") is preferred over any other date
// column, wherever it appears.
func detectColumns(headers []string) ColumnMapping {
	var m ColumnMapping
	for _, h := range headers {
		if strings.Contains(strings.ToLower(strings.TrimSpace(h)), "uitvoeringsdatum") {
			m.Date = h
			break
		}
	}
	for _, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case m.Date == "" && isDateHeader(lower):
			m.Date = h
		case m.Amount == "" && (strings.Contains(lower, "bedrag") || strings.Contains(lower, "amount")):
			m.Amount = h
		case m.Description == "" && (strings.Contains(lower, "mededeling") || lower == "description"):
			m.Description = h
		case m.Details == "" && (lower == "details" || strings.Contains(lower, "omschrijving")):
			m.Details = h
		case m.Counterparty == "" && strings.Contains(lower, "tegenpartij"):
			m.Counterparty = h
		case m.Type == "" && (strings.Contains(lower, "type verrichting") || lower == "type"):
			m.Type = h
		case m.Status == "" && strings.Contains(lower, "status"):
			m.Status = h
		}
	}
	return m
}

// isDateHeader matches execution-date headers while rejecting value dates
// ("valutadatum"), which would shift transactions by a business day.
func isDateHeader(lower string) bool {
	if strings.Contains(lower, "uitvoeringsdatum") {
		return true
	}
	if strings.Contains(lower, "datum") && !strings.Contains(lower, "valutadatum") {
		return true
	}
	return lower == "date"
}

// readDelimited reads a header-first delimited file, sniffing the separator
// from the header line. Comma, semicolon and tab separated exports are
// accepted in arbitrary column order.
func readDelimited(r io.Reader) ([]string, []map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\uFEFF")
	if strings.TrimSpace(text) == "" {
		return nil, nil, fmt.Errorf("empty file")
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse delimited file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// sniffDelimiter picks the separator that splits the header line into the
// most fields. Comma wins ties, matching the most common export format.
func sniffDelimiter(text string) rune {
	header := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		header = text[:i]
	}
	best, bestCount := ',', strings.Count(header, ",")
	if n := strings.Count(header, ";"); n > bestCount {
		best, bestCount = ';', n
	}
	if n := strings.Count(header, "\t"); n > bestCount {
		best = '\t'
	}
	return best
}
