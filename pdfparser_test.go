package main

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatementSingleTransaction(t *testing.T) {
	raw := strings.Join([]string{
		"Maandoverzicht kredietkaart",
		"Transacties van Jan Modaal",
		"Van 01/01/2024 tot 31/01/2024",
		"Kaartnummer XXXX XXXX XXXX 1234",
		"Datum transactie Datum boeking Omschrijving",
		"06/0108/01PAYPAL IBOOD 123456 NL",
		"€ -54,97",
		"Subtotaal",
	}, "\n")

	txns := parseStatement(raw)
	require.Len(t, txns, 1)

	tx := txns[0]
	assert.Equal(t, "2024-01-06", tx.Date)
	assert.Equal(t, -54.97, tx.Amount)
	assert.Equal(t, "PAYPAL IBOOD 123456 NL", tx.RawDescription)
	require.NotNil(t, tx.Counterparty)
	assert.Equal(t, "iBood", *tx.Counterparty)
	assert.Equal(t, sourceMastercardPDF, tx.Source)
	assert.Equal(t, "Mastercard", tx.Type)
}

func TestParseStatementMultipleTransactions(t *testing.T) {
	raw := strings.Join([]string{
		"Van 01/03/2024 tot 31/03/2024",
		"Kaartnummer XXXX XXXX XXXX 5678",
		"03/0305/03NETFLIX.COM 866-579-7172",
		"€ -13,49",
		"12/0313/03IKEA GENT BE",
		"wisselkoers 1,0000",
		"€ -241,80",
		"Subtotaal",
		"28/0329/03NOOIT GELEZEN",
		"€ -99,99",
	}, "\n")

	txns := parseStatement(raw)
	require.Len(t, txns, 2)

	assert.Equal(t, "2024-03-03", txns[0].Date)
	assert.Equal(t, -13.49, txns[0].Amount)
	assert.Equal(t, CategoryEntertainment, txns[0].Category)

	// The exchange-rate continuation line must not disturb the pending record.
	assert.Equal(t, "2024-03-12", txns[1].Date)
	assert.Equal(t, -241.80, txns[1].Amount)
	require.NotNil(t, txns[1].Counterparty)
	assert.Equal(t, "IKEA", *txns[1].Counterparty)
}

func TestParseStatementPendingWithoutAmount(t *testing.T) {
	raw := strings.Join([]string{
		"Van 01/01/2024 tot 31/01/2024",
		"Kaartnummer XXXX XXXX XXXX 1234",
		"06/0108/01ZALANDO SE 123456",
		"Subtotaal",
	}, "\n")

	txns := parseStatement(raw)
	require.Len(t, txns, 1)
	assert.Equal(t, 0.0, txns[0].Amount)
}

func TestParseStatementIgnoresTextOutsideSection(t *testing.T) {
	raw := strings.Join([]string{
		"06/0108/01BUITEN DE SECTIE",
		"€ -10,00",
		"Kaartnummer XXXX XXXX XXXX 1234",
		"07/0109/01COOLBLUE GENT",
		"€ -25,00",
		"Subtotaal",
	}, "\n")

	txns := parseStatement(raw)
	require.Len(t, txns, 1)
	assert.Equal(t, "COOLBLUE GENT", txns[0].RawDescription)
}

func TestParseStatementYearFallback(t *testing.T) {
	raw := strings.Join([]string{
		"Kaartnummer XXXX XXXX XXXX 1234",
		"06/0108/01ZALANDO SE 123456",
		"€ -12,00",
		"Subtotaal",
	}, "\n")

	txns := parseStatement(raw)
	require.Len(t, txns, 1)
	want := fmt.Sprintf("%d-01-06", time.Now().Year())
	assert.Equal(t, want, txns[0].Date)
}

func TestParseStatementEmptyInput(t *testing.T) {
	assert.Empty(t, parseStatement(""))
	assert.Empty(t, parseStatement("geen transacties hier"))
}

func TestExtractMastercardCounterparty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PAYPAL IBOOD 123456 NL", "iBood"},
		{"ITUNESAPPST AP 35244800 IRL", "Apple/iTunes"},
		{"AIRBNB HMC4X2 4531590266 LU", "Airbnb"},
		{"DISNEYPLUS 1234 NL", "Disney+"},
		{"IKEA GENT BE", "IKEA"},
		{"DPG MEDIA ACC 12345", "DPG Media"},
		{"RING STANDARD PLAN 99", "Ring"},
		{"PAYPAL STEAM GAMES 12345 LU", "Steam Games"},
		{"ALIEXPRESS 123456 LU", "ALIEXPRESS"},
		{"ZALANDO SE", "ZALANDO"},
		{"12345 NL", "12345 NL"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMastercardCounterparty(tt.in))
		})
	}
}
