package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCounterparty(t *testing.T) {
	tests := []struct {
		name        string
		description string
		details     string
		want        string
	}{
		{
			name:        "debit card with known abbreviation",
			description: "BETALING MET DEBETKAART NUMMER 6703 12XX XXXX 1234 5 2250 AD DELH KOUTER GENT 9000 12/03/2024",
			want:        "AD Delhaize",
		},
		{
			name:        "debit card colruyt abbreviation",
			description: "BETALING MET DEBETKAART NUMMER 6703 12XX XXXX 1234 5 8410 COLR GENT ZUID GENT 9000 03/07/2024",
			want:        "Colruyt",
		},
		{
			name:        "debit card unknown merchant is title cased",
			description: "BETALING MET DEBETKAART NUMMER 6703 12XX XXXX 1234 5 8930 PANOS STATION GENT 9000 05/06/2024",
			want:        "Panos Station",
		},
		{
			name:        "mortgage repayment",
			description: "TERUGBETALING WOONKREDIET REFERTE 123-4567890-12",
			want:        "Woonkrediet (Hypotheek)",
		},
		{
			name:        "atm withdrawal",
			description: "GELDOPNEMING MET DEBETKAART NUMMER 6703 12XX XXXX 1234 5 BRUGGE 8000 02/03/2024",
			want:        "ATM Brugge",
		},
		{
			name:        "direct debit creditor",
			description: "EUROPESE DOMICILIERING 123-4567890-12 SCHULDEISER: Telenet BV",
			want:        "Telenet BV",
		},
		{
			name:        "name label stops at iban",
			description: "OVERSCHRIJVING NAAM: JANSSENS PETER BE68539007547034 BIC GKCCBEBB",
			want:        "JANSSENS PETER",
		},
		{
			name:        "name label stops at label token",
			description: "NAAM: ACME SERVICES IBAN: BE68539007547034",
			want:        "ACME SERVICES",
		},
		{
			name:        "terminal receipt with trailing dash",
			description: "0922 CARWASH CENTER GENK -",
			want:        "CARWASH CENTER",
		},
		{
			name:        "name colon reference",
			description: "Jaxx: 72288235",
			want:        "Jaxx",
		},
		{
			name:        "alphanumeric reference with country code",
			description: "75MC00I H M Online BE",
			want:        "H&M",
		},
		{
			name:        "alphanumeric reference drops bv suffix",
			description: "82QX41P Coolblue BV",
			want:        "Coolblue",
		},
		{
			name:        "acupuncture without space",
			description: "ACUPUNCTUURGENT",
			want:        "Acupunctuur Gent",
		},
		{
			name:        "klarna suffix",
			description: "Bestelling 9945871 Klarna",
			want:        "Klarna",
		},
		{
			name:        "shein suffix",
			description: "BESTELLING SHEIN",
			want:        "SHEIN",
		},
		{
			name:        "mastercard narrative",
			description: "MASTERCARD 1234567890",
			want:        "Mastercard Payment",
		},
		{
			name:        "falls back to details",
			description: "",
			details:     "NAAM: ACME SERVICES IBAN: BE68539007547034",
			want:        "ACME SERVICES",
		},
		{
			name:        "placeholder is unresolvable",
			description: "Payment Description",
			want:        "",
		},
		{
			name:        "bare reference is unresolvable",
			description: "202400012345",
			want:        "",
		},
		{
			name:        "order reference is unresolvable",
			description: "Order: 15234",
			want:        "",
		},
		{
			name:        "checkout id is unresolvable",
			description: "Checkout id: ab99f1",
			want:        "",
		},
		{
			name:        "psp boilerplate is unresolvable",
			description: "paid by Multisafepay",
			want:        "",
		},
		{
			name:        "no rule matches",
			description: "iets volledig onherkenbaar",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractCounterparty(tt.description, tt.details)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractRuleOrder(t *testing.T) {
	// The debit-card rule must win before the generic reference rules get a
	// chance, even though the narrative contains colons and digit runs.
	got := extractCounterparty(
		"BETALING MET DEBETKAART NUMMER 6703 12XX XXXX 1234 5 2250 LIDL GENT 9000 12/03/2024", "")
	assert.Equal(t, "Lidl", got)
}

func TestCleanDebitCardMerchant(t *testing.T) {
	assert.Equal(t, "Carrefour", cleanDebitCardMerchant("2250 CARREF EXPRESS GENT 9000 12/03/2024"))
	assert.Equal(t, "Delhaize", cleanDebitCardMerchant("DELH PROXY 9000 GENT"))
	assert.Equal(t, "", cleanDebitCardMerchant("  "))
}
