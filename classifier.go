package main

import (
	"regexp"
	"strings"
)

// categoryKeywords drives keyword classification. The slice order is the
// evaluation order; within a category any keyword hit wins. Keywords are
// matched case-insensitively as substrings of the normalized description.
// The lists are configuration, not logic: extend freely as long as the
// order is kept.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryGroceries, []string{
		"colruyt", "delhaize", "aldi", "lidl", "carrefour", "albert heijn",
		"spar ", "okay", "bakkerij", "slagerij", "supermarkt", "bio-planet",
	}},
	{CategoryDining, []string{
		"restaurant", "pizza", "mcdonald", "quick", "deliveroo", "uber eats",
		"takeaway", "frituur", "brasserie", "koffie", "cafe",
	}},
	{CategoryTransportation, []string{
		"nmbs", "sncb", "de lijn", "tankstation", "esso", "shell", "total",
		"q8", "lukoil", "dats 24", "parking", "uber",
	}},
	{CategoryHousing, []string{
		"woonkrediet", "hypotheek", "huur", "immo",
	}},
	{CategoryUtilities, []string{
		"engie", "luminus", "electrabel", "telenet", "proximus", "fluvius",
		"farys", "water-link",
	}},
	{CategoryShopping, []string{
		"zalando", "bol.com", "amazon", "h&m", "shein", "klarna", "action",
		"hema", "ikea", "decathlon", "kruidvat", "zeeman",
	}},
	{CategoryEntertainment, []string{
		"netflix", "spotify", "disney", "kinepolis", "cinema", "concert",
		"playstation", "steam", "nintendo",
	}},
	{CategoryHealthFitness, []string{
		"apotheek", "apotheker", "basic-fit", "fitness", "ziekenhuis",
		"dokter", "tandarts", "acupunctuur", "mutualiteit", "kine",
	}},
}

// classify assigns a category to a transaction. Positive amounts are always
// Income, regardless of the description; credit-card lump sums never reach
// this function (the normalizer forces their category first).
func classify(description string, amount float64) string {
	if amount > 0 {
		return CategoryIncome
	}
	d := strings.ToLower(description)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(d, kw) {
				return entry.category
			}
		}
	}
	return CategoryOther
}

// creditCardPaymentType is the bank's type label for a lump-sum card-bill
// payment.
const creditCardPaymentType = "Kredietkaartbetaling"

var mastercardNarrativeRe = regexp.MustCompile(`(?i)^MASTERCARD\s+\d+`)

// isCreditCardPayment flags lump-sum card-bill entries. These are kept but
// excluded from aggregates by default, since the itemized PDF import of the
// same bill would otherwise double-count.
func isCreditCardPayment(description, txType string) bool {
	if strings.TrimSpace(txType) == creditCardPaymentType {
		return true
	}
	return mastercardNarrativeRe.MatchString(strings.TrimSpace(description))
}
