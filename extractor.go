package main

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser normalizes shouty bank narratives ("AD DELHAIZE KOUTER") into
// readable merchant names.
var titleCaser = cases.Title(language.Dutch)

func titleCase(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// extractRule is one (pattern, transform) pair in the ordered extraction
// chain. The first rule whose pattern matches and whose transform yields a
// non-empty name wins.
type extractRule struct {
	name string
	re   *regexp.Regexp
	fn   func(m []string) string
}

// unresolvablePatterns mark descriptions that carry no counterparty signal
// at all: bare payment references and PSP boilerplate. These are skipped
// before any rule runs so a generic rule cannot turn them into a bogus name.
var unresolvablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`(?i)^Order:?\s*\d+`),
	regexp.MustCompile(`(?i)Checkout id:`),
	regexp.MustCompile(`(?i)by Multisafepay`),
	regexp.MustCompile(`(?i)^Payment Description$`),
}

// debitCardAbbreviations expands terminal-narrative store codes to full
// merchant names. Matched by prefix against the cleaned remainder, longest
// entries first.
var debitCardAbbreviations = []struct {
	prefix string
	full   string
}{
	{"AD DELH", "AD Delhaize"},
	{"DELH", "Delhaize"},
	{"COLR", "Colruyt"},
	{"CARREF", "Carrefour"},
	{"KRUIDVAT", "Kruidvat"},
	{"ALDI", "Aldi"},
	{"LIDL", "Lidl"},
	{"OKAY", "OKay"},
	{"BFIT", "Basic-Fit"},
}

var (
	trailingDateRe   = regexp.MustCompile(`\s+\d{2}/\d{2}/\d{4}$`)
	postalCityRe     = regexp.MustCompile(`\s+\d{4}\s+[A-Z][A-Z'-]*$`)
	cityPostalRe     = regexp.MustCompile(`\s+[A-Z][A-Z'-]*\s+\d{4}$`)
	leadingStoreCode = regexp.MustCompile(`^\d{4}\s+`)
)

// cleanDebitCardMerchant strips the location/date tail and the leading store
// code from a debit-card terminal narrative, then expands known
// abbreviations. Unknown merchants are title-cased as-is.
func cleanDebitCardMerchant(rest string) string {
	s := strings.TrimSpace(rest)
	s = trailingDateRe.ReplaceAllString(s, "")
	if cleaned := postalCityRe.ReplaceAllString(s, ""); cleaned != s {
		s = cleaned
	} else {
		s = cityPostalRe.ReplaceAllString(s, "")
	}
	s = leadingStoreCode.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	upper := strings.ToUpper(s)
	for _, abbr := range debitCardAbbreviations {
		if strings.HasPrefix(upper, abbr.prefix) {
			return abbr.full
		}
	}
	return titleCase(s)
}

var ibanTokenRe = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]*$`)
var bicTokenRe = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2,5}$`)

// nameBeforeBankTokens takes the text after a "NAAM:" label and cuts it off
// at the first IBAN, BIC or country-code token.
func nameBeforeBankTokens(s string) string {
	var kept []string
	for _, tok := range strings.Fields(s) {
		t := strings.TrimRight(tok, ":")
		if t == "IBAN" || t == "BIC" {
			break
		}
		if ibanTokenRe.MatchString(t) || bicTokenRe.MatchString(t) {
			break
		}
		if len(t) == 2 && t == strings.ToUpper(t) && t >= "AA" && t <= "ZZ" {
			break
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// cleanReferenceName applies the cleanup for the 7-character-code format:
// legal-form suffixes and the "- balans" tail are dropped, and the spaced
// "H M" brand is folded back to "H&M".
func cleanReferenceName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, "- balans")
	name = strings.TrimSpace(strings.TrimSuffix(name, "-"))
	name = strings.TrimSuffix(name, " B.V.")
	name = strings.TrimSuffix(name, " BV")
	if name == "H M" || strings.HasPrefix(name, "H M ") {
		return "H&M"
	}
	return strings.TrimSpace(name)
}

var atmLocationRe = regexp.MustCompile(`(?i)^GELDOPNEMING\b.*\s([A-Z][A-Z' -]+?)\s+\d{4}(?:\s|$)`)

// extractRules is evaluated strictly in order: the narrow, format-specific
// narratives come first so a generic reference rule can never shadow them.
var extractRules = []extractRule{
	{
		name: "debit-card-terminal",
		re:   regexp.MustCompile(`(?i)^BETALING MET DEBETKAART NUMMER\s+[0-9X]{4}\s+[0-9X]{4}\s+[0-9X]{4}\s+[0-9X]{4}(?:\s+[0-9X]{1,2})?\s+(.+)$`),
		fn:   func(m []string) string { return cleanDebitCardMerchant(m[1]) },
	},
	{
		name: "mortgage-repayment",
		re:   regexp.MustCompile(`(?i)^TERUGBETALING WOONKREDIET`),
		fn:   func(m []string) string { return "Woonkrediet (Hypotheek)" },
	},
	{
		name: "atm-withdrawal",
		re:   atmLocationRe,
		fn:   func(m []string) string { return "ATM " + titleCase(m[1]) },
	},
	{
		name: "direct-debit",
		re:   regexp.MustCompile(`(?i)\bDOMICILIERING\b[^:]*:\s*(.+)$`),
		fn:   func(m []string) string { return strings.TrimSpace(m[1]) },
	},
	{
		name: "name-label",
		re:   regexp.MustCompile(`(?i)\bNAAM:\s*(.+)$`),
		fn:   func(m []string) string { return nameBeforeBankTokens(m[1]) },
	},
	{
		name: "terminal-receipt",
		re:   regexp.MustCompile(`^\d{4}\s+(.+)\s+\S+\s+-\s*$`),
		fn:   func(m []string) string { return strings.TrimSpace(m[1]) },
	},
	{
		name: "name-reference",
		re:   regexp.MustCompile(`^([^:]+):\s*\d+$`),
		fn:   func(m []string) string { return strings.TrimSpace(m[1]) },
	},
	{
		name: "alphanumeric-reference",
		re:   regexp.MustCompile(`^([A-Z0-9]{7})\s+(.+?)(?:\s+[A-Z]{2})?$`),
		fn: func(m []string) string {
			// The 7-char code must carry a digit, otherwise this would
			// swallow ordinary seven-letter words.
			if !strings.ContainsAny(m[1], "0123456789") {
				return ""
			}
			return cleanReferenceName(m[2])
		},
	},
	{
		name: "acupuncture",
		re:   regexp.MustCompile(`(?i)^ACUPUNCTUUR(\S+)\s*$`),
		fn:   func(m []string) string { return "Acupunctuur " + titleCase(m[1]) },
	},
	{
		name: "klarna-suffix",
		re:   regexp.MustCompile(`Klarna$`),
		fn:   func(m []string) string { return "Klarna" },
	},
	{
		name: "shein-suffix",
		re:   regexp.MustCompile(`SHEIN$`),
		fn:   func(m []string) string { return "SHEIN" },
	},
	{
		name: "mastercard-payment",
		re:   regexp.MustCompile(`(?i)^MASTERCARD\s+\d+`),
		fn:   func(m []string) string { return "Mastercard Payment" },
	},
}

// extractCounterparty derives a human-readable counterparty name from a raw
// bank description, falling back to the details column when the description
// yields nothing. Returns "" when no rule resolves, which surfaces the row
// for manual review rather than guessing.
func extractCounterparty(description, details string) string {
	if cp := applyExtractRules(description); cp != "" {
		return cp
	}
	if details != "" && details != description {
		return applyExtractRules(details)
	}
	return ""
}

func applyExtractRules(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	for _, re := range unresolvablePatterns {
		if re.MatchString(s) {
			return ""
		}
	}
	for _, rule := range extractRules {
		m := rule.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if cp := strings.TrimSpace(rule.fn(m)); cp != "" {
			return cp
		}
	}
	return ""
}
