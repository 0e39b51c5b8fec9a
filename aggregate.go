package main

import (
	"fmt"
	"math"
	"sort"
)

// reconcileEpsilon is the tolerance for the lump-sum vs itemized
// credit-card comparison.
const reconcileEpsilon = 0.01

// aggregateDimensions maps a groupBy name to the key function that buckets
// a transaction.
var aggregateDimensions = map[string]func(Transaction) string{
	"category": func(t Transaction) string { return t.Category },
	"counterparty": func(t Transaction) string {
		if t.Counterparty != nil && *t.Counterparty != "" {
			return *t.Counterparty
		}
		return "Unknown"
	},
	"type": func(t Transaction) string { return t.Type },
	"month": func(t Transaction) string {
		if len(t.Date) >= 7 {
			return t.Date[:7]
		}
		return t.Date
	},
	"year": func(t Transaction) string {
		if len(t.Date) >= 4 {
			return t.Date[:4]
		}
		return t.Date
	},
	"day": func(t Transaction) string { return t.Date },
}

// aggregateTransactions groups a transaction set by the chosen dimension and
// computes per-group count, signed total, income, expenses and average.
// With excludeCreditCardPayments set, flagged lump sums are omitted from
// every computation, not merely zeroed. Results are sorted ascending by
// total amount; callers wanting a descending-by-magnitude view re-sort.
func aggregateTransactions(txns []Transaction, groupBy string, excludeCreditCardPayments bool) ([]GroupResult, error) {
	keyFn, ok := aggregateDimensions[groupBy]
	if !ok {
		return nil, fmt.Errorf("unknown aggregation dimension %q", groupBy)
	}

	groups := make(map[string]*GroupResult)
	for _, t := range txns {
		if excludeCreditCardPayments && t.IsCreditCardPayment {
			continue
		}
		key := keyFn(t)
		g, ok := groups[key]
		if !ok {
			g = &GroupResult{Group: key}
			groups[key] = g
		}
		g.Count++
		g.TotalAmount += t.Amount
		if t.Amount > 0 {
			g.Income += t.Amount
		} else {
			g.Expenses += -t.Amount
		}
	}

	results := make([]GroupResult, 0, len(groups))
	for _, g := range groups {
		g.TotalAmount = round2(g.TotalAmount)
		g.Income = round2(g.Income)
		g.Expenses = round2(g.Expenses)
		g.Average = round2(g.TotalAmount / float64(g.Count))
		results = append(results, *g)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalAmount != results[j].TotalAmount {
			return results[i].TotalAmount < results[j].TotalAmount
		}
		return results[i].Group < results[j].Group
	})
	return results, nil
}

// summarize computes overall income, expenses and net balance for a
// transaction set. The identity netBalance = totalIncome - totalExpenses
// holds exactly after rounding.
func summarize(txns []Transaction, excludeCreditCardPayments bool) Summary {
	var s Summary
	for _, t := range txns {
		if excludeCreditCardPayments && t.IsCreditCardPayment {
			continue
		}
		s.TransactionCount++
		if t.Amount > 0 {
			s.TotalIncome += t.Amount
		} else {
			s.TotalExpenses += -t.Amount
		}
	}
	s.TotalIncome = round2(s.TotalIncome)
	s.TotalExpenses = round2(s.TotalExpenses)
	s.NetBalance = round2(s.TotalIncome - s.TotalExpenses)
	return s
}

// reconcileCreditCard checks whether lump-sum card-bill payments on the
// bank statement are balanced by the itemized Mastercard PDF transactions.
// No statement-period alignment is attempted; a cross-period mismatch shows
// up as an unbalanced difference, which is a reporting nuance rather than
// an import error.
func reconcileCreditCard(txns []Transaction) CreditCardReconciliation {
	var r CreditCardReconciliation
	for _, t := range txns {
		switch {
		case t.IsCreditCardPayment:
			r.LumpSumTotal += math.Abs(t.Amount)
		case t.Source == sourceMastercardPDF && t.Amount < 0:
			r.ItemizedTotal += -t.Amount
		}
	}
	r.LumpSumTotal = round2(r.LumpSumTotal)
	r.ItemizedTotal = round2(r.ItemizedTotal)
	r.Difference = round2(r.LumpSumTotal - r.ItemizedTotal)
	r.Balanced = math.Abs(r.Difference) <= reconcileEpsilon
	return r
}
