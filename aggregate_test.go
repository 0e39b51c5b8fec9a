package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func sampleTransactions() []Transaction {
	return []Transaction{
		{Date: "2024-01-05", Amount: -54.20, Category: CategoryGroceries, Counterparty: strp("Colruyt"), Type: "Betaling"},
		{Date: "2024-01-12", Amount: -23.80, Category: CategoryGroceries, Counterparty: strp("Lidl"), Type: "Betaling"},
		{Date: "2024-01-28", Amount: 2500, Category: CategoryIncome, Type: "Overschrijving"},
		{Date: "2024-02-03", Amount: -512.44, Category: CategoryCreditCardPayment, Type: "Kredietkaartbetaling", IsCreditCardPayment: true},
		{Date: "2024-02-10", Amount: -18.99, Category: CategoryEntertainment, Counterparty: strp("Netflix"), Type: "Betaling"},
	}
}

func TestAggregateByCategory(t *testing.T) {
	results, err := aggregateTransactions(sampleTransactions(), "category", true)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Ascending by total: groceries most negative, income last.
	assert.Equal(t, CategoryGroceries, results[0].Group)
	assert.Equal(t, -78.0, results[0].TotalAmount)
	assert.Equal(t, 2, results[0].Count)
	assert.Equal(t, 78.0, results[0].Expenses)
	assert.Equal(t, 0.0, results[0].Income)
	assert.Equal(t, -39.0, results[0].Average)

	assert.Equal(t, CategoryEntertainment, results[1].Group)
	assert.Equal(t, CategoryIncome, results[2].Group)
	assert.Equal(t, 2500.0, results[2].TotalAmount)
}

func TestAggregateIncludesCreditCardWhenAsked(t *testing.T) {
	results, err := aggregateTransactions(sampleTransactions(), "category", false)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, CategoryCreditCardPayment, results[0].Group)
	assert.Equal(t, -512.44, results[0].TotalAmount)
}

func TestAggregateByCounterpartyUnknownBucket(t *testing.T) {
	results, err := aggregateTransactions(sampleTransactions(), "counterparty", true)
	require.NoError(t, err)

	var groups []string
	for _, r := range results {
		groups = append(groups, r.Group)
	}
	assert.Contains(t, groups, "Unknown")
	assert.Contains(t, groups, "Colruyt")
}

func TestAggregateByMonthAndYear(t *testing.T) {
	byMonth, err := aggregateTransactions(sampleTransactions(), "month", true)
	require.NoError(t, err)
	require.Len(t, byMonth, 2)
	assert.Equal(t, "2024-02", byMonth[0].Group)
	assert.Equal(t, "2024-01", byMonth[1].Group)
	assert.Equal(t, 2422.0, byMonth[1].TotalAmount)

	byYear, err := aggregateTransactions(sampleTransactions(), "year", true)
	require.NoError(t, err)
	require.Len(t, byYear, 1)
	assert.Equal(t, "2024", byYear[0].Group)
}

func TestAggregateUnknownDimension(t *testing.T) {
	_, err := aggregateTransactions(sampleTransactions(), "vendor", true)
	assert.Error(t, err)
}

func TestAggregateEqualTotalsSortByGroup(t *testing.T) {
	txns := []Transaction{
		{Date: "2024-01-01", Amount: -10, Category: "B"},
		{Date: "2024-01-02", Amount: -10, Category: "A"},
	}
	results, err := aggregateTransactions(txns, "category", true)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Group)
	assert.Equal(t, "B", results[1].Group)
}

func TestSummarize(t *testing.T) {
	s := summarize(sampleTransactions(), true)
	assert.Equal(t, 2500.0, s.TotalIncome)
	assert.Equal(t, 96.99, s.TotalExpenses)
	assert.Equal(t, 2403.01, s.NetBalance)
	assert.Equal(t, 4, s.TransactionCount)
	assert.Equal(t, s.NetBalance, round2(s.TotalIncome-s.TotalExpenses))
}

func TestSummarizeIncludingCreditCard(t *testing.T) {
	s := summarize(sampleTransactions(), false)
	assert.Equal(t, 609.43, s.TotalExpenses)
	assert.Equal(t, 5, s.TransactionCount)
}

func TestReconcileCreditCard(t *testing.T) {
	txns := []Transaction{
		{Date: "2024-02-03", Amount: -512.44, IsCreditCardPayment: true, Source: sourceBankStatement},
		{Date: "2024-01-06", Amount: -54.97, Source: sourceMastercardPDF},
		{Date: "2024-01-09", Amount: -457.47, Source: sourceMastercardPDF},
	}
	r := reconcileCreditCard(txns)
	assert.Equal(t, 512.44, r.LumpSumTotal)
	assert.Equal(t, 512.44, r.ItemizedTotal)
	assert.Equal(t, 0.0, r.Difference)
	assert.True(t, r.Balanced)
}

func TestReconcileCreditCardUnbalanced(t *testing.T) {
	txns := []Transaction{
		{Amount: -512.44, IsCreditCardPayment: true, Source: sourceBankStatement},
		{Amount: -54.97, Source: sourceMastercardPDF},
	}
	r := reconcileCreditCard(txns)
	assert.Equal(t, 457.47, r.Difference)
	assert.False(t, r.Balanced)
}

func TestReconcileCreditCardIgnoresPDFRefunds(t *testing.T) {
	txns := []Transaction{
		{Amount: -100, IsCreditCardPayment: true, Source: sourceBankStatement},
		{Amount: -100, Source: sourceMastercardPDF},
		{Amount: 25, Source: sourceMastercardPDF},
	}
	r := reconcileCreditCard(txns)
	assert.Equal(t, 100.0, r.ItemizedTotal)
	assert.True(t, r.Balanced)
}
