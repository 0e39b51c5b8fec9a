package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	if err := db.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	count, err := countTransactions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      "statement-import",
		"transactions": count,
	})
}

// filterFromQuery builds a TransactionFilter from request parameters.
func filterFromQuery(c *gin.Context) TransactionFilter {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return TransactionFilter{
		Category: c.Query("category"),
		Source:   c.Query("source"),
		Type:     c.Query("type"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Search:   c.Query("search"),
		SortBy:   c.DefaultQuery("sort", "date"),
		Order:    c.DefaultQuery("order", "desc"),
		Limit:    limit,
		Offset:   offset,
	}
}

// isDefaultListRequest reports whether the request uses only default
// parameters, which is the only shape served from cache.
func isDefaultListRequest(c *gin.Context) bool {
	return len(c.Request.URL.Query()) == 0
}

// listTransactions retrieves transactions with optional Redis caching for
// the default first page.
func listTransactions(c *gin.Context) {
	ctx := c.Request.Context()

	if isDefaultListRequest(c) {
		var cached []Transaction
		if cacheGet(ctx, cacheKeyTransactions, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	transactions, err := getTransactions(ctx, filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if isDefaultListRequest(c) {
		cacheSet(ctx, cacheKeyTransactions, transactions, 60*time.Second)
	}

	c.JSON(http.StatusOK, transactions)
}

// addTransactions imports JSON rows (a single object or an array) through
// the normalization pipeline with store-side deduplication.
func addTransactions(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	var batch []IncomingTransaction
	if err := json.Unmarshal(body, &batch); err != nil {
		var single IncomingTransaction
		if err := json.Unmarshal(body, &single); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expected a transaction object or array"})
			return
		}
		batch = []IncomingTransaction{single}
	}
	if len(batch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty batch"})
		return
	}

	txns := make([]Transaction, 0, len(batch))
	skipped := 0
	for _, in := range batch {
		t, ok := normalizeIncoming(in)
		if !ok {
			skipped++
			continue
		}
		txns = append(txns, t)
	}

	ctx := c.Request.Context()
	inserted, duplicates, err := insertTransactions(ctx, txns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateCaches(ctx)

	c.JSON(http.StatusCreated, ImportResult{
		Inserted:   inserted,
		Duplicates: duplicates,
		Skipped:    skipped,
	})
}

// openUpload pulls the single uploaded file out of a multipart form.
func openUpload(c *gin.Context) (multipart.File, *multipart.FileHeader, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return nil, nil, false
	}
	return file, header, true
}

// previewCSV reads an uploaded statement export and returns its headers,
// the auto-detected column mapping and a few sample rows so the client can
// adjust the mapping before confirming the import.
func previewCSV(c *gin.Context) {
	file, header, ok := openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	headers, rows, err := readDelimited(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sample := rows
	if len(sample) > 5 {
		sample = sample[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"file":      header.Filename,
		"headers":   headers,
		"mapping":   detectColumns(headers),
		"row_count": len(rows),
		"sample":    sample,
	})
}

// importCSV ingests a statement export. The auto-detected mapping can be
// overridden through the "mapping" form field; the import is rejected when
// date or amount stay unmapped.
func importCSV(c *gin.Context) {
	file, header, ok := openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	headers, rows, err := readDelimited(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mapping := detectColumns(headers)
	if raw := c.PostForm("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mapping override"})
			return
		}
	}
	if !mapping.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and amount columns must be mapped"})
		return
	}

	txns, skipped := normalizeRows(rows, mapping)

	ctx := c.Request.Context()
	inserted, duplicates, err := insertTransactions(ctx, txns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateCaches(ctx)

	logger.Info().
		Str("file", header.Filename).
		Int("inserted", inserted).
		Int("duplicates", duplicates).
		Int("skipped", skipped).
		Msg("csv import complete")

	c.JSON(http.StatusOK, ImportResult{
		Inserted:   inserted,
		Duplicates: duplicates,
		Skipped:    skipped,
	})
}

// importPDF ingests one or more Mastercard statements. Uploads may be PDF
// documents (text is extracted server-side) or pre-extracted .txt dumps.
// Per-file failures are collected and reported alongside the counts; a
// batch that yields no transactions and no errors means the files were not
// recognizable statements.
func importPDF(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart upload"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		if single := form.File["file"]; len(single) > 0 {
			files = single
		}
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	var txns []Transaction
	fileErrors := make([]FileError, 0)

	for _, fh := range files {
		text, err := readStatementText(fh)
		if err != nil {
			fileErrors = append(fileErrors, FileError{File: fh.Filename, Error: err.Error()})
			continue
		}
		txns = append(txns, parseStatement(text)...)
	}

	if len(txns) == 0 && len(fileErrors) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "no recognizable statement data in uploaded files",
		})
		return
	}

	ctx := c.Request.Context()
	inserted, duplicates, err := insertTransactions(ctx, txns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateCaches(ctx)

	c.JSON(http.StatusOK, gin.H{
		"inserted":   inserted,
		"duplicates": duplicates,
		"parsed":     len(txns),
		"errors":     fileErrors,
	})
}

// readStatementText returns the plain text of an uploaded statement,
// extracting it from PDF bytes when needed.
func readStatementText(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	if bytes.HasPrefix(data, []byte("%PDF")) || strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return extractPDFText(data)
	}
	return string(data), nil
}

// transactionUpdate is the PATCH body for an explicit correction.
type transactionUpdate struct {
	Category     *string `json:"category"`
	Counterparty *string `json:"counterparty"`
	Description  *string `json:"description"`
}

// updateTransaction applies a category or field correction to a stored
// transaction.
func updateTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	var upd transactionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if upd.Category != nil && !isValidCategory(*upd.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	if upd.Description != nil && strings.TrimSpace(*upd.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description cannot be empty"})
		return
	}

	ctx := c.Request.Context()
	if err := updateTransactionFields(ctx, id, upd.Category, upd.Counterparty, upd.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateCaches(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction updated"})
}

// deleteTransaction removes a transaction by ID
func deleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	ctx := c.Request.Context()
	if err := deleteTransactionByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateCaches(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// clearAllTransactions empties the store.
func clearAllTransactions(c *gin.Context) {
	ctx := c.Request.Context()
	deleted, err := clearTransactions(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateCaches(ctx)

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// listCategories retrieves the category taxonomy with display colors.
func listCategories(c *gin.Context) {
	categories, err := getCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// excludeCreditCardParam reads the exclusion toggle, defaulting to true so
// lump-sum bill payments never double-count against itemized imports.
func excludeCreditCardParam(c *gin.Context) bool {
	return c.DefaultQuery("excludeCreditCardPayments", "true") != "false"
}

// fetchForAggregation loads the full (optionally date-bounded) transaction
// set for in-process aggregation.
func fetchForAggregation(c *gin.Context) ([]Transaction, bool) {
	txns, err := getTransactions(c.Request.Context(), TransactionFilter{
		From:   c.Query("from"),
		To:     c.Query("to"),
		SortBy: "date",
		Order:  "asc",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return txns, true
}

// getSummary returns overall income/expense totals with optional Redis
// caching for the default request.
func getSummary(c *gin.Context) {
	ctx := c.Request.Context()
	cacheable := isDefaultListRequest(c)

	if cacheable {
		var cached Summary
		if cacheGet(ctx, cacheKeySummary, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	txns, ok := fetchForAggregation(c)
	if !ok {
		return
	}
	summary := summarize(txns, excludeCreditCardParam(c))

	if cacheable {
		cacheSet(ctx, cacheKeySummary, summary, 5*time.Minute)
	}

	c.JSON(http.StatusOK, summary)
}

// getAggregate groups transactions by the requested dimension.
func getAggregate(c *gin.Context) {
	ctx := c.Request.Context()
	groupBy := c.DefaultQuery("groupBy", "category")
	exclude := excludeCreditCardParam(c)

	cacheable := c.Query("from") == "" && c.Query("to") == ""
	cacheKey := aggregateCacheKey(groupBy, exclude)

	if cacheable {
		var cached []GroupResult
		if cacheGet(ctx, cacheKey, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	txns, ok := fetchForAggregation(c)
	if !ok {
		return
	}
	results, err := aggregateTransactions(txns, groupBy, exclude)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cacheable {
		cacheSet(ctx, cacheKey, results, 5*time.Minute)
	}

	c.JSON(http.StatusOK, results)
}

// getReconciliation reports whether lump-sum card payments are balanced by
// itemized PDF imports.
func getReconciliation(c *gin.Context) {
	txns, ok := fetchForAggregation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reconcileCreditCard(txns))
}
