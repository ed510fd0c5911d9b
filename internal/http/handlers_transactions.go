package http

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"family-budget-go/internal/models"
	"family-budget-go/internal/repository"
	"family-budget-go/internal/services"
)

const dateLayout = "2006-01-02"

type transactionRequest struct {
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	CategoryID   *uint   `json:"category_id"`
	Date         string  `json:"date" binding:"required"`
	Bank         string  `json:"bank" binding:"required"`
	Source       string  `json:"source"`
	AISuggested  bool    `json:"ai_suggested"`
	AIConfidence float64 `json:"ai_confidence"`
}

func (r transactionRequest) toInput() (services.CreateInput, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return services.CreateInput{}, err
	}
	return services.CreateInput{
		Amount:       r.Amount,
		Description:  r.Description,
		CategoryID:   r.CategoryID,
		Date:         date,
		Bank:         r.Bank,
		Source:       models.TransactionSource(r.Source),
		AISuggested:  r.AISuggested,
		AIConfidence: r.AIConfidence,
	}, nil
}

// POST /v1/transactions
func (s *Server) createTransaction(c *gin.Context) {
	teamID, userID := currentIDs(c)

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(400, gin.H{"error": "validation_failed", "field": "date", "detail": "expected YYYY-MM-DD"})
		return
	}

	t, err := s.transactions.Create(c.Request.Context(), teamID, userID, in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(201, t)
}

// GET /v1/transactions
func (s *Server) listTransactions(c *gin.Context) {
	teamID, _ := currentIDs(c)

	filter := repository.TransactionFilter{Status: models.TransactionActive}
	if status := c.Query("status"); status != "" {
		filter.Status = models.TransactionStatus(status)
	}
	if catStr := c.Query("category_id"); catStr != "" {
		if id, err := strconv.ParseUint(catStr, 10, 32); err == nil {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
		}
	}
	if start := c.Query("start_date"); start != "" {
		if d, err := time.Parse(dateLayout, start); err == nil {
			filter.From = d
		}
	}
	if end := c.Query("end_date"); end != "" {
		if d, err := time.Parse(dateLayout, end); err == nil {
			filter.To = d
		}
	}

	txs, err := s.transactions.List(c.Request.Context(), teamID, filter)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, txs)
}

// GET /v1/transactions/:id
func (s *Server) getTransaction(c *gin.Context) {
	teamID, _ := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	t, err := s.transactions.Get(c.Request.Context(), teamID, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, t)
}

// PATCH /v1/transactions/:id
func (s *Server) updateTransaction(c *gin.Context) {
	teamID, userID := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Amount      *float64 `json:"amount"`
		Description *string  `json:"description"`
		CategoryID  *uint    `json:"category_id"`
		Date        *string  `json:"date"`
		Bank        *string  `json:"bank"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	patch := services.UpdatePatch{
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Bank:        req.Bank,
	}
	if req.Date != nil {
		d, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			c.JSON(400, gin.H{"error": "validation_failed", "field": "date", "detail": "expected YYYY-MM-DD"})
			return
		}
		patch.Date = &d
	}

	t, err := s.transactions.Update(c.Request.Context(), teamID, userID, id, patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, t)
}

// DELETE /v1/transactions/:id
func (s *Server) deleteTransaction(c *gin.Context) {
	teamID, userID := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := s.transactions.Delete(c.Request.Context(), teamID, userID, id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "transaction deleted"})
}

// POST /v1/transactions/batch
// Items are schema-validated one by one; invalid items become per-item
// errors and never abort the rest of the batch.
func (s *Server) batchCreateTransactions(c *gin.Context) {
	teamID, userID := currentIDs(c)

	var rawItems []json.RawMessage
	if err := c.ShouldBindJSON(&rawItems); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	result := services.BatchResult{
		Created: make([]models.Transaction, 0, len(rawItems)),
		Errors:  make([]services.BatchItemError, 0),
	}

	for i, raw := range rawItems {
		res, err := s.batchSchema.Validate(gojsonschema.NewBytesLoader(raw))
		if err != nil || !res.Valid() {
			reason := "schema validation failed"
			if err == nil && len(res.Errors()) > 0 {
				reason = res.Errors()[0].String()
			}
			result.Errors = append(result.Errors, services.BatchItemError{Index: i, Reason: reason})
			continue
		}

		var req transactionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			result.Errors = append(result.Errors, services.BatchItemError{Index: i, Reason: err.Error()})
			continue
		}
		in, err := req.toInput()
		if err != nil {
			result.Errors = append(result.Errors, services.BatchItemError{Index: i, Reason: "date: expected YYYY-MM-DD"})
			continue
		}

		t, err := s.transactions.Create(c.Request.Context(), teamID, userID, in)
		if err != nil {
			result.Errors = append(result.Errors, services.BatchItemError{Index: i, Reason: err.Error()})
			continue
		}
		result.Created = append(result.Created, *t)
	}

	c.JSON(200, result)
}

// POST /v1/transactions/apply-rules
func (s *Server) applyRules(c *gin.Context) {
	teamID, userID := currentIDs(c)

	applied, err := s.transactions.ApplyRules(c.Request.Context(), teamID, userID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"applied": applied})
}

// GET /v1/transactions/:id/audit
func (s *Server) transactionAudit(c *gin.Context) {
	teamID, _ := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	entries, err := s.transactions.AuditTrail(c.Request.Context(), teamID, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, entries)
}

// GET /v1/audit?from=&to=
func (s *Server) auditInRange(c *gin.Context) {
	teamID, _ := currentIDs(c)

	from, err := time.Parse(dateLayout, c.DefaultQuery("from", "1970-01-01"))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.Parse(dateLayout, c.DefaultQuery("to", "9999-12-31"))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid to date"})
		return
	}
	// Inclusive end of day.
	to = to.Add(24*time.Hour - time.Nanosecond)

	entries, err := s.transactions.AuditInRange(c.Request.Context(), teamID, from, to)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, entries)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
