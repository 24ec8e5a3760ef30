package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"verdicto/internal/domain"
	"verdicto/internal/export"
	"verdicto/internal/service"
)

// ComparisonHandler handles document comparison endpoints.
type ComparisonHandler struct {
	comparisonSvc service.ComparisonService
}

// NewComparisonHandler creates a new ComparisonHandler.
func NewComparisonHandler(comparisonSvc service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisonSvc: comparisonSvc}
}

// CreateComparisonRequest is the body of POST /comparisons.
type CreateComparisonRequest struct {
	DocumentIDs []uuid.UUID `json:"document_ids" binding:"required"`
}

// CreateComparisonResponse is returned once a comparison completes.
type CreateComparisonResponse struct {
	ComparisonID uuid.UUID `json:"comparison_id"`
	*domain.Comparison
}

// Create handles POST /api/v1/comparisons.
// Runs the comparison synchronously and returns the detected conflicts.
func (h *ComparisonHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req CreateComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document_ids must be a list of document UUIDs")
		return
	}

	comparison, err := h.comparisonSvc.CompareDocuments(c.Request.Context(), userID, req.DocumentIDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, CreateComparisonResponse{ComparisonID: comparison.ID, Comparison: comparison})
}

// GetByID handles GET /api/v1/comparisons/:id.
func (h *ComparisonHandler) GetByID(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	comparisonID, ok := parseComparisonID(c)
	if !ok {
		return
	}

	comparison, err := h.comparisonSvc.Get(c.Request.Context(), comparisonID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, comparison)
}

// List handles GET /api/v1/comparisons.
// Returns the caller's comparisons, newest first.
func (h *ComparisonHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	comparisons, err := h.comparisonSvc.List(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if comparisons == nil {
		comparisons = []domain.Comparison{}
	}

	RespondList(c, comparisons, ListMeta{Total: len(comparisons)})
}

// Delete handles DELETE /api/v1/comparisons/:id.
func (h *ComparisonHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	comparisonID, ok := parseComparisonID(c)
	if !ok {
		return
	}

	if err := h.comparisonSvc.Delete(c.Request.Context(), comparisonID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "comparison deleted"})
}

// Export handles GET /api/v1/comparisons/:id/export?format=csv|xlsx.
func (h *ComparisonHandler) Export(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	comparisonID, ok := parseComparisonID(c)
	if !ok {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	comparison, err := h.comparisonSvc.Get(c.Request.Context(), comparisonID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if comparison.Status != domain.ComparisonStatusCompleted {
		RespondError(c, http.StatusConflict, "COMPARISON_NOT_COMPLETED", "only completed comparisons can be exported")
		return
	}

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteXLSX(&buf, comparison)
	} else {
		err = export.WriteCSV(&buf, comparison)
	}
	if err != nil {
		log.Printf("ComparisonHandler.Export: failed to export comparison %s as %s: %v", comparisonID, format, err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to export comparison")
		return
	}

	filename := export.BuildFilename(comparison, format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func parseComparisonID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid comparison ID")
		return uuid.Nil, false
	}
	return id, true
}
