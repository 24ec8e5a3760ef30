package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"verdicto/internal/domain"
	"verdicto/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrComparisonNotFound, http.StatusNotFound, "COMPARISON_NOT_FOUND"},
		{domain.ErrComparisonFinalized, http.StatusConflict, "COMPARISON_FINALIZED"},
		{domain.ErrInvalidDocumentCount, http.StatusBadRequest, "INVALID_DOCUMENT_COUNT"},
		{domain.ErrDuplicateDocument, http.StatusBadRequest, "DUPLICATE_DOCUMENT"},
		{domain.ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{domain.ErrDocumentNotProcessed, http.StatusBadRequest, "DOCUMENT_NOT_PROCESSED"},
		{fmt.Errorf("comparison x: %w", domain.ErrUpstreamFailed), http.StatusBadGateway, "UPSTREAM_FAILED"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}
