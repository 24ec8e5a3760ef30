package generator_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"verdicto/internal/domain"
	"verdicto/internal/generator"
)

func TestBuildComparisonPrompt(t *testing.T) {
	prompt := generator.BuildComparisonPrompt([]string{"Lease", "Amendment"})

	assert.Contains(t, prompt, "Compare the following 2 legal documents")
	assert.Contains(t, prompt, "Document 1: Lease\nDocument 2: Amendment\n")
	assert.Contains(t, prompt, `"overallRiskScore"`)
	assert.Contains(t, prompt, `"documentIndex"`)
	assert.Less(t, strings.Index(prompt, "Document 1: Lease"), strings.Index(prompt, "Document 2: Amendment"))
}

func TestBuildComparisonPrompt_Deterministic(t *testing.T) {
	titles := []string{"A", "B", "C"}
	assert.Equal(t, generator.BuildComparisonPrompt(titles), generator.BuildComparisonPrompt(titles))
	assert.NotEqual(t, generator.BuildComparisonPrompt(titles), generator.BuildComparisonPrompt([]string{"C", "B", "A"}))
}

func TestUpstreamError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("wrapped: %w", generator.NewUpstreamError("rag", 0, cause))

	assert.True(t, errors.Is(err, domain.ErrUpstreamFailed))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, domain.ErrDocumentNotFound))
	assert.Equal(t, "wrapped: rag unreachable: connection refused", err.Error())

	withStatus := generator.NewUpstreamError("rag", 502, cause)
	assert.Equal(t, "rag returned status 502: connection refused", withStatus.Error())
}
