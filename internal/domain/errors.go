package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")

	// Comparison errors
	ErrComparisonNotFound   = errors.New("comparison not found")
	ErrComparisonFinalized  = errors.New("comparison already completed or failed")
	ErrInvalidDocumentCount = errors.New("a comparison requires between 2 and 5 documents")
	ErrDuplicateDocument    = errors.New("a document may only appear once in a comparison")
	ErrUpstreamFailed       = errors.New("comparison failed, try again")

	// Document errors
	ErrDocumentNotFound     = errors.New("document not found")
	ErrDocumentNotProcessed = errors.New("document has not finished processing")
)
