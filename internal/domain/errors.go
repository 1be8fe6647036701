package domain

import "errors"

// -----------------------------------------------------------------------------
// Domain Errors
// These errors represent domain-level failures; the ingestion pipeline and
// stores use them to communicate specific conditions without string matching.
// -----------------------------------------------------------------------------

// Discriminator errors
var (
	ErrUnknownQuestionType = errors.New("unknown question type")
	ErrUnknownAssetType    = errors.New("unknown asset type")
)

// Lookup errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAssetNotFound    = errors.New("asset not found")
)
