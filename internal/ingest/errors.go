package ingest

import "errors"

// Rejection kinds. Every kind except ErrCollaboratorFailure is resolved
// locally by moving the generation unit to Rejected; ErrCollaboratorFailure
// is surfaced to the caller unchanged.
var (
	ErrEmptyResponse          = errors.New("model returned empty response")
	ErrJSONParse              = errors.New("response is not a single JSON object")
	ErrUnknownDiscriminator   = errors.New("unknown type discriminator")
	ErrInvariantViolation     = errors.New("entity failed invariant validation")
	ErrCrossReferenceMismatch = errors.New("question references a different asset")
	ErrCollaboratorFailure    = errors.New("model collaborator failed")
)
