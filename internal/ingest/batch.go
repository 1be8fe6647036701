package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexforge/lexforge/internal/domain"
)

// Drop records one batch element that did not survive ingestion. Siblings
// are unaffected.
type Drop struct {
	Index      int
	Kind       error
	Detail     string
	Violations []domain.Violation
}

// BatchReport is the terminal outcome for a question batch. The batch is
// accepted if at least one element survived; Requested and the length of
// Accepted tell the caller whether to ask for a top-up generation.
type BatchReport struct {
	State     State
	Accepted  []domain.AnyQuestion
	Dropped   []Drop
	Requested int
	Rejection *Rejection
}

func (b *BatchReport) AcceptedCount() int { return len(b.Accepted) }

// IngestQuestionBatch decodes the {"questions_list": [...]} envelope and runs
// each element through the single-question state machine independently. A
// malformed element is dropped with a logged reason while its siblings
// proceed.
func (p *Pipeline) IngestQuestionBatch(raw string, want int, req QuestionRequest) *BatchReport {
	report := &BatchReport{Requested: want}

	m, rej := p.receive(raw)
	if rej != nil {
		report.State = StateRejected
		report.Rejection = rej
		return report
	}

	elems, rej := questionList(m, raw)
	if rej != nil {
		report.State = StateRejected
		report.Rejection = rej
		return report
	}

	for i, elem := range elems {
		blob, err := json.Marshal(elem)
		if err != nil {
			p.dropElement(report, i, ErrJSONParse, err.Error(), nil)
			continue
		}
		res := p.IngestQuestion(string(blob), req)
		if !res.Accepted() {
			p.dropElement(report, i, res.Rejection.Kind, res.Rejection.Detail, res.Rejection.Violations)
			continue
		}
		report.Accepted = append(report.Accepted, res.Question)
	}

	if len(report.Accepted) == 0 {
		report.State = StateRejected
		report.Rejection = &Rejection{
			Kind:   ErrInvariantViolation,
			Detail: fmt.Sprintf("all %d element(s) dropped", len(elems)),
			Raw:    raw,
		}
		return report
	}
	report.State = StateAccepted
	return report
}

func (p *Pipeline) dropElement(report *BatchReport, i int, kind error, detail string, vs []domain.Violation) {
	report.Dropped = append(report.Dropped, Drop{Index: i, Kind: kind, Detail: detail, Violations: vs})
	p.logger.Warn("dropped batch element",
		"index", i,
		"reason", kind.Error(),
		"detail", detail,
		"violations", len(vs))
}

func questionList(m map[string]any, raw string) ([]any, *Rejection) {
	v, ok := m["questions_list"]
	if !ok {
		return nil, &Rejection{
			Kind:   ErrUnknownDiscriminator,
			Detail: "missing questions_list envelope",
			Raw:    raw,
		}
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &Rejection{
			Kind:   ErrJSONParse,
			Detail: fmt.Sprintf("questions_list is %T, not a list", v),
			Raw:    raw,
		}
	}
	return list, nil
}

// MaterialResult is the terminal outcome for a combined passage-plus-questions
// generation unit.
type MaterialResult struct {
	State     State
	Material  *domain.GeneratedReadingMaterial
	Dropped   []Drop
	Requested int
	Rejection *Rejection
}

func (r *MaterialResult) Accepted() bool { return r.State == StateAccepted }

// IngestReadingMaterial ingests one combined unit: a passage asset plus its
// reading comprehension questions in a single object. The passage must be
// valid for the unit to survive; questions drop individually, and surviving
// ones are linked against the passage so a stray asset reference excludes
// only that question.
func (p *Pipeline) IngestReadingMaterial(raw string, want int) *MaterialResult {
	result := &MaterialResult{Requested: want}

	m, rej := p.receive(raw)
	if rej != nil {
		result.State = StateRejected
		result.Rejection = rej
		return result
	}

	f := newFields(m)
	passageMap := f.obj("passageAsset")
	if passageMap == nil {
		result.State = StateRejected
		result.Rejection = &Rejection{
			Kind:   ErrUnknownDiscriminator,
			Detail: "missing passageAsset object",
			Raw:    raw,
		}
		return result
	}

	passage := buildAsset(domain.TypePassage, passageMap).(*domain.PassageAsset)
	if passage.AssetID == "" {
		passage.AssetID = uuid.NewString()
	}
	vs := append(passageMap.vs, domain.ValidateAsset(passage)...)
	if len(vs) > 0 {
		result.State = StateRejected
		result.Rejection = &Rejection{
			Kind:       ErrInvariantViolation,
			Detail:     fmt.Sprintf("passage failed with %d violation(s)", len(vs)),
			Raw:        raw,
			Violations: vs,
		}
		return result
	}

	req := QuestionRequest{
		ExpectedType: domain.TypeReadingComprehension,
		AssetID:      passage.AssetID,
		Difficulty:   &passage.Difficulty,
	}
	batchRaw, err := json.Marshal(map[string]any{"questions_list": m["questions_list"]})
	if err != nil {
		result.State = StateRejected
		result.Rejection = &Rejection{Kind: ErrJSONParse, Detail: err.Error(), Raw: raw}
		return result
	}
	batch := p.IngestQuestionBatch(string(batchRaw), want, req)
	result.Dropped = batch.Dropped
	if batch.State == StateRejected {
		result.State = StateRejected
		result.Rejection = batch.Rejection
		return result
	}

	linked, excluded := LinkToPassage(passage, batch.Accepted)
	for _, ex := range excluded {
		result.Dropped = append(result.Dropped, Drop{
			Index:  ex.Index,
			Kind:   ErrCrossReferenceMismatch,
			Detail: ex.Reason,
		})
		p.logger.Warn("excluded question", "index", ex.Index, "reason", ex.Reason)
	}
	if len(linked) == 0 {
		result.State = StateRejected
		result.Rejection = &Rejection{
			Kind:   ErrCrossReferenceMismatch,
			Detail: "no question references the generated passage",
			Raw:    raw,
		}
		return result
	}

	result.State = StateAccepted
	result.Material = &domain.GeneratedReadingMaterial{
		PassageAsset: *passage,
		Questions:    linked,
	}
	return result
}
