package ingest

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lexforge/lexforge/internal/domain"
)

// State is a pipeline stage for one generation unit.
type State string

const (
	StateRequested   State = "requested"
	StateRawReceived State = "raw_received"
	StateParsed      State = "parsed"
	StateResolved    State = "discriminator_resolved"
	StateValidated   State = "validated"
	StateAccepted    State = "accepted"
	StateRejected    State = "rejected"
)

// Rejection is the structured reason a unit did not reach Accepted. Raw keeps
// the original model text for diagnostics; Violations is populated only for
// ErrInvariantViolation.
type Rejection struct {
	Kind       error
	Detail     string
	Raw        string
	Violations []domain.Violation
}

func (r *Rejection) Error() string {
	if r.Detail != "" {
		return fmt.Sprintf("%v: %s", r.Kind, r.Detail)
	}
	return r.Kind.Error()
}

func (r *Rejection) Unwrap() error { return r.Kind }

// Result is the terminal outcome for a single-entity unit. Exactly one of
// Question, Asset, or Rejection is set.
type Result struct {
	State     State
	Question  domain.AnyQuestion
	Asset     domain.AnyAsset
	Rejection *Rejection
}

func (r *Result) Accepted() bool { return r.State == StateAccepted }

// QuestionRequest carries what the caller asked the model for. The pipeline
// uses it to fill fields the wire contract lets the model omit: a batch
// prompt fixes the question type and target passage up front, so those tags
// are not repeated per element.
type QuestionRequest struct {
	ExpectedType domain.QuestionType
	AssetID      string
	Difficulty   *domain.DifficultyDetail
}

// Pipeline ingests raw model output into validated entities. It is stateless
// between calls: each unit builds its own entity graph, so one Pipeline is
// safe for concurrent use.
type Pipeline struct {
	logger *slog.Logger
}

func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// IngestQuestion runs one raw blob through the full state machine and returns
// the terminal state. It never returns an error: every failure mode is a
// structured Rejection.
func (p *Pipeline) IngestQuestion(raw string, req QuestionRequest) *Result {
	m, rej := p.receive(raw)
	if rej != nil {
		return &Result{State: StateRejected, Rejection: rej}
	}

	f := newFields(m)
	tag := f.str("questionType")
	if tag == "" && req.ExpectedType != "" {
		tag = string(req.ExpectedType)
	}
	qt, err := domain.ResolveQuestionType(tag)
	if err != nil {
		return &Result{State: StateRejected, Rejection: &Rejection{
			Kind:   ErrUnknownDiscriminator,
			Detail: fmt.Sprintf("questionType %q", tag),
			Raw:    raw,
		}}
	}

	q := buildQuestion(qt, f, req)
	vs := append(f.vs, domain.ValidateQuestion(q)...)
	if len(vs) > 0 {
		return &Result{State: StateRejected, Rejection: &Rejection{
			Kind:       ErrInvariantViolation,
			Detail:     fmt.Sprintf("%d violation(s)", len(vs)),
			Raw:        raw,
			Violations: vs,
		}}
	}
	return &Result{State: StateAccepted, Question: q}
}

// IngestAsset ingests one standalone asset blob. expected fills a missing
// assetType tag the same way QuestionRequest fills questionType.
func (p *Pipeline) IngestAsset(raw string, expected domain.AssetType) *Result {
	m, rej := p.receive(raw)
	if rej != nil {
		return &Result{State: StateRejected, Rejection: rej}
	}

	f := newFields(m)
	tag := f.str("assetType")
	if tag == "" && expected != "" {
		tag = string(expected)
	}
	at, err := domain.ResolveAssetType(tag)
	if err != nil {
		return &Result{State: StateRejected, Rejection: &Rejection{
			Kind:   ErrUnknownDiscriminator,
			Detail: fmt.Sprintf("assetType %q", tag),
			Raw:    raw,
		}}
	}

	a := buildAsset(at, f)
	vs := append(f.vs, domain.ValidateAsset(a)...)
	if len(vs) > 0 {
		return &Result{State: StateRejected, Rejection: &Rejection{
			Kind:       ErrInvariantViolation,
			Detail:     fmt.Sprintf("%d violation(s)", len(vs)),
			Raw:        raw,
			Violations: vs,
		}}
	}
	return &Result{State: StateAccepted, Asset: a}
}

// receive covers Requested through Parsed: reject empty input without retry,
// then strict-decode the whole text as one JSON object.
func (p *Pipeline) receive(raw string) (map[string]any, *Rejection) {
	if isBlank(raw) {
		return nil, &Rejection{Kind: ErrEmptyResponse, Raw: raw}
	}
	m, err := decodeObject(raw)
	if err != nil {
		return nil, &Rejection{Kind: ErrJSONParse, Detail: err.Error(), Raw: raw}
	}
	return m, nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// buildQuestion constructs the concrete variant named by the resolved tag.
// The tag decides the shape: a payload tagged SPELLING_CORRECTION never
// becomes a comprehension question, whatever its other fields look like.
func buildQuestion(qt domain.QuestionType, f *fields, req QuestionRequest) domain.AnyQuestion {
	base := domain.QuestionBase{
		QuestionType:       qt,
		LearningObjectives: f.strList("learningObjectives"),
		QuestionText:       f.strPtr("questionText"),
		Explanation:        f.localizedPtr("explanation"),
		CreatedAt:          f.timeVal("createdAt"),
		UpdatedAt:          f.timeVal("updatedAt"),
	}
	if d, ok := f.difficulty("difficulty"); ok {
		base.Difficulty = d
	} else if req.Difficulty != nil {
		base.Difficulty = *req.Difficulty
	}

	switch qt {
	case domain.TypeFillInTheBlank:
		return &domain.FillInTheBlankQuestion{
			QuestionBase:      base,
			AnswerInputType:   domain.AnswerInputType(f.str("answerInputType")),
			Choices:           f.choices("choices"),
			AcceptableAnswers: f.strList("acceptableAnswers"),
		}
	case domain.TypeTranslation:
		return &domain.TranslationQuestion{
			QuestionBase:           base,
			SourceText:             f.localized("sourceText"),
			TargetLanguage:         f.str("targetLanguage"),
			AcceptableTranslations: f.strList("acceptableTranslations"),
		}
	case domain.TypePictureDescription:
		return &domain.PictureDescriptionQuestion{
			QuestionBase:      base,
			ImageAssetID:      f.str("imageAssetId"),
			SuggestedKeywords: f.strList("suggestedKeywords"),
		}
	case domain.TypeReadingComprehension:
		return &domain.ReadingComprehensionQuestion{
			QuestionBase:      base,
			ContentAssetID:    refOrDefault(f, req),
			Choices:           f.choices("choices"),
			AcceptableAnswers: f.strList("acceptableAnswers"),
		}
	case domain.TypeListeningComprehension:
		return &domain.ListeningComprehensionQuestion{
			QuestionBase:      base,
			ContentAssetID:    refOrDefault(f, req),
			Choices:           f.choices("choices"),
			AcceptableAnswers: f.strList("acceptableAnswers"),
		}
	case domain.TypeSpellingCorrection:
		return &domain.SpellingCorrectionQuestion{
			QuestionBase:               base,
			WordChoices:                f.strList("wordChoices"),
			CorrectWord:                f.strPtr("correctWord"),
			SentenceWithMisspelledWord: f.strPtr("sentenceWithMisspelledWord"),
			MisspelledWordInSentence:   f.strPtr("misspelledWordInSentence"),
		}
	}
	return nil
}

func refOrDefault(f *fields, req QuestionRequest) string {
	if id := f.str("contentAssetId"); id != "" {
		return id
	}
	return req.AssetID
}

func buildAsset(at domain.AssetType, f *fields) domain.AnyAsset {
	base := domain.AssetBase{
		AssetID:            f.str("assetId"),
		AssetType:          at,
		Title:              f.localized("title"),
		Description:        f.localizedPtr("description"),
		LearningObjectives: f.strList("learningObjectives"),
		Tags:               f.strList("tags"),
		Status:             domain.StatusDraft,
		Version:            1,
		Source:             f.str("source"),
		CreatedBy:          f.str("createdBy"),
		CreatedAt:          f.timeVal("createdAt"),
		UpdatedAt:          f.timeVal("updatedAt"),
	}
	if d, ok := f.difficulty("difficulty"); ok {
		base.Difficulty = d
	}
	if f.has("status") {
		base.Status = domain.AssetStatus(f.str("status"))
	}
	if f.has("version") {
		base.Version = f.intVal("version")
	}

	switch at {
	case domain.TypePassage:
		return &domain.PassageAsset{
			AssetBase: base,
			Content:   f.str("content"),
		}
	case domain.TypeAudio:
		return &domain.AudioAsset{
			AssetBase:       base,
			AudioURL:        f.str("audioUrl"),
			DurationSeconds: f.num("durationSeconds"),
			Transcript:      f.strPtr("transcript"),
			SpeakerInfo:     f.strList("speakerInfo"),
		}
	case domain.TypeImage:
		return &domain.ImageAsset{
			AssetBase: base,
			ImageURL:  f.str("imageUrl"),
		}
	}
	return nil
}

// IsLocal reports whether a rejection kind is resolved inside the pipeline.
// Only collaborator failures escape to the caller's retry policy.
func IsLocal(err error) bool {
	return err != nil && !errors.Is(err, ErrCollaboratorFailure)
}
