package ingest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/lexforge/lexforge/internal/domain"
)

const difficultyJSON = `{"stage":"SENIOR_HIGH","grade":1,"level":6,"name":{"en":"Senior High - Grade 1","zh_tw":"高中一年級"}}`

func testPipeline() *Pipeline {
	return NewPipeline(slog.New(slog.DiscardHandler))
}

func testDifficulty() domain.DifficultyDetail {
	return domain.DifficultyDetail{
		Stage: domain.StageSeniorHigh,
		Grade: 1,
		Level: 6,
		Name:  domain.LocalizedString{EN: "Senior High - Grade 1", ZhTW: "高中一年級"},
	}
}

func TestIngestQuestion_WireShape(t *testing.T) {
	// The flat wire shape a batch prompt asks for: no questionType, no
	// contentAssetId, flat explanation keys. The request fills the gaps.
	raw := `{"questionText":"What is the main idea?",
 "choices":[{"text":"A","isCorrect":false},{"text":"B","isCorrect":true},{"text":"C","isCorrect":false}],
 "explanation_en":"B restates the thesis.","explanation_zh_tw":"B 重述了主旨。"}`

	diff := testDifficulty()
	res := testPipeline().IngestQuestion(raw, QuestionRequest{
		ExpectedType: domain.TypeReadingComprehension,
		AssetID:      "passage-1",
		Difficulty:   &diff,
	})
	if !res.Accepted() {
		t.Fatalf("wire-shape question rejected: %v", res.Rejection)
	}
	q, ok := res.Question.(*domain.ReadingComprehensionQuestion)
	if !ok {
		t.Fatalf("got %T, want *ReadingComprehensionQuestion", res.Question)
	}
	if q.ContentAssetID != "passage-1" {
		t.Errorf("ContentAssetID = %q, want passage-1", q.ContentAssetID)
	}
	if q.Explanation == nil || q.Explanation.EN != "B restates the thesis." {
		t.Errorf("explanation not carried over: %+v", q.Explanation)
	}
	if q.Difficulty != diff {
		t.Errorf("Difficulty = %+v, want request default", q.Difficulty)
	}
}

func TestIngestQuestion_RoundTrip(t *testing.T) {
	text := "What is the main idea?"
	now := domain.Timestamp()
	original := &domain.ReadingComprehensionQuestion{
		QuestionBase: domain.QuestionBase{
			QuestionType: domain.TypeReadingComprehension,
			Difficulty:   testDifficulty(),
			QuestionText: &text,
			Explanation:  &domain.LocalizedString{EN: "B restates the thesis.", ZhTW: "B 重述了主旨。"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		ContentAssetID: "passage-1",
		Choices: []domain.ChoiceDetail{
			{Text: "A", IsCorrect: false},
			{Text: "B", IsCorrect: true},
		},
	}
	if vs := domain.Validate(original); len(vs) != 0 {
		t.Fatalf("fixture invalid: %v", vs)
	}

	blob, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}
	res := testPipeline().IngestQuestion(string(blob), QuestionRequest{})
	if !res.Accepted() {
		t.Fatalf("re-ingest rejected: %v", res.Rejection)
	}
	if !reflect.DeepEqual(res.Question, original) {
		t.Errorf("round trip diverged:\ngot  %+v\nwant %+v", res.Question, original)
	}
	if vs := domain.Validate(res.Question); len(vs) != 0 {
		t.Errorf("re-ingested entity has violations: %v", vs)
	}
}

func TestIngestQuestion_DiscriminatorFidelity(t *testing.T) {
	// The tag decides the constructed shape even when other fields happen to
	// satisfy a comprehension question.
	raw := `{"questionType":"SPELLING_CORRECTION",
 "difficulty":` + difficultyJSON + `,
 "wordChoices":["recieve","receive"],"correctWord":"receive",
 "contentAssetId":"passage-1",
 "choices":[{"text":"A","isCorrect":true},{"text":"B","isCorrect":false}]}`

	res := testPipeline().IngestQuestion(raw, QuestionRequest{})
	if !res.Accepted() {
		t.Fatalf("rejected: %v", res.Rejection)
	}
	if _, ok := res.Question.(*domain.SpellingCorrectionQuestion); !ok {
		t.Errorf("got %T, want *SpellingCorrectionQuestion", res.Question)
	}
}

func TestIngestQuestion_Rejections(t *testing.T) {
	diff := testDifficulty()
	req := QuestionRequest{ExpectedType: domain.TypeReadingComprehension, AssetID: "p1", Difficulty: &diff}

	tests := []struct {
		name string
		raw  string
		kind error
	}{
		{"empty", "", ErrEmptyResponse},
		{"whitespace only", " \n\t ", ErrEmptyResponse},
		{"prose around JSON", `Here you go: {"questionText":"x"}`, ErrJSONParse},
		{"trailing prose", `{"questionText":"x"} hope this helps!`, ErrJSONParse},
		{"top-level array", `[{"questionText":"x"}]`, ErrJSONParse},
		{"bare null", `null`, ErrJSONParse},
		{"unknown tag", `{"questionType":"ESSAY","questionText":"x"}`, ErrUnknownDiscriminator},
		{"invariant failure", `{"questionText":"x","choices":[{"text":"A","isCorrect":false}]}`, ErrInvariantViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testPipeline().IngestQuestion(tt.raw, req)
			if res.State != StateRejected || res.Rejection == nil {
				t.Fatalf("want rejection, got state %s", res.State)
			}
			if !errors.Is(res.Rejection, tt.kind) {
				t.Errorf("kind = %v, want %v", res.Rejection.Kind, tt.kind)
			}
			if res.Rejection.Raw != tt.raw {
				t.Errorf("raw text not preserved: %q", res.Rejection.Raw)
			}
		})
	}
}

func TestIngestQuestion_CoercionViolations(t *testing.T) {
	// Type mismatches are violations on the offending fields, not crashes,
	// and are collected alongside invariant violations.
	raw := `{"questionType":"READING_COMPREHENSION","questionText":42,
 "choices":"A, B, C","contentAssetId":"p1","difficulty":` + difficultyJSON + `}`

	res := testPipeline().IngestQuestion(raw, QuestionRequest{})
	if res.State != StateRejected {
		t.Fatal("want rejection")
	}
	if !errors.Is(res.Rejection, ErrInvariantViolation) {
		t.Fatalf("kind = %v", res.Rejection.Kind)
	}
	var coercion int
	for _, v := range res.Rejection.Violations {
		if v.Rule == "field.type" {
			coercion++
		}
	}
	if coercion != 2 {
		t.Errorf("want 2 field.type violations (questionText, choices), got %d: %v",
			coercion, res.Rejection.Violations)
	}
}

func TestIngestQuestionBatch_PartialSuccess(t *testing.T) {
	valid := `{"questionText":"Q%d?","choices":[{"text":"A","isCorrect":true},{"text":"B","isCorrect":false}],"explanation_en":"because","explanation_zh_tw":"因為"}`
	raw := `{"questions_list":[` +
		strings.Replace(valid, "%d", "1", 1) + `,` +
		`"this element is not an object",` +
		strings.Replace(valid, "%d", "3", 1) + `]}`

	diff := testDifficulty()
	report := testPipeline().IngestQuestionBatch(raw, 3, QuestionRequest{
		ExpectedType: domain.TypeReadingComprehension,
		AssetID:      "p1",
		Difficulty:   &diff,
	})
	if report.State != StateAccepted {
		t.Fatalf("batch rejected: %v", report.Rejection)
	}
	if report.AcceptedCount() != 2 || report.Requested != 3 {
		t.Errorf("accepted %d of %d, want 2 of 3", report.AcceptedCount(), report.Requested)
	}
	if len(report.Dropped) != 1 || report.Dropped[0].Index != 1 {
		t.Errorf("want element 1 dropped, got %+v", report.Dropped)
	}
}

func TestIngestQuestionBatch_AllDropped(t *testing.T) {
	raw := `{"questions_list":[{"questionText":"no answers"},{"questionText":"me neither"}]}`
	diff := testDifficulty()
	report := testPipeline().IngestQuestionBatch(raw, 2, QuestionRequest{
		ExpectedType: domain.TypeReadingComprehension,
		AssetID:      "p1",
		Difficulty:   &diff,
	})
	if report.State != StateRejected {
		t.Fatal("batch with zero survivors must be rejected")
	}
	if report.AcceptedCount() != 0 || len(report.Dropped) != 2 {
		t.Errorf("accepted=%d dropped=%d", report.AcceptedCount(), len(report.Dropped))
	}
}

func TestIngestQuestionBatch_MissingEnvelope(t *testing.T) {
	report := testPipeline().IngestQuestionBatch(`{"questions":[]}`, 3, QuestionRequest{})
	if report.State != StateRejected || !errors.Is(report.Rejection, ErrUnknownDiscriminator) {
		t.Fatalf("want unknown discriminator rejection, got %+v", report.Rejection)
	}
}

func TestIngestAsset(t *testing.T) {
	raw := `{"assetType":"AUDIO","assetId":"audio-7",
 "title":{"en":"Morning News","zh_tw":"晨間新聞"},
 "difficulty":` + difficultyJSON + `,
 "audioUrl":"https://cdn.example.com/a.mp3","durationSeconds":42.5,
 "speakerInfo":["US female","UK male"]}`

	res := testPipeline().IngestAsset(raw, "")
	if !res.Accepted() {
		t.Fatalf("rejected: %v", res.Rejection)
	}
	a, ok := res.Asset.(*domain.AudioAsset)
	if !ok {
		t.Fatalf("got %T, want *AudioAsset", res.Asset)
	}
	if a.DurationSeconds != 42.5 {
		t.Errorf("DurationSeconds = %v", a.DurationSeconds)
	}
	if a.Status != domain.StatusDraft || a.Version != 1 {
		t.Errorf("defaults not applied: status=%s version=%d", a.Status, a.Version)
	}

	t.Run("expected type fills missing tag", func(t *testing.T) {
		raw := `{"title":{"en":"The Deep Ocean","zh_tw":"深海"},
 "assetId":"passage-9","difficulty":` + difficultyJSON + `,
 "content":"The deep ocean is a realm of perpetual darkness."}`
		res := testPipeline().IngestAsset(raw, domain.TypePassage)
		if !res.Accepted() {
			t.Fatalf("rejected: %v", res.Rejection)
		}
		if _, ok := res.Asset.(*domain.PassageAsset); !ok {
			t.Errorf("got %T", res.Asset)
		}
	})

	t.Run("invalid duration", func(t *testing.T) {
		raw := `{"assetType":"AUDIO","assetId":"audio-8",
 "title":{"en":"t","zh_tw":"t"},"difficulty":` + difficultyJSON + `,
 "audioUrl":"https://cdn.example.com/b.mp3","durationSeconds":0}`
		res := testPipeline().IngestAsset(raw, "")
		if res.State != StateRejected || !errors.Is(res.Rejection, ErrInvariantViolation) {
			t.Fatalf("want invariant rejection, got %+v", res)
		}
	})
}

func TestIngestReadingMaterial(t *testing.T) {
	question := func(assetID string) string {
		ref := ""
		if assetID != "" {
			ref = `"contentAssetId":"` + assetID + `",`
		}
		return `{"questionText":"Why is the ocean dark?",` + ref +
			`"choices":[{"text":"Sunlight cannot reach it","isCorrect":true},{"text":"It is always night","isCorrect":false}],
 "explanation_en":"Water absorbs light.","explanation_zh_tw":"水會吸收光線。"}`
	}
	passage := `{"title":{"en":"The Deep Ocean","zh_tw":"深海"},
 "difficulty":` + difficultyJSON + `,
 "content":"The deep ocean is a realm of perpetual darkness.",
 "learningObjectives":["reading comprehension"],"tags":["ocean"]}`

	t.Run("accepted with generated passage ID", func(t *testing.T) {
		raw := `{"passageAsset":` + passage + `,"questions_list":[` +
			question("") + `,` + question("") + `]}`
		res := testPipeline().IngestReadingMaterial(raw, 2)
		if !res.Accepted() {
			t.Fatalf("rejected: %v", res.Rejection)
		}
		if res.Material.PassageAsset.AssetID == "" {
			t.Error("passage ID was not generated")
		}
		if len(res.Material.Questions) != 2 {
			t.Fatalf("got %d questions, want 2", len(res.Material.Questions))
		}
		for i, q := range res.Material.Questions {
			if ref := domain.ContentRef(q); ref != res.Material.PassageAsset.AssetID {
				t.Errorf("question %d references %q, want passage ID", i, ref)
			}
		}
	})

	t.Run("stray reference excludes one question", func(t *testing.T) {
		raw := `{"passageAsset":` + passage + `,"questions_list":[` +
			question("") + `,` + question("some-other-passage") + `]}`
		res := testPipeline().IngestReadingMaterial(raw, 2)
		if !res.Accepted() {
			t.Fatalf("rejected: %v", res.Rejection)
		}
		if len(res.Material.Questions) != 1 {
			t.Errorf("got %d questions, want 1", len(res.Material.Questions))
		}
		if len(res.Dropped) != 1 || !errors.Is(res.Dropped[0].Kind, ErrCrossReferenceMismatch) {
			t.Errorf("want one cross-reference drop, got %+v", res.Dropped)
		}
	})

	t.Run("invalid passage rejects the unit", func(t *testing.T) {
		raw := `{"passageAsset":{"title":{"en":"t","zh_tw":"t"},"difficulty":` + difficultyJSON + `,"content":"  "},
 "questions_list":[` + question("") + `]}`
		res := testPipeline().IngestReadingMaterial(raw, 1)
		if res.State != StateRejected || !errors.Is(res.Rejection, ErrInvariantViolation) {
			t.Fatalf("want invariant rejection, got %+v", res.Rejection)
		}
	})

	t.Run("missing passage object", func(t *testing.T) {
		res := testPipeline().IngestReadingMaterial(`{"questions_list":[]}`, 1)
		if res.State != StateRejected || !errors.Is(res.Rejection, ErrUnknownDiscriminator) {
			t.Fatalf("want discriminator rejection, got %+v", res.Rejection)
		}
	})
}

func TestLinkToPassage(t *testing.T) {
	passage := &domain.PassageAsset{AssetBase: domain.AssetBase{AssetID: "p1"}}
	text := "q"
	mk := func(ref string) domain.AnyQuestion {
		return &domain.ReadingComprehensionQuestion{
			QuestionBase:   domain.QuestionBase{QuestionText: &text},
			ContentAssetID: ref,
		}
	}
	standalone := &domain.TranslationQuestion{
		SourceText:     domain.LocalizedString{EN: "hi", ZhTW: "嗨"},
		TargetLanguage: "zh_tw",
	}

	linked, excluded := LinkToPassage(passage, []domain.AnyQuestion{
		mk("p1"), mk("p2"), standalone, mk("p1"),
	})
	if len(linked) != 3 {
		t.Errorf("linked %d, want 3 (two matches plus the standalone variant)", len(linked))
	}
	if len(excluded) != 1 || excluded[0].Index != 1 {
		t.Fatalf("want index 1 excluded, got %+v", excluded)
	}
	if !strings.Contains(excluded[0].Reason, "p2") {
		t.Errorf("reason should name the stray ID: %s", excluded[0].Reason)
	}
}
