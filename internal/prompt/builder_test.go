package prompt

import (
	"strings"
	"testing"

	"github.com/lexforge/lexforge/internal/domain"
)

func testLevel() domain.DifficultyDetail {
	lvl, ok := LevelByName("Junior High School - Grade 2")
	if !ok {
		panic("ladder entry missing")
	}
	return lvl
}

func mustContain(t *testing.T, s string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(s, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestReadingMaterial(t *testing.T) {
	p := ReadingMaterial(MaterialOptions{Topic: "Night Markets in Taiwan", Level: testLevel()})

	mustContain(t, p,
		"'passageAsset'",
		"'questions_list'",
		"Night Markets in Taiwan",
		"AI Generated from topic: Night Markets in Taiwan",
		"\"PASSAGE\"",
		"\"READING_COMPREHENSION\"",
		"`contentAssetId`",
		"`assetId`",
		"\"DRAFT\"",
		"isCorrect",
		"zh_tw",
		"exactly 3 multiple-choice",
	)
	if !strings.Contains(p, testLevel().Name.EN) {
		t.Errorf("prompt missing level name %q", testLevel().Name.EN)
	}
}

func TestReadingMaterial_Defaults(t *testing.T) {
	p := ReadingMaterial(MaterialOptions{})

	// A random topic and the default level must have been filled in.
	mustContain(t, p, DefaultLevel().Name.EN, "AI Generated from topic: ")
	if strings.Contains(p, "topic: '%s'") {
		t.Error("topic placeholder not interpolated")
	}
}

func TestQuestionBatch_MultipleChoice(t *testing.T) {
	p := QuestionBatch(BatchOptions{
		PassageContent: "The owl hunts at night.",
		LevelName:      "Senior High School - Grade 1",
		Count:          2,
	})

	mustContain(t, p,
		"The owl hunts at night.",
		"Senior High School - Grade 1",
		"exactly 2 question(s)",
		"{\"questions_list\":[...]}",
		"'choices'",
		"'explanation_en'",
		"'explanation_zh_tw'",
	)
	if strings.Contains(p, "'acceptableAnswers' (list of 1-3 strings") {
		t.Error("MCQ prompt should not instruct acceptableAnswers")
	}
}

func TestQuestionBatch_TextInput(t *testing.T) {
	p := QuestionBatch(BatchOptions{
		PassageContent: "Alice met a rabbit.",
		TextInput:      true,
		Objectives:     []string{"recalling character names"},
	})

	mustContain(t, p, "'acceptableAnswers'", "recalling character names")
	if strings.Contains(p, "'choices' (list of") {
		t.Error("text input prompt should not instruct choices")
	}
}

func TestQuestion_PerType(t *testing.T) {
	lvl := testLevel()
	cases := []struct {
		qt    domain.QuestionType
		wants []string
	}{
		{domain.TypeFillInTheBlank, []string{"___", "'answerInputType'", "TEXT_INPUT"}},
		{domain.TypeTranslation, []string{"'sourceText'", "'targetLanguage'", "'acceptableTranslations'"}},
		{domain.TypePictureDescription, []string{"'imageAssetId'", "'suggestedKeywords'"}},
		{domain.TypeReadingComprehension, []string{"'contentAssetId'", "'choices'", "'acceptableAnswers'"}},
		{domain.TypeListeningComprehension, []string{"'contentAssetId'", "'choices'", "'acceptableAnswers'"}},
		{domain.TypeSpellingCorrection, []string{"'wordChoices'", "'sentenceWithMisspelledWord'", "'correctWord'"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.qt), func(t *testing.T) {
			p := Question(tc.qt, lvl)
			mustContain(t, p, string(tc.qt), "'explanation_en'", "'explanation_zh_tw'")
			mustContain(t, p, tc.wants...)
		})
	}
}

func TestArticle(t *testing.T) {
	p := Article("Bubble Tea", "Elementary School - Grade 5", 0, 0)
	mustContain(t, p, "Bubble Tea", "Elementary School - Grade 5", "3 paragraphs", "150 words")
}

func TestRandomTopic(t *testing.T) {
	for i := 0; i < 20; i++ {
		topic := RandomTopic()
		if topic == "" {
			t.Fatal("empty topic from catalog")
		}
	}
}

func TestLevelByName(t *testing.T) {
	if _, ok := LevelByName("no such level"); ok {
		t.Error("unknown name resolved")
	}
	byEN, ok := LevelByName("Comprehensive Assessment Program (CAP)")
	if !ok {
		t.Fatal("CAP level missing from ladder")
	}
	byZh, ok := LevelByName(byEN.Name.ZhTW)
	if !ok {
		t.Fatal("zh_tw lookup failed")
	}
	if byZh != byEN {
		t.Error("EN and zh_tw lookups disagree")
	}
}
