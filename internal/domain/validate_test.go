package domain

import (
	"reflect"
	"testing"
)

func validDifficulty() DifficultyDetail {
	return DifficultyDetail{
		Stage: StageSeniorHigh,
		Grade: 1,
		Level: 6,
		Name:  LocalizedString{EN: "Senior High - Grade 1", ZhTW: "高中一年級"},
	}
}

func strPtr(s string) *string { return &s }

func validReadingComprehension() *ReadingComprehensionQuestion {
	return &ReadingComprehensionQuestion{
		QuestionBase: QuestionBase{
			QuestionType: TypeReadingComprehension,
			Difficulty:   validDifficulty(),
			QuestionText: strPtr("What is the main idea?"),
		},
		ContentAssetID: "passage-1",
		Choices: []ChoiceDetail{
			{Text: "A", IsCorrect: false},
			{Text: "B", IsCorrect: true},
			{Text: "C", IsCorrect: false},
		},
	}
}

func TestValidateQuestion_ReadingComprehension(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ReadingComprehensionQuestion)
		wantRules []string
	}{
		{
			name:      "valid",
			mutate:    func(q *ReadingComprehensionQuestion) {},
			wantRules: nil,
		},
		{
			name: "zero correct choices",
			mutate: func(q *ReadingComprehensionQuestion) {
				for i := range q.Choices {
					q.Choices[i].IsCorrect = false
				}
			},
			wantRules: []string{"choices.one_correct"},
		},
		{
			name: "two correct choices",
			mutate: func(q *ReadingComprehensionQuestion) {
				q.Choices[0].IsCorrect = true
			},
			wantRules: []string{"choices.one_correct"},
		},
		{
			name: "both answer modes",
			mutate: func(q *ReadingComprehensionQuestion) {
				q.AcceptableAnswers = []string{"B"}
			},
			wantRules: []string{"answers.exclusive"},
		},
		{
			name: "neither answer mode",
			mutate: func(q *ReadingComprehensionQuestion) {
				q.Choices = nil
			},
			wantRules: []string{"answers.required"},
		},
		{
			name: "missing asset reference",
			mutate: func(q *ReadingComprehensionQuestion) {
				q.ContentAssetID = ""
			},
			wantRules: []string{"contentAssetId.required"},
		},
		{
			name: "empty choice text",
			mutate: func(q *ReadingComprehensionQuestion) {
				q.Choices[2].Text = "  "
			},
			wantRules: []string{"choices.text.required"},
		},
		{
			name: "empty acceptable answer entry",
			mutate: func(q *ReadingComprehensionQuestion) {
				q.Choices = nil
				q.AcceptableAnswers = []string{"fine", ""}
			},
			wantRules: []string{"acceptableAnswers.entry.required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validReadingComprehension()
			tt.mutate(q)
			got := ValidateQuestion(q)
			assertRules(t, got, tt.wantRules)
		})
	}
}

func TestValidateQuestion_FillInTheBlank(t *testing.T) {
	base := func() *FillInTheBlankQuestion {
		return &FillInTheBlankQuestion{
			QuestionBase: QuestionBase{
				QuestionType: TypeFillInTheBlank,
				Difficulty:   validDifficulty(),
				QuestionText: strPtr("The quick brown fox ___ over the lazy dog."),
			},
			AnswerInputType:   InputTextInput,
			AcceptableAnswers: []string{"jumps", "jumped"},
		}
	}

	t.Run("valid text input", func(t *testing.T) {
		assertRules(t, ValidateQuestion(base()), nil)
	})

	t.Run("valid multiple choice", func(t *testing.T) {
		q := base()
		q.AnswerInputType = InputMultipleChoice
		q.AcceptableAnswers = nil
		q.Choices = []ChoiceDetail{
			{Text: "jumps", IsCorrect: true},
			{Text: "swims", IsCorrect: false},
		}
		assertRules(t, ValidateQuestion(q), nil)
	})

	t.Run("both modes rejected regardless of input type", func(t *testing.T) {
		for _, input := range []AnswerInputType{InputMultipleChoice, InputTextInput, "BOGUS"} {
			q := base()
			q.AnswerInputType = input
			q.Choices = []ChoiceDetail{{Text: "jumps", IsCorrect: true}}
			q.AcceptableAnswers = []string{"jumps"}
			got := ValidateQuestion(q)
			if !hasRule(got, "answers.exclusive") {
				t.Errorf("input type %q: want answers.exclusive violation, got %v", input, got)
			}
		}
	})

	t.Run("mode must match input type", func(t *testing.T) {
		q := base()
		q.AnswerInputType = InputMultipleChoice // but only acceptableAnswers set
		got := ValidateQuestion(q)
		if !hasRule(got, "choices.required") || !hasRule(got, "answers.exclusive") {
			t.Errorf("want choices.required and answers.exclusive, got %v", got)
		}
	})

	t.Run("missing question text", func(t *testing.T) {
		q := base()
		q.QuestionText = nil
		assertRules(t, ValidateQuestion(q), []string{"questionText.required"})
	})
}

func TestValidateQuestion_SpellingCorrection(t *testing.T) {
	tests := []struct {
		name      string
		question  *SpellingCorrectionQuestion
		wantRules []string
	}{
		{
			name: "valid word mode",
			question: &SpellingCorrectionQuestion{
				QuestionBase: QuestionBase{Difficulty: validDifficulty()},
				WordChoices:  []string{"recieve", "receive", "receeve"},
				CorrectWord:  strPtr("receive"),
			},
			wantRules: nil,
		},
		{
			name: "valid sentence mode",
			question: &SpellingCorrectionQuestion{
				QuestionBase:               QuestionBase{Difficulty: validDifficulty()},
				SentenceWithMisspelledWord: strPtr("I recieved your letter yesterday."),
				MisspelledWordInSentence:   strPtr("recieved"),
				CorrectWord:                strPtr("received"),
			},
			wantRules: nil,
		},
		{
			name: "both modes",
			question: &SpellingCorrectionQuestion{
				QuestionBase:               QuestionBase{Difficulty: validDifficulty()},
				WordChoices:                []string{"receive"},
				CorrectWord:                strPtr("receive"),
				SentenceWithMisspelledWord: strPtr("I recieved it."),
				MisspelledWordInSentence:   strPtr("recieved"),
			},
			wantRules: []string{"modes.exclusive"},
		},
		{
			name: "neither mode",
			question: &SpellingCorrectionQuestion{
				QuestionBase: QuestionBase{Difficulty: validDifficulty()},
			},
			wantRules: []string{"modes.required"},
		},
		{
			name: "correct word not among choices",
			question: &SpellingCorrectionQuestion{
				QuestionBase: QuestionBase{Difficulty: validDifficulty()},
				WordChoices:  []string{"recieve", "receeve"},
				CorrectWord:  strPtr("receive"),
			},
			wantRules: []string{"correctWord.membership"},
		},
		{
			name: "sentence mode missing correct word",
			question: &SpellingCorrectionQuestion{
				QuestionBase:               QuestionBase{Difficulty: validDifficulty()},
				SentenceWithMisspelledWord: strPtr("I recieved it."),
				MisspelledWordInSentence:   strPtr("recieved"),
			},
			wantRules: []string{"correctWord.required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertRules(t, ValidateQuestion(tt.question), tt.wantRules)
		})
	}
}

func TestValidateQuestion_Translation(t *testing.T) {
	q := &TranslationQuestion{
		QuestionBase:           QuestionBase{Difficulty: validDifficulty()},
		SourceText:             LocalizedString{EN: "Good morning", ZhTW: "早安"},
		TargetLanguage:         "zh_tw",
		AcceptableTranslations: []string{"早安", "早上好"},
	}
	assertRules(t, ValidateQuestion(q), nil)

	q.TargetLanguage = "fr"
	q.AcceptableTranslations = nil
	got := ValidateQuestion(q)
	if !hasRule(got, "targetLanguage.enum") || !hasRule(got, "acceptableTranslations.required") {
		t.Errorf("want targetLanguage.enum and acceptableTranslations.required, got %v", got)
	}
}

func TestValidateQuestion_Difficulty(t *testing.T) {
	q := validReadingComprehension()
	q.Difficulty.Stage = "UNIVERSITY"
	q.Difficulty.Grade = 0
	q.Difficulty.Level = 11
	got := ValidateQuestion(q)
	for _, rule := range []string{"difficulty.stage.enum", "difficulty.grade.min", "difficulty.level.range"} {
		if !hasRule(got, rule) {
			t.Errorf("missing %s in %v", rule, got)
		}
	}
}

func TestValidateAsset(t *testing.T) {
	passage := func() *PassageAsset {
		return &PassageAsset{
			AssetBase: AssetBase{
				AssetID:    "passage-1",
				AssetType:  TypePassage,
				Title:      LocalizedString{EN: "The Deep Ocean", ZhTW: "深海"},
				Difficulty: validDifficulty(),
				Status:     StatusDraft,
				Version:    1,
			},
			Content: "The deep ocean is a realm of perpetual darkness.",
		}
	}

	t.Run("valid passage", func(t *testing.T) {
		assertRules(t, ValidateAsset(passage()), nil)
	})

	t.Run("empty content", func(t *testing.T) {
		p := passage()
		p.Content = "   "
		assertRules(t, ValidateAsset(p), []string{"content.required"})
	})

	t.Run("bad base fields", func(t *testing.T) {
		p := passage()
		p.AssetID = ""
		p.Status = "LIVE"
		p.Version = 0
		got := ValidateAsset(p)
		for _, rule := range []string{"assetId.required", "status.enum", "version.min"} {
			if !hasRule(got, rule) {
				t.Errorf("missing %s in %v", rule, got)
			}
		}
	})

	t.Run("audio duration", func(t *testing.T) {
		a := &AudioAsset{
			AssetBase: AssetBase{
				AssetID:    "audio-1",
				AssetType:  TypeAudio,
				Title:      LocalizedString{EN: "Morning News", ZhTW: "晨間新聞"},
				Difficulty: validDifficulty(),
				Status:     StatusDraft,
				Version:    1,
			},
			AudioURL:        "https://cdn.example.com/a.mp3",
			DurationSeconds: 0,
		}
		assertRules(t, ValidateAsset(a), []string{"durationSeconds.positive"})
	})
}

func TestValidate_MaterialCrossReference(t *testing.T) {
	material := func() *GeneratedReadingMaterial {
		return &GeneratedReadingMaterial{
			PassageAsset: PassageAsset{
				AssetBase: AssetBase{
					AssetID:    "passage-1",
					AssetType:  TypePassage,
					Title:      LocalizedString{EN: "The Deep Ocean", ZhTW: "深海"},
					Difficulty: validDifficulty(),
					Status:     StatusDraft,
					Version:    1,
				},
				Content: "The deep ocean is a realm of perpetual darkness.",
			},
			Questions: []AnyQuestion{validReadingComprehension()},
		}
	}

	t.Run("question references its passage", func(t *testing.T) {
		assertRules(t, Validate(material()), nil)
	})

	t.Run("question references another passage", func(t *testing.T) {
		m := material()
		m.Questions[0].(*ReadingComprehensionQuestion).ContentAssetID = "some-other-passage"
		got := Validate(m)
		if !hasRule(got, "contentAssetId.match") {
			t.Fatalf("want contentAssetId.match, got %v", got)
		}
		for _, v := range got {
			if v.Rule == "contentAssetId.match" && v.Field != "questions_list[0].contentAssetId" {
				t.Errorf("want field questions_list[0].contentAssetId, got %s", v.Field)
			}
		}
	})
}

func TestValidate_Idempotent(t *testing.T) {
	q := validReadingComprehension()
	q.Choices[1].IsCorrect = false // zero correct: one violation
	first := Validate(q)
	second := Validate(q)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation not idempotent:\nfirst  %v\nsecond %v", first, second)
	}
	if len(first) == 0 {
		t.Fatal("expected violations")
	}
}

func TestResolveQuestionType(t *testing.T) {
	for _, tag := range []string{
		"FILL_IN_THE_BLANK", "TRANSLATION", "PICTURE_DESCRIPTION",
		"READING_COMPREHENSION", "LISTENING_COMPREHENSION", "SPELLING_CORRECTION",
	} {
		if _, err := ResolveQuestionType(tag); err != nil {
			t.Errorf("ResolveQuestionType(%q) = %v", tag, err)
		}
	}
	for _, tag := range []string{"", "reading_comprehension", "READING", "PASSAGE"} {
		if _, err := ResolveQuestionType(tag); err == nil {
			t.Errorf("ResolveQuestionType(%q) should fail", tag)
		}
	}
}

func TestResolveAssetType(t *testing.T) {
	for _, tag := range []string{"PASSAGE", "AUDIO", "IMAGE"} {
		if _, err := ResolveAssetType(tag); err != nil {
			t.Errorf("ResolveAssetType(%q) = %v", tag, err)
		}
	}
	if _, err := ResolveAssetType("passage"); err == nil {
		t.Error("asset type matching must be case-sensitive")
	}
}

func assertRules(t *testing.T, got []Violation, want []string) {
	t.Helper()
	if want == nil {
		if len(got) != 0 {
			t.Errorf("want no violations, got %v", got)
		}
		return
	}
	if len(got) != len(want) {
		t.Errorf("want rules %v, got %v", want, got)
		return
	}
	for i, rule := range want {
		if got[i].Rule != rule {
			t.Errorf("violation %d: want rule %s, got %s", i, rule, got[i].Rule)
		}
	}
}

func hasRule(vs []Violation, rule string) bool {
	for _, v := range vs {
		if v.Rule == rule {
			return true
		}
	}
	return false
}
