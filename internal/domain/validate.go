package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Violation is one failed cross-field invariant. Violations are values, not
// errors: a validator collects every violation for an entity so a caller can
// report everything wrong in one pass.
type Violation struct {
	Rule    string `json:"rule"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s (%s): %s", v.Rule, v.Field, v.Message)
}

// Validate runs the variant's invariant rule set over an already-constructed
// entity. It is a pure function: no I/O, no mutation, deterministic for the
// same input. A nil result means the entity is structurally sound.
func Validate(entity any) []Violation {
	switch e := entity.(type) {
	case AnyQuestion:
		return ValidateQuestion(e)
	case AnyAsset:
		return ValidateAsset(e)
	case *GeneratedReadingMaterial:
		return validateMaterial(e)
	}
	return []Violation{{
		Rule:    "entity.kind",
		Field:   "",
		Message: fmt.Sprintf("value of type %T is not a question, asset, or reading material", entity),
	}}
}

// ValidateQuestion checks the invariants of one question variant.
func ValidateQuestion(q AnyQuestion) []Violation {
	var vs []Violation
	vs = append(vs, checkDifficulty(q.Base().Difficulty)...)

	switch v := q.(type) {
	case *FillInTheBlankQuestion:
		vs = append(vs, checkFillInTheBlank(v)...)
	case *TranslationQuestion:
		vs = append(vs, checkTranslation(v)...)
	case *PictureDescriptionQuestion:
		if v.ImageAssetID == "" {
			vs = append(vs, violation("imageAssetId.required", "imageAssetId", "image asset reference is required"))
		}
	case *ReadingComprehensionQuestion:
		if v.ContentAssetID == "" {
			vs = append(vs, violation("contentAssetId.required", "contentAssetId", "content asset reference is required"))
		}
		vs = append(vs, checkAnswerModes(v.Choices, v.AcceptableAnswers)...)
	case *ListeningComprehensionQuestion:
		if v.ContentAssetID == "" {
			vs = append(vs, violation("contentAssetId.required", "contentAssetId", "content asset reference is required"))
		}
		vs = append(vs, checkAnswerModes(v.Choices, v.AcceptableAnswers)...)
	case *SpellingCorrectionQuestion:
		vs = append(vs, checkSpellingCorrection(v)...)
	}
	return vs
}

// ValidateAsset checks the invariants of one asset variant.
func ValidateAsset(a AnyAsset) []Violation {
	var vs []Violation
	base := a.Base()

	if base.AssetID == "" {
		vs = append(vs, violation("assetId.required", "assetId", "asset ID is required"))
	}
	if !KnownStatus(base.Status) {
		vs = append(vs, violation("status.enum", "status",
			fmt.Sprintf("status %q is not DRAFT, PUBLISHED, or ARCHIVED", base.Status)))
	}
	if base.Version < 1 {
		vs = append(vs, violation("version.min", "version",
			fmt.Sprintf("version must be >= 1, got %d", base.Version)))
	}
	vs = append(vs, checkDifficulty(base.Difficulty)...)

	switch v := a.(type) {
	case *PassageAsset:
		if strings.TrimSpace(v.Content) == "" {
			vs = append(vs, violation("content.required", "content", "passage content must not be empty"))
		}
	case *AudioAsset:
		if v.AudioURL == "" {
			vs = append(vs, violation("audioUrl.required", "audioUrl", "audio URL is required"))
		}
		if v.DurationSeconds <= 0 {
			vs = append(vs, violation("durationSeconds.positive", "durationSeconds",
				fmt.Sprintf("duration must be > 0 seconds, got %v", v.DurationSeconds)))
		}
	case *ImageAsset:
		if v.ImageURL == "" {
			vs = append(vs, violation("imageUrl.required", "imageUrl", "image URL is required"))
		}
	}
	return vs
}

func validateMaterial(m *GeneratedReadingMaterial) []Violation {
	vs := ValidateAsset(&m.PassageAsset)
	for i, q := range m.Questions {
		for _, v := range ValidateQuestion(q) {
			v.Field = fmt.Sprintf("questions_list[%d].%s", i, v.Field)
			vs = append(vs, v)
		}
		// Every question in the aggregate must reference its own passage.
		if ref := ContentRef(q); ref != "" && ref != m.PassageAsset.AssetID {
			vs = append(vs, violation("contentAssetId.match",
				fmt.Sprintf("questions_list[%d].contentAssetId", i),
				fmt.Sprintf("contentAssetId %q does not match passage %q", ref, m.PassageAsset.AssetID)))
		}
	}
	return vs
}

func checkDifficulty(d DifficultyDetail) []Violation {
	var vs []Violation
	if !KnownStage(d.Stage) {
		vs = append(vs, violation("difficulty.stage.enum", "difficulty.stage",
			fmt.Sprintf("stage %q is not ELEMENTARY, JUNIOR_HIGH, or SENIOR_HIGH", d.Stage)))
	}
	if d.Grade < 1 {
		vs = append(vs, violation("difficulty.grade.min", "difficulty.grade",
			fmt.Sprintf("grade must be >= 1, got %d", d.Grade)))
	}
	if d.Level < 1 || d.Level > 10 {
		vs = append(vs, violation("difficulty.level.range", "difficulty.level",
			fmt.Sprintf("level must be in [1,10], got %d", d.Level)))
	}
	return vs
}

// checkAnswerModes enforces the choices / acceptableAnswers exclusivity shared
// by the comprehension variants: exactly one mode set, non-empty, and for
// choices exactly one correct entry.
func checkAnswerModes(choices []ChoiceDetail, answers []string) []Violation {
	var vs []Violation
	hasChoices := len(choices) > 0
	hasAnswers := len(answers) > 0

	switch {
	case hasChoices && hasAnswers:
		vs = append(vs, violation("answers.exclusive", "choices",
			"choices and acceptableAnswers cannot both be provided"))
	case !hasChoices && !hasAnswers:
		vs = append(vs, violation("answers.required", "choices",
			"either choices or acceptableAnswers must be provided"))
	}

	if hasChoices {
		vs = append(vs, checkChoices(choices)...)
	}
	if hasAnswers {
		vs = append(vs, checkStringList(answers, "acceptableAnswers")...)
	}
	return vs
}

// checkChoices requires non-empty choice text and exactly one isCorrect=true.
func checkChoices(choices []ChoiceDetail) []Violation {
	var vs []Violation
	correct := 0
	for i, c := range choices {
		if c.IsCorrect {
			correct++
		}
		if strings.TrimSpace(c.Text) == "" {
			vs = append(vs, violation("choices.text.required",
				fmt.Sprintf("choices[%d].text", i), "choice text must not be empty"))
		}
	}
	if correct != 1 {
		vs = append(vs, violation("choices.one_correct", "choices",
			fmt.Sprintf("exactly one choice must be correct, got %d", correct)))
	}
	return vs
}

func checkStringList(list []string, field string) []Violation {
	var vs []Violation
	for i, s := range list {
		if strings.TrimSpace(s) == "" {
			vs = append(vs, violation(field+".entry.required",
				fmt.Sprintf("%s[%d]", field, i), "list entries must not be empty"))
		}
	}
	return vs
}

func checkFillInTheBlank(q *FillInTheBlankQuestion) []Violation {
	var vs []Violation

	if q.QuestionText == nil || strings.TrimSpace(*q.QuestionText) == "" {
		vs = append(vs, violation("questionText.required", "questionText",
			"fill-in-the-blank questions need the sentence containing the blank"))
	}

	hasChoices := len(q.Choices) > 0
	hasAnswers := len(q.AcceptableAnswers) > 0

	switch q.AnswerInputType {
	case InputMultipleChoice:
		if !hasChoices {
			vs = append(vs, violation("choices.required", "choices",
				"answerInputType MULTIPLE_CHOICE requires a non-empty choices list"))
		}
		if hasAnswers {
			vs = append(vs, violation("answers.exclusive", "acceptableAnswers",
				"acceptableAnswers must not be set when answerInputType is MULTIPLE_CHOICE"))
		}
	case InputTextInput:
		if !hasAnswers {
			vs = append(vs, violation("acceptableAnswers.required", "acceptableAnswers",
				"answerInputType TEXT_INPUT requires a non-empty acceptableAnswers list"))
		}
		if hasChoices {
			vs = append(vs, violation("answers.exclusive", "choices",
				"choices must not be set when answerInputType is TEXT_INPUT"))
		}
	default:
		vs = append(vs, violation("answerInputType.enum", "answerInputType",
			fmt.Sprintf("answerInputType %q is not MULTIPLE_CHOICE or TEXT_INPUT", q.AnswerInputType)))
		// Both-or-neither is still a violation even when the mode tag is bad.
		if hasChoices && hasAnswers {
			vs = append(vs, violation("answers.exclusive", "choices",
				"choices and acceptableAnswers cannot both be provided"))
		}
	}

	if hasChoices {
		vs = append(vs, checkChoices(q.Choices)...)
	}
	if hasAnswers {
		vs = append(vs, checkStringList(q.AcceptableAnswers, "acceptableAnswers")...)
	}
	return vs
}

func checkTranslation(q *TranslationQuestion) []Violation {
	var vs []Violation
	if q.TargetLanguage != "en" && q.TargetLanguage != "zh_tw" {
		vs = append(vs, violation("targetLanguage.enum", "targetLanguage",
			fmt.Sprintf("target language %q is not en or zh_tw", q.TargetLanguage)))
	}
	if len(q.AcceptableTranslations) == 0 {
		vs = append(vs, violation("acceptableTranslations.required", "acceptableTranslations",
			"at least one acceptable translation is required"))
	}
	vs = append(vs, checkStringList(q.AcceptableTranslations, "acceptableTranslations")...)
	return vs
}

func checkSpellingCorrection(q *SpellingCorrectionQuestion) []Violation {
	var vs []Violation
	wordMode := len(q.WordChoices) > 0
	sentenceMode := q.SentenceWithMisspelledWord != nil && strings.TrimSpace(*q.SentenceWithMisspelledWord) != ""

	switch {
	case wordMode && sentenceMode:
		vs = append(vs, violation("modes.exclusive", "wordChoices",
			"wordChoices and sentenceWithMisspelledWord cannot both be provided"))
	case !wordMode && !sentenceMode:
		vs = append(vs, violation("modes.required", "wordChoices",
			"either wordChoices or sentenceWithMisspelledWord must be provided"))
	}

	if wordMode {
		vs = append(vs, checkStringList(q.WordChoices, "wordChoices")...)
		if q.CorrectWord == nil || *q.CorrectWord == "" {
			vs = append(vs, violation("correctWord.required", "correctWord",
				"correctWord is required when wordChoices is provided"))
		} else if !slices.Contains(q.WordChoices, *q.CorrectWord) {
			vs = append(vs, violation("correctWord.membership", "correctWord",
				fmt.Sprintf("correctWord %q must be one of the wordChoices", *q.CorrectWord)))
		}
	}

	if sentenceMode {
		if q.MisspelledWordInSentence == nil || *q.MisspelledWordInSentence == "" {
			vs = append(vs, violation("misspelledWord.required", "misspelledWordInSentence",
				"misspelledWordInSentence is required when sentenceWithMisspelledWord is provided"))
		}
		if q.CorrectWord == nil || *q.CorrectWord == "" {
			vs = append(vs, violation("correctWord.required", "correctWord",
				"correctWord is required when sentenceWithMisspelledWord is provided"))
		}
	}
	return vs
}

func violation(rule, field, message string) Violation {
	return Violation{Rule: rule, Field: field, Message: message}
}
