package domain

import (
	"fmt"
	"time"
)

// QuestionType discriminates the closed set of question variants. Resolution
// is by exact, case-sensitive string match.
type QuestionType string

const (
	TypeFillInTheBlank         QuestionType = "FILL_IN_THE_BLANK"
	TypeTranslation            QuestionType = "TRANSLATION"
	TypePictureDescription     QuestionType = "PICTURE_DESCRIPTION"
	TypeReadingComprehension   QuestionType = "READING_COMPREHENSION"
	TypeListeningComprehension QuestionType = "LISTENING_COMPREHENSION"
	TypeSpellingCorrection     QuestionType = "SPELLING_CORRECTION"
)

// ResolveQuestionType maps a raw tag to a member of the question family.
func ResolveQuestionType(tag string) (QuestionType, error) {
	switch qt := QuestionType(tag); qt {
	case TypeFillInTheBlank, TypeTranslation, TypePictureDescription,
		TypeReadingComprehension, TypeListeningComprehension, TypeSpellingCorrection:
		return qt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownQuestionType, tag)
}

// AnswerInputType selects how a FillInTheBlank question is answered.
type AnswerInputType string

const (
	InputMultipleChoice AnswerInputType = "MULTIPLE_CHOICE"
	InputTextInput      AnswerInputType = "TEXT_INPUT"
)

// QuestionBase carries the fields shared by every question variant.
type QuestionBase struct {
	QuestionType       QuestionType     `json:"questionType"`
	Difficulty         DifficultyDetail `json:"difficulty"`
	LearningObjectives []string         `json:"learningObjectives"`
	QuestionText       *string          `json:"questionText,omitempty"`
	Explanation        *LocalizedString `json:"explanation,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// Base returns the embedded common fields.
func (b *QuestionBase) Base() *QuestionBase { return b }

// AnyQuestion is the discriminated union over all question variants. The
// unexported marker keeps the set closed.
type AnyQuestion interface {
	Base() *QuestionBase
	Type() QuestionType
	isQuestion()
}

// FillInTheBlankQuestion asks the learner to complete a sentence, either by
// picking a choice or by typing the answer.
type FillInTheBlankQuestion struct {
	QuestionBase
	AnswerInputType   AnswerInputType `json:"answerInputType"`
	Choices           []ChoiceDetail  `json:"choices,omitempty"`
	AcceptableAnswers []string        `json:"acceptableAnswers,omitempty"`
}

func (q *FillInTheBlankQuestion) Type() QuestionType { return TypeFillInTheBlank }
func (q *FillInTheBlankQuestion) isQuestion()        {}

// TranslationQuestion asks the learner to translate sourceText into the
// target language.
type TranslationQuestion struct {
	QuestionBase
	SourceText             LocalizedString `json:"sourceText"`
	TargetLanguage         string          `json:"targetLanguage"` // "en" or "zh_tw"
	AcceptableTranslations []string        `json:"acceptableTranslations"`
}

func (q *TranslationQuestion) Type() QuestionType { return TypeTranslation }
func (q *TranslationQuestion) isQuestion()        {}

// PictureDescriptionQuestion asks the learner to describe an image asset.
// Evaluation is manual or keyword-assisted, so there is no answer key.
type PictureDescriptionQuestion struct {
	QuestionBase
	ImageAssetID      string   `json:"imageAssetId"`
	SuggestedKeywords []string `json:"suggestedKeywords,omitempty"`
}

func (q *PictureDescriptionQuestion) Type() QuestionType { return TypePictureDescription }
func (q *PictureDescriptionQuestion) isQuestion()        {}

// ReadingComprehensionQuestion is tied to a passage asset.
type ReadingComprehensionQuestion struct {
	QuestionBase
	ContentAssetID    string         `json:"contentAssetId"`
	Choices           []ChoiceDetail `json:"choices,omitempty"`
	AcceptableAnswers []string       `json:"acceptableAnswers,omitempty"`
}

func (q *ReadingComprehensionQuestion) Type() QuestionType { return TypeReadingComprehension }
func (q *ReadingComprehensionQuestion) isQuestion()        {}

// ListeningComprehensionQuestion is tied to an audio asset.
type ListeningComprehensionQuestion struct {
	QuestionBase
	ContentAssetID    string         `json:"contentAssetId"`
	Choices           []ChoiceDetail `json:"choices,omitempty"`
	AcceptableAnswers []string       `json:"acceptableAnswers,omitempty"`
}

func (q *ListeningComprehensionQuestion) Type() QuestionType { return TypeListeningComprehension }
func (q *ListeningComprehensionQuestion) isQuestion()        {}

// SpellingCorrectionQuestion comes in two mutually exclusive modes: pick the
// correctly spelled word from wordChoices, or find and fix the misspelled
// word in a sentence.
type SpellingCorrectionQuestion struct {
	QuestionBase
	WordChoices                []string `json:"wordChoices,omitempty"`
	CorrectWord                *string  `json:"correctWord,omitempty"`
	SentenceWithMisspelledWord *string  `json:"sentenceWithMisspelledWord,omitempty"`
	MisspelledWordInSentence   *string  `json:"misspelledWordInSentence,omitempty"`
}

func (q *SpellingCorrectionQuestion) Type() QuestionType { return TypeSpellingCorrection }
func (q *SpellingCorrectionQuestion) isQuestion()        {}

// ContentRef returns the asset ID a question points at, or "" for variants
// that stand alone.
func ContentRef(q AnyQuestion) string {
	switch v := q.(type) {
	case *ReadingComprehensionQuestion:
		return v.ContentAssetID
	case *ListeningComprehensionQuestion:
		return v.ContentAssetID
	case *PictureDescriptionQuestion:
		return v.ImageAssetID
	}
	return ""
}
