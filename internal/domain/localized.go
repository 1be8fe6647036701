package domain

import "time"

// LocalizedString pairs the English and Traditional Chinese renderings of a
// piece of text. Both fields are always serialized; an empty string means
// "no translation yet", never "absent".
type LocalizedString struct {
	EN   string `json:"en"`
	ZhTW string `json:"zh_tw"`
}

// Stage is the educational stage a difficulty belongs to.
type Stage string

const (
	StageElementary Stage = "ELEMENTARY"
	StageJuniorHigh Stage = "JUNIOR_HIGH"
	StageSeniorHigh Stage = "SENIOR_HIGH"
)

// KnownStage reports whether s is a member of the stage enumeration.
func KnownStage(s Stage) bool {
	switch s {
	case StageElementary, StageJuniorHigh, StageSeniorHigh:
		return true
	}
	return false
}

// DifficultyDetail describes how hard a question or asset is. It is owned by
// whichever entity embeds it: always copied, never shared.
type DifficultyDetail struct {
	Stage Stage           `json:"stage"`
	Grade int             `json:"grade"` // grade within the stage, >= 1
	Level int             `json:"level"` // overall 1-10 scale
	Name  LocalizedString `json:"name"`
}

// ChoiceDetail is a single answer option in a multiple-choice question.
type ChoiceDetail struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Timestamp returns the current UTC time truncated to whole seconds, the
// granularity entities are stored and serialized with.
func Timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
