package prompt

import "github.com/lexforge/lexforge/internal/domain"

// GradeLadder is the Taiwanese school ladder callers pick a target level
// from: six elementary grades, three junior high, three senior high, plus
// the two national exams (會考 after junior high, 學測 after senior high).
var GradeLadder = []domain.DifficultyDetail{
	{Stage: domain.StageElementary, Grade: 1, Level: 1, Name: domain.LocalizedString{EN: "Elementary School - Grade 1", ZhTW: "國小一年級"}},
	{Stage: domain.StageElementary, Grade: 2, Level: 1, Name: domain.LocalizedString{EN: "Elementary School - Grade 2", ZhTW: "國小二年級"}},
	{Stage: domain.StageElementary, Grade: 3, Level: 2, Name: domain.LocalizedString{EN: "Elementary School - Grade 3", ZhTW: "國小三年級"}},
	{Stage: domain.StageElementary, Grade: 4, Level: 2, Name: domain.LocalizedString{EN: "Elementary School - Grade 4", ZhTW: "國小四年級"}},
	{Stage: domain.StageElementary, Grade: 5, Level: 3, Name: domain.LocalizedString{EN: "Elementary School - Grade 5", ZhTW: "國小五年級"}},
	{Stage: domain.StageElementary, Grade: 6, Level: 3, Name: domain.LocalizedString{EN: "Elementary School - Grade 6", ZhTW: "國小六年級"}},
	{Stage: domain.StageJuniorHigh, Grade: 1, Level: 4, Name: domain.LocalizedString{EN: "Junior High School - Grade 1", ZhTW: "國中一年級"}},
	{Stage: domain.StageJuniorHigh, Grade: 2, Level: 5, Name: domain.LocalizedString{EN: "Junior High School - Grade 2", ZhTW: "國中二年級"}},
	{Stage: domain.StageJuniorHigh, Grade: 3, Level: 6, Name: domain.LocalizedString{EN: "Junior High School - Grade 3", ZhTW: "國中三年級"}},
	{Stage: domain.StageSeniorHigh, Grade: 1, Level: 7, Name: domain.LocalizedString{EN: "Senior High School - Grade 1", ZhTW: "高中一年級"}},
	{Stage: domain.StageSeniorHigh, Grade: 2, Level: 8, Name: domain.LocalizedString{EN: "Senior High School - Grade 2", ZhTW: "高中二年級"}},
	{Stage: domain.StageSeniorHigh, Grade: 3, Level: 9, Name: domain.LocalizedString{EN: "Senior High School - Grade 3", ZhTW: "高中三年級"}},
	{Stage: domain.StageJuniorHigh, Grade: 3, Level: 7, Name: domain.LocalizedString{EN: "Comprehensive Assessment Program (CAP)", ZhTW: "會考"}},
	{Stage: domain.StageSeniorHigh, Grade: 3, Level: 10, Name: domain.LocalizedString{EN: "General Scholastic Ability Test (GSAT)", ZhTW: "學測"}},
}

// LevelByName looks up a ladder entry by its English or Chinese name.
func LevelByName(name string) (domain.DifficultyDetail, bool) {
	for _, d := range GradeLadder {
		if d.Name.EN == name || d.Name.ZhTW == name {
			return d, true
		}
	}
	return domain.DifficultyDetail{}, false
}

// DefaultLevel is used when the caller picks no target level.
func DefaultLevel() domain.DifficultyDetail {
	return GradeLadder[9] // Senior High - Grade 1
}
