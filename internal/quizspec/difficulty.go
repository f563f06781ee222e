package quizspec

import "strings"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func NormalizeDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "beginner", "basic":
		return DifficultyEasy
	case "hard", "advanced", "difficult":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

func (d Difficulty) descriptor() string {
	switch d {
	case DifficultyEasy:
		return "easy: basic concepts and direct definitions"
	case DifficultyHard:
		return "hard: analysis, deduction and connecting several ideas"
	default:
		return "medium: applying and interpreting concepts"
	}
}
