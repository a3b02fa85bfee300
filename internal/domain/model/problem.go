package model

import (
	"time"
)

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "EASY"
	DifficultyMedium ProblemDifficulty = "MEDIUM"
	DifficultyHard   ProblemDifficulty = "HARD"
)

// Problem is the read-only slice of problem metadata the review prompt needs.
type Problem struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Difficulty  ProblemDifficulty `json:"difficulty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
