package model

import "time"

type SubmissionStatus string

const (
	StatusAccepted            SubmissionStatus = "Accepted"
	StatusWrongAnswer         SubmissionStatus = "Wrong Answer"
	StatusTimeLimitExceeded   SubmissionStatus = "Time Limit Exceeded"
	StatusMemoryLimitExceeded SubmissionStatus = "Memory Limit Exceeded"
	StatusCompilationError    SubmissionStatus = "Compilation Error"
	StatusRuntimeError        SubmissionStatus = "Runtime Error"
)

type Submission struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	ProblemID   string           `json:"problem_id"`
	Language    Language         `json:"language"`
	SourceCode  string           `json:"source_code,omitempty"`
	Status      SubmissionStatus `json:"status"`
	SubmittedAt time.Time        `json:"submitted_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (s *Submission) Accepted() bool {
	return s != nil && s.Status == StatusAccepted
}
