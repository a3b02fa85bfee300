package model

import "time"

// AssistanceRequest is the body of POST /ai/completions.
type AssistanceRequest struct {
	Code     string   `json:"code"`
	Language Language `json:"language"`
}

// CompletionResponse carries either a completion or, when Success is false,
// a message explaining why none was produced.
type CompletionResponse struct {
	Success    bool   `json:"success"`
	Completion string `json:"completion,omitempty"`
	Message    string `json:"message,omitempty"`
}

// ReviewRequest is the body of POST /ai/review.
type ReviewRequest struct {
	Code         string   `json:"code"`
	Language     Language `json:"language"`
	SubmissionID string   `json:"submissionId"`
}

type ReviewResponse struct {
	Success  bool   `json:"success"`
	Review   string `json:"review,omitempty"`
	ReviewID string `json:"reviewId,omitempty"`
	Message  string `json:"message,omitempty"`
}

// CodeReview is a persisted AI review of an accepted submission.
type CodeReview struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	SubmissionID string    `json:"submission_id"`
	Language     Language  `json:"language"`
	Review       string    `json:"review"`
	CreatedAt    time.Time `json:"created_at"`
}
