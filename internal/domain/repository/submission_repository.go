package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tle_zone_assist/internal/common"
	"tle_zone_assist/internal/domain/model"
)

// SubmissionRepository is a read-only view over the submission store.
// Submissions are written by the judge, never by this service.
type SubmissionRepository interface {
	GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error)
	GetLatestForUserProblem(ctx context.Context, userID, problemID string) (*model.Submission, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

const submissionColumns = `id, user_id, problem_id, language, source_code, status, created_at, updated_at`

func scanSubmission(row *sql.Row) (*model.Submission, error) {
	s := &model.Submission{}
	var lang, status string
	if err := row.Scan(&s.ID, &s.UserID, &s.ProblemID, &lang, &s.SourceCode, &status, &s.SubmittedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Language = model.Language(lang)
	s.Status = model.SubmissionStatus(status)
	return s, nil
}

func (r *pgSubmissionRepository) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	s, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.GetSubmissionByID: %w", err)
	}
	return s, nil
}

func (r *pgSubmissionRepository) GetLatestForUserProblem(ctx context.Context, userID, problemID string) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
	          WHERE user_id = $1 AND problem_id = $2
	          ORDER BY created_at DESC
	          LIMIT 1`
	s, err := scanSubmission(r.db.QueryRowContext(ctx, query, userID, problemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.GetLatestForUserProblem: %w", err)
	}
	return s, nil
}
