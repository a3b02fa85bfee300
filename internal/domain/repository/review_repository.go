package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tle_zone_assist/internal/common"
	"tle_zone_assist/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *model.CodeReview) error
}

type pgReviewRepository struct {
	db *sql.DB
}

func NewPgReviewRepository(db *sql.DB) ReviewRepository {
	return &pgReviewRepository{db: db}
}

func (r *pgReviewRepository) CreateReview(ctx context.Context, rv *model.CodeReview) error {
	query := `INSERT INTO ai_reviews (id, user_id, submission_id, language, review)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, rv.ID, rv.UserID, rv.SubmissionID, string(rv.Language), rv.Review).Scan(&rv.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // Unique violation on id
				return fmt.Errorf("review %s already exists: %w", rv.ID, common.ErrConflict)
			case "23503": // Foreign key violation
				return fmt.Errorf("review references unknown submission %s: %w", rv.SubmissionID, common.ErrNotFound)
			}
		}
		return fmt.Errorf("pgReviewRepository.CreateReview: %w", err)
	}
	return nil
}
