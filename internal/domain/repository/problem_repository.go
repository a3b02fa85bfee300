package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tle_zone_assist/internal/common"
	"tle_zone_assist/internal/domain/model"
)

type ProblemRepository interface {
	FindProblemByID(ctx context.Context, id string) (*model.Problem, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

func (r *pgProblemRepository) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	query := `SELECT id, title, description, difficulty, created_at, updated_at
	          FROM problems WHERE id = $1`
	p := &model.Problem{}
	var difficulty string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &difficulty, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.FindProblemByID: %w", err)
	}
	p.Difficulty = model.ProblemDifficulty(difficulty)
	return p, nil
}
