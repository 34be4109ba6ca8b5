package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core/overview"
)

type ScoreRepository struct {
	db *sqlx.DB
}

var _ overview.Repository = (*ScoreRepository)(nil)

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (repo *ScoreRepository) CreateScore(ctx context.Context, s overview.Score) (overview.Score, error) {
	s.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO score (id, subject_id, student, kind, category, project_id, value, recorded_at)
		VALUES (:id, :subject_id, :student, :kind, :category, :project_id, :value, :recorded_at)`,
		s,
	)
	if err != nil {
		return overview.Score{}, errors.Wrap(err, "inserting score")
	}
	return s, nil
}

func (repo *ScoreRepository) QueryScores(ctx context.Context, subjectID, kind string) ([]overview.Score, error) {
	var w where
	w.add("subject_id = ?", subjectID)
	if kind != "" {
		w.add("kind = ?", kind)
	}

	query := "SELECT * FROM score" + w.clause() + " ORDER BY recorded_at ASC"
	scores := make([]overview.Score, 0)
	if err := repo.db.SelectContext(ctx, &scores, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying scores")
	}
	return scores, nil
}
