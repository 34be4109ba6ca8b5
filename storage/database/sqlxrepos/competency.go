package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/competency"
)

var competencyOrderCols = map[string]bool{"ord": true, "title": true, "created_at": true, "updated_at": true}

type CompetencyRepository struct {
	db *sqlx.DB
}

var _ competency.Repository = (*CompetencyRepository)(nil)

func NewCompetencyRepository(db *sqlx.DB) *CompetencyRepository {
	return &CompetencyRepository{db: db}
}

func (repo *CompetencyRepository) CreateCompetency(ctx context.Context, comp competency.Competency) (competency.Competency, error) {
	comp.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO competency (id, subject_id, ord, title, description, is_template, created_at, updated_at)
		VALUES (:id, :subject_id, :ord, :title, :description, :is_template, :created_at, :updated_at)`,
		comp,
	)
	if err != nil {
		return competency.Competency{}, errors.Wrap(err, "inserting competency")
	}
	return comp, nil
}

func (repo *CompetencyRepository) QueryCompetencies(
	ctx context.Context,
	filter competency.QueryFilter,
	ordering []core.DBOrdering,
) ([]competency.Competency, error) {
	var w where
	if filter.SubjectID != "" {
		w.add("subject_id = ?", filter.SubjectID)
	}
	if filter.Search != "" {
		w.add("(title ILIKE ? OR description ILIKE ?)", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.IsTemplate != nil {
		w.add("is_template = ?", *filter.IsTemplate)
	}

	query := "SELECT * FROM competency" + w.clause() + orderBy(competencyOrderCols, ordering)
	comps := make([]competency.Competency, 0)
	if err := repo.db.SelectContext(ctx, &comps, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying competencies")
	}
	return comps, nil
}

func (repo *CompetencyRepository) GetCompetencyByID(ctx context.Context, id string) (competency.Competency, error) {
	var comp competency.Competency
	err := repo.db.GetContext(ctx, &comp, "SELECT * FROM competency WHERE id = $1", id)
	if err != nil {
		return competency.Competency{}, trapNoRowsErr(err, competency.ErrNotFound, "getting competency")
	}
	return comp, nil
}

func (repo *CompetencyRepository) UpdateCompetency(ctx context.Context, comp competency.Competency) (competency.Competency, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE competency
		SET ord = :ord, title = :title, description = :description, updated_at = :updated_at
		WHERE id = :id`,
		comp,
	)
	if err != nil {
		return competency.Competency{}, errors.Wrap(err, "updating competency")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return competency.Competency{}, competency.ErrNotFound
	}
	return comp, nil
}

func (repo *CompetencyRepository) DeleteCompetenciesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM competency WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "building competency delete")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting competencies")
	}
	return nil
}
