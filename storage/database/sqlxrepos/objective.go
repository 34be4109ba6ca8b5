package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/objective"
)

var objectiveOrderCols = map[string]bool{
	"domain": true, "ord": true, "title": true, "phase": true, "created_at": true, "updated_at": true,
}

type ObjectiveRepository struct {
	db *sqlx.DB
}

var _ objective.Repository = (*ObjectiveRepository)(nil)

func NewObjectiveRepository(db *sqlx.DB) *ObjectiveRepository {
	return &ObjectiveRepository{db: db}
}

func (repo *ObjectiveRepository) CreateObjective(ctx context.Context, obj objective.Objective) (objective.Objective, error) {
	obj.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO objective (id, subject_id, domain, ord, title, description, phase, is_template, created_at, updated_at)
		VALUES (:id, :subject_id, :domain, :ord, :title, :description, :phase, :is_template, :created_at, :updated_at)`,
		obj,
	)
	if err != nil {
		return objective.Objective{}, errors.Wrap(err, "inserting objective")
	}
	return obj, nil
}

func (repo *ObjectiveRepository) QueryObjectives(
	ctx context.Context,
	filter objective.QueryFilter,
	ordering []core.DBOrdering,
) ([]objective.Objective, error) {
	var w where
	if filter.SubjectID != "" {
		w.add("subject_id = ?", filter.SubjectID)
	}
	if filter.Search != "" {
		w.add("(title ILIKE ? OR description ILIKE ?)", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.Domain != "" {
		w.add("domain = ?", filter.Domain)
	}
	if filter.Phase != "" {
		w.add("phase = ?", filter.Phase)
	}
	if filter.IsTemplate != nil {
		w.add("is_template = ?", *filter.IsTemplate)
	}

	query := "SELECT * FROM objective" + w.clause() + orderBy(objectiveOrderCols, ordering)
	objs := make([]objective.Objective, 0)
	if err := repo.db.SelectContext(ctx, &objs, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying objectives")
	}
	return objs, nil
}

func (repo *ObjectiveRepository) GetObjectiveByID(ctx context.Context, id string) (objective.Objective, error) {
	var obj objective.Objective
	err := repo.db.GetContext(ctx, &obj, "SELECT * FROM objective WHERE id = $1", id)
	if err != nil {
		return objective.Objective{}, trapNoRowsErr(err, objective.ErrNotFound, "getting objective by id")
	}
	return obj, nil
}

func (repo *ObjectiveRepository) GetObjectiveByTitle(
	ctx context.Context,
	subjectID, title string,
	isTemplate bool,
) (objective.Objective, error) {
	var obj objective.Objective
	err := repo.db.GetContext(ctx, &obj, `
		SELECT * FROM objective
		WHERE subject_id = $1 AND lower(title) = lower($2) AND is_template = $3
		LIMIT 1`,
		subjectID, title, isTemplate,
	)
	if err != nil {
		return objective.Objective{}, trapNoRowsErr(err, objective.ErrNotFound, "getting objective by title")
	}
	return obj, nil
}

func (repo *ObjectiveRepository) UpdateObjective(ctx context.Context, obj objective.Objective) (objective.Objective, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE objective
		SET domain = :domain, ord = :ord, title = :title, description = :description,
		    phase = :phase, updated_at = :updated_at
		WHERE id = :id`,
		obj,
	)
	if err != nil {
		return objective.Objective{}, errors.Wrap(err, "updating objective")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return objective.Objective{}, objective.ErrNotFound
	}
	return obj, nil
}

func (repo *ObjectiveRepository) DeleteObjectivesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM objective WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "building objective delete")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting objectives")
	}
	return nil
}
