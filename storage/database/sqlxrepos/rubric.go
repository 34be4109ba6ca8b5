package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/rubric"
)

var (
	peerOrderCols    = map[string]bool{"category": true, "ord": true, "title": true, "created_at": true, "updated_at": true}
	projectOrderCols = map[string]bool{"ord": true, "title": true, "weight": true, "created_at": true, "updated_at": true}
)

type RubricRepository struct {
	db *sqlx.DB
}

var _ rubric.Repository = (*RubricRepository)(nil)

func NewRubricRepository(db *sqlx.DB) *RubricRepository {
	return &RubricRepository{db: db}
}

// Peer-evaluation criteria

func (repo *RubricRepository) CreatePeerCriterion(ctx context.Context, crit rubric.PeerCriterion) (rubric.PeerCriterion, error) {
	crit.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO peer_criterion (id, subject_id, category, ord, title, description, is_template, created_at, updated_at)
		VALUES (:id, :subject_id, :category, :ord, :title, :description, :is_template, :created_at, :updated_at)`,
		crit,
	)
	if err != nil {
		return rubric.PeerCriterion{}, errors.Wrap(err, "inserting peer criterion")
	}
	return crit, nil
}

func (repo *RubricRepository) QueryPeerCriteria(
	ctx context.Context,
	filter rubric.QueryFilter,
	ordering []core.DBOrdering,
) ([]rubric.PeerCriterion, error) {
	w := rubricWhere(filter, true)
	query := "SELECT * FROM peer_criterion" + w.clause() + orderBy(peerOrderCols, ordering)
	crits := make([]rubric.PeerCriterion, 0)
	if err := repo.db.SelectContext(ctx, &crits, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying peer criteria")
	}
	return crits, nil
}

func (repo *RubricRepository) GetPeerCriterionByID(ctx context.Context, id string) (rubric.PeerCriterion, error) {
	var crit rubric.PeerCriterion
	err := repo.db.GetContext(ctx, &crit, "SELECT * FROM peer_criterion WHERE id = $1", id)
	if err != nil {
		return rubric.PeerCriterion{}, trapNoRowsErr(err, rubric.ErrPeerCriterionNotFound, "getting peer criterion")
	}
	return crit, nil
}

func (repo *RubricRepository) UpdatePeerCriterion(ctx context.Context, crit rubric.PeerCriterion) (rubric.PeerCriterion, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE peer_criterion
		SET category = :category, ord = :ord, title = :title, description = :description, updated_at = :updated_at
		WHERE id = :id`,
		crit,
	)
	if err != nil {
		return rubric.PeerCriterion{}, errors.Wrap(err, "updating peer criterion")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return rubric.PeerCriterion{}, rubric.ErrPeerCriterionNotFound
	}
	return crit, nil
}

func (repo *RubricRepository) DeletePeerCriteriaByID(ctx context.Context, ids ...string) error {
	return repo.deleteByID(ctx, "peer_criterion", ids)
}

// Project-rubric criteria

func (repo *RubricRepository) CreateProjectCriterion(ctx context.Context, crit rubric.ProjectCriterion) (rubric.ProjectCriterion, error) {
	crit.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO project_criterion (id, subject_id, ord, title, description, weight, is_template, created_at, updated_at)
		VALUES (:id, :subject_id, :ord, :title, :description, :weight, :is_template, :created_at, :updated_at)`,
		crit,
	)
	if err != nil {
		return rubric.ProjectCriterion{}, errors.Wrap(err, "inserting project criterion")
	}
	return crit, nil
}

func (repo *RubricRepository) QueryProjectCriteria(
	ctx context.Context,
	filter rubric.QueryFilter,
	ordering []core.DBOrdering,
) ([]rubric.ProjectCriterion, error) {
	w := rubricWhere(filter, false)
	query := "SELECT * FROM project_criterion" + w.clause() + orderBy(projectOrderCols, ordering)
	crits := make([]rubric.ProjectCriterion, 0)
	if err := repo.db.SelectContext(ctx, &crits, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying project criteria")
	}
	return crits, nil
}

func (repo *RubricRepository) GetProjectCriterionByID(ctx context.Context, id string) (rubric.ProjectCriterion, error) {
	var crit rubric.ProjectCriterion
	err := repo.db.GetContext(ctx, &crit, "SELECT * FROM project_criterion WHERE id = $1", id)
	if err != nil {
		return rubric.ProjectCriterion{}, trapNoRowsErr(err, rubric.ErrProjectCriterionNotFound, "getting project criterion")
	}
	return crit, nil
}

func (repo *RubricRepository) UpdateProjectCriterion(ctx context.Context, crit rubric.ProjectCriterion) (rubric.ProjectCriterion, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE project_criterion
		SET ord = :ord, title = :title, description = :description, weight = :weight, updated_at = :updated_at
		WHERE id = :id`,
		crit,
	)
	if err != nil {
		return rubric.ProjectCriterion{}, errors.Wrap(err, "updating project criterion")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return rubric.ProjectCriterion{}, rubric.ErrProjectCriterionNotFound
	}
	return crit, nil
}

func (repo *RubricRepository) DeleteProjectCriteriaByID(ctx context.Context, ids ...string) error {
	return repo.deleteByID(ctx, "project_criterion", ids)
}

func (repo *RubricRepository) deleteByID(ctx context.Context, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM "+table+" WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "building "+table+" delete")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting from "+table)
	}
	return nil
}

func rubricWhere(filter rubric.QueryFilter, withCategory bool) where {
	var w where
	if filter.SubjectID != "" {
		w.add("subject_id = ?", filter.SubjectID)
	}
	if filter.Search != "" {
		w.add("(title ILIKE ? OR description ILIKE ?)", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if withCategory && filter.Category != "" {
		w.add("category = ?", filter.Category)
	}
	if filter.IsTemplate != nil {
		w.add("is_template = ?", *filter.IsTemplate)
	}
	return w
}
