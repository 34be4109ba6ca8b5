package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/remark"
)

var remarkOrderCols = map[string]bool{"slug": true, "created_at": true, "updated_at": true}

type RemarkRepository struct {
	db *sqlx.DB
}

var _ remark.Repository = (*RemarkRepository)(nil)

func NewRemarkRepository(db *sqlx.DB) *RemarkRepository {
	return &RemarkRepository{db: db}
}

func (repo *RemarkRepository) CreateRemark(ctx context.Context, rem remark.Remark) (remark.Remark, error) {
	rem.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO remark (id, subject_id, slug, text, is_template, created_at, updated_at)
		VALUES (:id, :subject_id, :slug, :text, :is_template, :created_at, :updated_at)`,
		rem,
	)
	if err != nil {
		return remark.Remark{}, errors.Wrap(err, "inserting remark")
	}
	return rem, nil
}

func (repo *RemarkRepository) QueryRemarks(
	ctx context.Context,
	filter remark.QueryFilter,
	ordering []core.DBOrdering,
) ([]remark.Remark, error) {
	var w where
	if filter.SubjectID != "" {
		w.add("subject_id = ?", filter.SubjectID)
	}
	if filter.Search != "" {
		w.add("(slug ILIKE ? OR text ILIKE ?)", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.IsTemplate != nil {
		w.add("is_template = ?", *filter.IsTemplate)
	}

	query := "SELECT * FROM remark" + w.clause() + orderBy(remarkOrderCols, ordering)
	rems := make([]remark.Remark, 0)
	if err := repo.db.SelectContext(ctx, &rems, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying remarks")
	}
	return rems, nil
}

func (repo *RemarkRepository) GetRemarkByID(ctx context.Context, id string) (remark.Remark, error) {
	var rem remark.Remark
	err := repo.db.GetContext(ctx, &rem, "SELECT * FROM remark WHERE id = $1", id)
	if err != nil {
		return remark.Remark{}, trapNoRowsErr(err, remark.ErrNotFound, "getting remark")
	}
	return rem, nil
}

func (repo *RemarkRepository) UpdateRemark(ctx context.Context, rem remark.Remark) (remark.Remark, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE remark
		SET slug = :slug, text = :text, updated_at = :updated_at
		WHERE id = :id`,
		rem,
	)
	if err != nil {
		return remark.Remark{}, errors.Wrap(err, "updating remark")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return remark.Remark{}, remark.ErrNotFound
	}
	return rem, nil
}

func (repo *RemarkRepository) DeleteRemarksByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM remark WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "building remark delete")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting remarks")
	}
	return nil
}
