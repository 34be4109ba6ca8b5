package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/mailtmpl"
)

var mailTmplOrderCols = map[string]bool{"slug": true, "subject": true, "created_at": true, "updated_at": true}

type MailTemplateRepository struct {
	db *sqlx.DB
}

var _ mailtmpl.Repository = (*MailTemplateRepository)(nil)

func NewMailTemplateRepository(db *sqlx.DB) *MailTemplateRepository {
	return &MailTemplateRepository{db: db}
}

func (repo *MailTemplateRepository) CreateTemplate(ctx context.Context, tmpl mailtmpl.Template) (mailtmpl.Template, error) {
	tmpl.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO mail_template (id, subject_id, slug, subject, body, is_template, created_at, updated_at)
		VALUES (:id, :subject_id, :slug, :subject, :body, :is_template, :created_at, :updated_at)`,
		tmpl,
	)
	if err != nil {
		return mailtmpl.Template{}, errors.Wrap(err, "inserting mail template")
	}
	return tmpl, nil
}

func (repo *MailTemplateRepository) QueryTemplates(
	ctx context.Context,
	filter mailtmpl.QueryFilter,
	ordering []core.DBOrdering,
) ([]mailtmpl.Template, error) {
	var w where
	if filter.SubjectID != "" {
		w.add("subject_id = ?", filter.SubjectID)
	}
	if filter.Search != "" {
		w.add("(slug ILIKE ? OR subject ILIKE ? OR body ILIKE ?)",
			"%"+filter.Search+"%", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.IsTemplate != nil {
		w.add("is_template = ?", *filter.IsTemplate)
	}

	query := "SELECT * FROM mail_template" + w.clause() + orderBy(mailTmplOrderCols, ordering)
	tmpls := make([]mailtmpl.Template, 0)
	if err := repo.db.SelectContext(ctx, &tmpls, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying mail templates")
	}
	return tmpls, nil
}

func (repo *MailTemplateRepository) GetTemplateByID(ctx context.Context, id string) (mailtmpl.Template, error) {
	var tmpl mailtmpl.Template
	err := repo.db.GetContext(ctx, &tmpl, "SELECT * FROM mail_template WHERE id = $1", id)
	if err != nil {
		return mailtmpl.Template{}, trapNoRowsErr(err, mailtmpl.ErrNotFound, "getting mail template")
	}
	return tmpl, nil
}

func (repo *MailTemplateRepository) UpdateTemplate(ctx context.Context, tmpl mailtmpl.Template) (mailtmpl.Template, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE mail_template
		SET slug = :slug, subject = :subject, body = :body, updated_at = :updated_at
		WHERE id = :id`,
		tmpl,
	)
	if err != nil {
		return mailtmpl.Template{}, errors.Wrap(err, "updating mail template")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mailtmpl.Template{}, mailtmpl.ErrNotFound
	}
	return tmpl, nil
}

func (repo *MailTemplateRepository) DeleteTemplatesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM mail_template WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "building mail template delete")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting mail templates")
	}
	return nil
}
