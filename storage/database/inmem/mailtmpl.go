package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/mailtmpl"
)

type mailTemplateRepository struct {
	db *mailTemplateTable
}

var _ mailtmpl.Repository = (*mailTemplateRepository)(nil) // interface compliance check

func NewMailTemplateRepository(db *DB) mailtmpl.Repository {
	return &mailTemplateRepository{db: db.mailTemplate}
}

func (repo *mailTemplateRepository) CreateTemplate(_ context.Context, tmpl mailtmpl.Template) (mailtmpl.Template, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tmpl.ID = uuid.New().String()
	repo.db.table[tmpl.ID] = &tmpl
	return tmpl, nil
}

func (repo *mailTemplateRepository) QueryTemplates(
	_ context.Context,
	filter mailtmpl.QueryFilter,
	_ []core.DBOrdering,
) ([]mailtmpl.Template, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tmpls := make([]mailtmpl.Template, 0, len(repo.db.table))
	for _, tmpl := range repo.db.table {
		if filter.SubjectID != "" && tmpl.SubjectID != filter.SubjectID {
			continue
		}
		if filter.IsTemplate != nil && tmpl.IsTemplate != *filter.IsTemplate {
			continue
		}
		if !matchSearch(filter.Search, tmpl.Slug, tmpl.Subject, tmpl.Body) {
			continue
		}
		tmpls = append(tmpls, *tmpl)
	}
	sort.Slice(tmpls, func(i, j int) bool { return tmpls[i].Slug < tmpls[j].Slug })
	return tmpls, nil
}

func (repo *mailTemplateRepository) GetTemplateByID(_ context.Context, id string) (mailtmpl.Template, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tmpl, ok := repo.db.table[id]; ok {
		return *tmpl, nil
	}
	return mailtmpl.Template{}, mailtmpl.ErrNotFound
}

func (repo *mailTemplateRepository) UpdateTemplate(_ context.Context, tmpl mailtmpl.Template) (mailtmpl.Template, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[tmpl.ID]
	if !ok {
		return mailtmpl.Template{}, mailtmpl.ErrNotFound
	}
	tmpl.SubjectID = orig.SubjectID
	tmpl.IsTemplate = orig.IsTemplate
	tmpl.CreatedAt = orig.CreatedAt
	repo.db.table[tmpl.ID] = &tmpl
	return tmpl, nil
}

func (repo *mailTemplateRepository) DeleteTemplatesByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
