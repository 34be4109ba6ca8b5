package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/competency"
)

type competencyRepository struct {
	db *competencyTable
}

var _ competency.Repository = (*competencyRepository)(nil) // interface compliance check

func NewCompetencyRepository(db *DB) competency.Repository {
	return &competencyRepository{db: db.competency}
}

func (repo *competencyRepository) CreateCompetency(_ context.Context, comp competency.Competency) (competency.Competency, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	comp.ID = uuid.New().String()
	repo.db.table[comp.ID] = &comp
	return comp, nil
}

func (repo *competencyRepository) QueryCompetencies(
	_ context.Context,
	filter competency.QueryFilter,
	_ []core.DBOrdering,
) ([]competency.Competency, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	comps := make([]competency.Competency, 0, len(repo.db.table))
	for _, comp := range repo.db.table {
		if filter.SubjectID != "" && comp.SubjectID != filter.SubjectID {
			continue
		}
		if filter.IsTemplate != nil && comp.IsTemplate != *filter.IsTemplate {
			continue
		}
		if !matchSearch(filter.Search, comp.Title, comp.Description.String) {
			continue
		}
		comps = append(comps, *comp)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i].Order < comps[j].Order })
	return comps, nil
}

func (repo *competencyRepository) GetCompetencyByID(_ context.Context, id string) (competency.Competency, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if comp, ok := repo.db.table[id]; ok {
		return *comp, nil
	}
	return competency.Competency{}, competency.ErrNotFound
}

func (repo *competencyRepository) UpdateCompetency(_ context.Context, comp competency.Competency) (competency.Competency, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[comp.ID]
	if !ok {
		return competency.Competency{}, competency.ErrNotFound
	}
	comp.SubjectID = orig.SubjectID
	comp.IsTemplate = orig.IsTemplate
	comp.CreatedAt = orig.CreatedAt
	repo.db.table[comp.ID] = &comp
	return comp, nil
}

func (repo *competencyRepository) DeleteCompetenciesByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
