package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/objective"
)

type objectiveRepository struct {
	db *objectiveTable
}

var _ objective.Repository = (*objectiveRepository)(nil) // interface compliance check

func NewObjectiveRepository(db *DB) objective.Repository {
	return &objectiveRepository{db: db.objective}
}

func (repo *objectiveRepository) CreateObjective(_ context.Context, obj objective.Objective) (objective.Objective, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	obj.ID = uuid.New().String()
	repo.db.table[obj.ID] = &obj
	return obj, nil
}

func (repo *objectiveRepository) QueryObjectives(
	_ context.Context,
	filter objective.QueryFilter,
	ordering []core.DBOrdering,
) ([]objective.Objective, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	objs := make([]objective.Objective, 0, len(repo.db.table))
	for _, obj := range repo.db.table {
		if filter.SubjectID != "" && obj.SubjectID != filter.SubjectID {
			continue
		}
		if filter.Domain != "" && obj.Domain.String != filter.Domain {
			continue
		}
		if filter.Phase != "" && obj.Phase.String != filter.Phase {
			continue
		}
		if filter.IsTemplate != nil && obj.IsTemplate != *filter.IsTemplate {
			continue
		}
		if !matchSearch(filter.Search, obj.Title, obj.Description.String) {
			continue
		}
		objs = append(objs, *obj)
	}
	sortObjectives(objs, ordering)
	return objs, nil
}

func (repo *objectiveRepository) GetObjectiveByID(_ context.Context, id string) (objective.Objective, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if obj, ok := repo.db.table[id]; ok {
		return *obj, nil
	}
	return objective.Objective{}, objective.ErrNotFound
}

func (repo *objectiveRepository) GetObjectiveByTitle(
	_ context.Context,
	subjectID, title string,
	isTemplate bool,
) (objective.Objective, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, obj := range repo.db.table {
		if obj.SubjectID == subjectID && obj.IsTemplate == isTemplate && strings.EqualFold(obj.Title, title) {
			return *obj, nil
		}
	}
	return objective.Objective{}, objective.ErrNotFound
}

func (repo *objectiveRepository) UpdateObjective(_ context.Context, obj objective.Objective) (objective.Objective, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[obj.ID]
	if !ok {
		return objective.Objective{}, objective.ErrNotFound
	}
	obj.SubjectID = orig.SubjectID
	obj.IsTemplate = orig.IsTemplate
	obj.CreatedAt = orig.CreatedAt
	repo.db.table[obj.ID] = &obj
	return obj, nil
}

func (repo *objectiveRepository) DeleteObjectivesByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func sortObjectives(objs []objective.Objective, ordering []core.DBOrdering) {
	less := func(a, b objective.Objective) bool {
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Title < b.Title
	}
	if len(ordering) > 0 && ordering[0].Field == "title" {
		less = func(a, b objective.Objective) bool { return a.Title < b.Title }
	}
	asc := len(ordering) == 0 || ordering[0].Ascending
	sort.Slice(objs, func(i, j int) bool {
		if asc {
			return less(objs[i], objs[j])
		}
		return less(objs[j], objs[i])
	})
}
