package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/rubric"
)

type rubricRepository struct {
	peer    *peerCriterionTable
	project *projectCriterionTable
}

var _ rubric.Repository = (*rubricRepository)(nil) // interface compliance check

func NewRubricRepository(db *DB) rubric.Repository {
	return &rubricRepository{peer: db.peerCrit, project: db.projectCrit}
}

func (repo *rubricRepository) CreatePeerCriterion(_ context.Context, crit rubric.PeerCriterion) (rubric.PeerCriterion, error) {
	repo.peer.Lock()
	defer repo.peer.Unlock()

	crit.ID = uuid.New().String()
	repo.peer.table[crit.ID] = &crit
	return crit, nil
}

func (repo *rubricRepository) QueryPeerCriteria(
	_ context.Context,
	filter rubric.QueryFilter,
	_ []core.DBOrdering,
) ([]rubric.PeerCriterion, error) {
	repo.peer.RLock()
	defer repo.peer.RUnlock()

	crits := make([]rubric.PeerCriterion, 0, len(repo.peer.table))
	for _, crit := range repo.peer.table {
		if filter.SubjectID != "" && crit.SubjectID != filter.SubjectID {
			continue
		}
		if filter.Category != "" && crit.Category != filter.Category {
			continue
		}
		if filter.IsTemplate != nil && crit.IsTemplate != *filter.IsTemplate {
			continue
		}
		if !matchSearch(filter.Search, crit.Title, crit.Description.String) {
			continue
		}
		crits = append(crits, *crit)
	}
	sort.Slice(crits, func(i, j int) bool {
		if crits[i].Category != crits[j].Category {
			return crits[i].Category < crits[j].Category
		}
		return crits[i].Order < crits[j].Order
	})
	return crits, nil
}

func (repo *rubricRepository) GetPeerCriterionByID(_ context.Context, id string) (rubric.PeerCriterion, error) {
	repo.peer.RLock()
	defer repo.peer.RUnlock()

	if crit, ok := repo.peer.table[id]; ok {
		return *crit, nil
	}
	return rubric.PeerCriterion{}, rubric.ErrPeerCriterionNotFound
}

func (repo *rubricRepository) UpdatePeerCriterion(_ context.Context, crit rubric.PeerCriterion) (rubric.PeerCriterion, error) {
	repo.peer.Lock()
	defer repo.peer.Unlock()

	orig, ok := repo.peer.table[crit.ID]
	if !ok {
		return rubric.PeerCriterion{}, rubric.ErrPeerCriterionNotFound
	}
	crit.SubjectID = orig.SubjectID
	crit.IsTemplate = orig.IsTemplate
	crit.CreatedAt = orig.CreatedAt
	repo.peer.table[crit.ID] = &crit
	return crit, nil
}

func (repo *rubricRepository) DeletePeerCriteriaByID(_ context.Context, ids ...string) error {
	repo.peer.Lock()
	defer repo.peer.Unlock()
	for _, id := range ids {
		delete(repo.peer.table, id)
	}
	return nil
}

func (repo *rubricRepository) CreateProjectCriterion(_ context.Context, crit rubric.ProjectCriterion) (rubric.ProjectCriterion, error) {
	repo.project.Lock()
	defer repo.project.Unlock()

	crit.ID = uuid.New().String()
	repo.project.table[crit.ID] = &crit
	return crit, nil
}

func (repo *rubricRepository) QueryProjectCriteria(
	_ context.Context,
	filter rubric.QueryFilter,
	_ []core.DBOrdering,
) ([]rubric.ProjectCriterion, error) {
	repo.project.RLock()
	defer repo.project.RUnlock()

	crits := make([]rubric.ProjectCriterion, 0, len(repo.project.table))
	for _, crit := range repo.project.table {
		if filter.SubjectID != "" && crit.SubjectID != filter.SubjectID {
			continue
		}
		if filter.IsTemplate != nil && crit.IsTemplate != *filter.IsTemplate {
			continue
		}
		if !matchSearch(filter.Search, crit.Title, crit.Description.String) {
			continue
		}
		crits = append(crits, *crit)
	}
	sort.Slice(crits, func(i, j int) bool { return crits[i].Order < crits[j].Order })
	return crits, nil
}

func (repo *rubricRepository) GetProjectCriterionByID(_ context.Context, id string) (rubric.ProjectCriterion, error) {
	repo.project.RLock()
	defer repo.project.RUnlock()

	if crit, ok := repo.project.table[id]; ok {
		return *crit, nil
	}
	return rubric.ProjectCriterion{}, rubric.ErrProjectCriterionNotFound
}

func (repo *rubricRepository) UpdateProjectCriterion(_ context.Context, crit rubric.ProjectCriterion) (rubric.ProjectCriterion, error) {
	repo.project.Lock()
	defer repo.project.Unlock()

	orig, ok := repo.project.table[crit.ID]
	if !ok {
		return rubric.ProjectCriterion{}, rubric.ErrProjectCriterionNotFound
	}
	crit.SubjectID = orig.SubjectID
	crit.IsTemplate = orig.IsTemplate
	crit.CreatedAt = orig.CreatedAt
	repo.project.table[crit.ID] = &crit
	return crit, nil
}

func (repo *rubricRepository) DeleteProjectCriteriaByID(_ context.Context, ids ...string) error {
	repo.project.Lock()
	defer repo.project.Unlock()
	for _, id := range ids {
		delete(repo.project.table, id)
	}
	return nil
}
