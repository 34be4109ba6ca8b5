package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/remark"
)

type remarkRepository struct {
	db *remarkTable
}

var _ remark.Repository = (*remarkRepository)(nil) // interface compliance check

func NewRemarkRepository(db *DB) remark.Repository {
	return &remarkRepository{db: db.remark}
}

func (repo *remarkRepository) CreateRemark(_ context.Context, rem remark.Remark) (remark.Remark, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rem.ID = uuid.New().String()
	repo.db.table[rem.ID] = &rem
	return rem, nil
}

func (repo *remarkRepository) QueryRemarks(
	_ context.Context,
	filter remark.QueryFilter,
	_ []core.DBOrdering,
) ([]remark.Remark, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rems := make([]remark.Remark, 0, len(repo.db.table))
	for _, rem := range repo.db.table {
		if filter.SubjectID != "" && rem.SubjectID != filter.SubjectID {
			continue
		}
		if filter.IsTemplate != nil && rem.IsTemplate != *filter.IsTemplate {
			continue
		}
		if !matchSearch(filter.Search, rem.Slug, rem.Text) {
			continue
		}
		rems = append(rems, *rem)
	}
	sort.Slice(rems, func(i, j int) bool { return rems[i].Slug < rems[j].Slug })
	return rems, nil
}

func (repo *remarkRepository) GetRemarkByID(_ context.Context, id string) (remark.Remark, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rem, ok := repo.db.table[id]; ok {
		return *rem, nil
	}
	return remark.Remark{}, remark.ErrNotFound
}

func (repo *remarkRepository) UpdateRemark(_ context.Context, rem remark.Remark) (remark.Remark, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[rem.ID]
	if !ok {
		return remark.Remark{}, remark.ErrNotFound
	}
	rem.SubjectID = orig.SubjectID
	rem.IsTemplate = orig.IsTemplate
	rem.CreatedAt = orig.CreatedAt
	repo.db.table[rem.ID] = &rem
	return rem, nil
}

func (repo *remarkRepository) DeleteRemarksByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
