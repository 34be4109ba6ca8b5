package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/klasbord/klasbord/core/overview"
)

type scoreRepository struct {
	db *scoreTable
}

var _ overview.Repository = (*scoreRepository)(nil) // interface compliance check

func NewScoreRepository(db *DB) overview.Repository {
	return &scoreRepository{db: db.score}
}

func (repo *scoreRepository) CreateScore(_ context.Context, s overview.Score) (overview.Score, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	s.ID = uuid.New().String()
	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *scoreRepository) QueryScores(_ context.Context, subjectID, kind string) ([]overview.Score, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	scores := make([]overview.Score, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		if s.SubjectID != subjectID {
			continue
		}
		if kind != "" && s.Kind != kind {
			continue
		}
		scores = append(scores, *s)
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].RecordedAt.Before(scores[j].RecordedAt) })
	return scores, nil
}
