package objective

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasbord/klasbord/core"
)

// repoMock is a minimal in-memory Repository for service tests.
type repoMock struct {
	mu         sync.Mutex
	objs       map[string]Objective
	failFor    string // titles that error on create/update
	blockTitle string // title that parks lookups until proceed closes
	entered    chan struct{}
	proceed    chan struct{}
}

func newRepoMock() *repoMock {
	return &repoMock{objs: make(map[string]Objective)}
}

func (r *repoMock) CreateObjective(_ context.Context, obj Objective) (Objective, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFor != "" && obj.Title == r.failFor {
		return Objective{}, assert.AnError
	}
	obj.ID = uuid.New().String()
	r.objs[obj.ID] = obj
	return obj, nil
}

func (r *repoMock) QueryObjectives(_ context.Context, filter QueryFilter, _ []core.DBOrdering) ([]Objective, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]Objective, 0, len(r.objs))
	for _, o := range r.objs {
		if filter.SubjectID != "" && o.SubjectID != filter.SubjectID {
			continue
		}
		res = append(res, o)
	}
	return res, nil
}

func (r *repoMock) GetObjectiveByID(_ context.Context, id string) (Objective, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.objs[id]; ok {
		return o, nil
	}
	return Objective{}, ErrNotFound
}

func (r *repoMock) GetObjectiveByTitle(_ context.Context, subjectID, title string, isTemplate bool) (Objective, error) {
	if r.blockTitle != "" && title == r.blockTitle {
		r.entered <- struct{}{}
		<-r.proceed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.objs {
		if o.SubjectID == subjectID && o.IsTemplate == isTemplate && strings.EqualFold(o.Title, title) {
			return o, nil
		}
	}
	return Objective{}, ErrNotFound
}

func (r *repoMock) UpdateObjective(_ context.Context, obj Objective) (Objective, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFor != "" && obj.Title == r.failFor {
		return Objective{}, assert.AnError
	}
	r.objs[obj.ID] = obj
	return obj, nil
}

func (r *repoMock) DeleteObjectivesByID(_ context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.objs, id)
	}
	return nil
}

type loggerMock struct{}

func (loggerMock) Debug(string, ...interface{}) {}
func (loggerMock) Info(string, ...interface{})  {}
func (loggerMock) Warn(string, ...interface{})  {}
func (loggerMock) Error(string, ...interface{}) {}
func (loggerMock) Fatal(string, ...interface{}) {}

func TestService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("creates then updates on matching title", func(t *testing.T) {
		repo := newRepoMock()
		svc := NewService(repo, loggerMock{})

		res, err := svc.Import(ctx, ImportRequest{
			SubjectID: "sub-1",
			Text: "Domein,Nummer,Titel,Beschrijving,Fase\n" +
				"D,9,Conceptontwikkeling,Ontwerprichtingen genereren,onderbouw\n" +
				"A,1,Basisvaardigheid,,B",
		})
		require.NoError(t, err)
		assert.Equal(t, ImportResult{Created: 2, Errors: []string{}}, res)

		// re-import with a changed order; title match is case-insensitive
		res, err = svc.Import(ctx, ImportRequest{
			SubjectID: "sub-1",
			Text:      "D,10,conceptontwikkeling,Bijgewerkt,E",
		})
		require.NoError(t, err)
		assert.Equal(t, ImportResult{Updated: 1, Errors: []string{}}, res)

		objs, err := svc.Query(ctx, QueryFilter{SubjectID: "sub-1"}, nil)
		require.NoError(t, err)
		require.Len(t, objs, 2)
	})

	t.Run("same title under another subject creates anew", func(t *testing.T) {
		repo := newRepoMock()
		svc := NewService(repo, loggerMock{})

		_, err := svc.Import(ctx, ImportRequest{SubjectID: "sub-1", Text: "D,1,Doel"})
		require.NoError(t, err)
		res, err := svc.Import(ctx, ImportRequest{SubjectID: "sub-2", Text: "D,1,Doel"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Zero(t, res.Updated)
	})

	t.Run("skipped lines counted, no errors raised", func(t *testing.T) {
		repo := newRepoMock()
		svc := NewService(repo, loggerMock{})

		res, err := svc.Import(ctx, ImportRequest{SubjectID: "sub-1", Text: "kaal\nD,1,Doel"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Equal(t, 1, res.Skipped)
		assert.Empty(t, res.Errors)
	})

	t.Run("row failures collected per line, counts authoritative", func(t *testing.T) {
		repo := newRepoMock()
		repo.failFor = "Kapot"
		svc := NewService(repo, loggerMock{})

		res, err := svc.Import(ctx, ImportRequest{
			SubjectID: "sub-1",
			Text:      "D,1,Goed\nD,2,Kapot\nD,3,Ook goed",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Created)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "line 2:")
	})

	t.Run("empty title after fallback is a row error", func(t *testing.T) {
		repo := newRepoMock()
		svc := NewService(repo, loggerMock{})

		// two fields, both empty after trimming
		res, err := svc.Import(ctx, ImportRequest{SubjectID: "sub-1", Text: " , "})
		require.NoError(t, err)
		assert.Zero(t, res.Created)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "title is required")
	})

	t.Run("concurrent import for one subject is rejected", func(t *testing.T) {
		repo := newRepoMock()
		repo.blockTitle = "Doel"
		repo.entered = make(chan struct{})
		repo.proceed = make(chan struct{})
		svc := NewService(repo, loggerMock{})

		done := make(chan ImportResult)
		go func() {
			res, err := svc.Import(ctx, ImportRequest{SubjectID: "sub-1", Text: "D,1,Doel"})
			assert.NoError(t, err)
			done <- res
		}()

		<-repo.entered // first import is now mid-flight

		_, err := svc.Import(ctx, ImportRequest{SubjectID: "sub-1", Text: "D,2,Ander"})
		assert.Equal(t, ErrImportRunning, err)

		// another subject is not blocked
		res, err := svc.Import(ctx, ImportRequest{SubjectID: "sub-2", Text: "D,2,Ander"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)

		close(repo.proceed)
		res = <-done
		assert.Equal(t, 1, res.Created)
	})
}

func TestService_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newRepoMock()
	svc := NewService(repo, loggerMock{})

	obj, err := svc.Create(ctx, NewObjective{
		SubjectID: "sub-1",
		Domain:    "A",
		Order:     3,
		Title:     "Onderzoeken",
		Phase:     PhaseLower,
	})
	require.NoError(t, err)
	require.NotEmpty(t, obj.ID)
	assert.Equal(t, "A", obj.Domain.String)
	assert.False(t, obj.Description.Valid)

	got, err := svc.GetByID(ctx, obj.ID)
	require.NoError(t, err)
	assert.Equal(t, obj.Title, got.Title)

	newOrder := 5
	upd, err := svc.Update(ctx, obj.ID, UpdateObjective{Order: &newOrder, Title: "Onderzoeken 2"})
	require.NoError(t, err)
	assert.Equal(t, 5, upd.Order)
	assert.Equal(t, "Onderzoeken 2", upd.Title)
	assert.Equal(t, obj.Domain, upd.Domain) // untouched

	require.NoError(t, svc.Delete(ctx, obj.ID))
	_, err = svc.GetByID(ctx, obj.ID)
	assert.Equal(t, ErrNotFound, err)
}
