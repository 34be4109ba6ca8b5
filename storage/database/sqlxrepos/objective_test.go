package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/objective"
)

var objectiveCols = []string{
	"id", "subject_id", "domain", "ord", "title", "description", "phase", "is_template", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "postgres")
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestObjectiveRepository_CreateObjective(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewObjectiveRepository(db)

	mock.ExpectExec("INSERT INTO objective").
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now().UTC()
	obj, err := repo.CreateObjective(context.Background(), objective.Objective{
		SubjectID: "sub-1",
		Domain:    null.StringFrom("D"),
		Order:     9,
		Title:     "Conceptontwikkeling",
		Phase:     null.StringFrom("onderbouw"),
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, obj.ID, "repo assigns the id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectiveRepository_GetObjectiveByTitle(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewObjectiveRepository(db)

	t.Run("found", func(t *testing.T) {
		now := time.Now().UTC()
		mock.ExpectQuery("SELECT \\* FROM objective").
			WithArgs("sub-1", "conceptontwikkeling", false).
			WillReturnRows(sqlmock.NewRows(objectiveCols).
				AddRow("id-1", "sub-1", "D", 9, "Conceptontwikkeling", nil, "onderbouw", false, now, now))

		obj, err := repo.GetObjectiveByTitle(context.Background(), "sub-1", "conceptontwikkeling", false)
		require.NoError(t, err)
		assert.Equal(t, "id-1", obj.ID)
		assert.Equal(t, "Conceptontwikkeling", obj.Title)
		assert.False(t, obj.Description.Valid)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM objective").
			WithArgs("sub-1", "onbekend", false).
			WillReturnRows(sqlmock.NewRows(objectiveCols))

		_, err := repo.GetObjectiveByTitle(context.Background(), "sub-1", "onbekend", false)
		assert.Equal(t, objective.ErrNotFound, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectiveRepository_QueryObjectives(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewObjectiveRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM objective WHERE subject_id = \$1 AND phase = \$2 ORDER BY ord ASC`).
		WithArgs("sub-1", "onderbouw").
		WillReturnRows(sqlmock.NewRows(objectiveCols).
			AddRow("id-1", "sub-1", "A", 1, "Basis", nil, "onderbouw", false, now, now).
			AddRow("id-2", "sub-1", "D", 2, "Verdieping", "meer", "onderbouw", false, now, now))

	objs, err := repo.QueryObjectives(
		context.Background(),
		objective.QueryFilter{SubjectID: "sub-1", Phase: "onderbouw"},
		[]core.DBOrdering{{Field: "ord", Ascending: true}},
	)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "Basis", objs[0].Title)
	assert.Equal(t, "meer", objs[1].Description.String)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectiveRepository_QueryObjectives_dropsUnknownOrderField(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewObjectiveRepository(db)

	mock.ExpectQuery(`SELECT \* FROM objective WHERE subject_id = \$1$`).
		WithArgs("sub-1").
		WillReturnRows(sqlmock.NewRows(objectiveCols))

	_, err := repo.QueryObjectives(
		context.Background(),
		objective.QueryFilter{SubjectID: "sub-1"},
		[]core.DBOrdering{{Field: "1; DROP TABLE objective", Ascending: true}},
	)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectiveRepository_UpdateObjective(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewObjectiveRepository(db)

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE objective").WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := repo.UpdateObjective(context.Background(), objective.Objective{ID: "id-1", Title: "Nieuw"})
		require.NoError(t, err)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE objective").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateObjective(context.Background(), objective.Objective{ID: "gone", Title: "X"})
		assert.Equal(t, objective.ErrNotFound, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectiveRepository_DeleteObjectivesByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewObjectiveRepository(db)

	mock.ExpectExec(`DELETE FROM objective WHERE id IN \(\$1, \$2\)`).
		WithArgs("id-1", "id-2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.DeleteObjectivesByID(context.Background(), "id-1", "id-2"))

	// no-op without ids
	require.NoError(t, repo.DeleteObjectivesByID(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
