package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/competency"
)

var competencyCols = []string{
	"id", "subject_id", "ord", "title", "description", "is_template", "created_at", "updated_at",
}

func TestCompetencyRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCompetencyRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("create assigns id", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO competency").
			WillReturnResult(sqlmock.NewResult(0, 1))

		comp, err := repo.CreateCompetency(ctx, competency.Competency{
			SubjectID: "sub-1",
			Title:     "Samenwerken",
			CreatedAt: now,
			UpdatedAt: now,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, comp.ID)
	})

	t.Run("query with search filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM competency WHERE subject_id = \$1 AND \(title ILIKE \$2 OR description ILIKE \$3\) ORDER BY ord ASC`).
			WithArgs("sub-1", "%samen%", "%samen%").
			WillReturnRows(sqlmock.NewRows(competencyCols).
				AddRow("id-1", "sub-1", 1, "Samenwerken", nil, false, now, now))

		comps, err := repo.QueryCompetencies(
			ctx,
			competency.QueryFilter{SubjectID: "sub-1", Search: "samen"},
			[]core.DBOrdering{{Field: "ord", Ascending: true}},
		)
		require.NoError(t, err)
		require.Len(t, comps, 1)
		assert.Equal(t, "Samenwerken", comps[0].Title)
	})

	t.Run("get missing maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM competency WHERE id = \$1`).
			WithArgs("gone").
			WillReturnRows(sqlmock.NewRows(competencyCols))

		_, err := repo.GetCompetencyByID(ctx, "gone")
		assert.Equal(t, competency.ErrNotFound, err)
	})

	t.Run("update missing maps to not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE competency").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateCompetency(ctx, competency.Competency{ID: "gone", Title: "X"})
		assert.Equal(t, competency.ErrNotFound, err)
	})

	t.Run("multi-delete", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM competency WHERE id IN \(\$1, \$2\)`).
			WithArgs("id-1", "id-2").
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.DeleteCompetenciesByID(ctx, "id-1", "id-2"))
		require.NoError(t, repo.DeleteCompetenciesByID(ctx)) // no-op without ids
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
