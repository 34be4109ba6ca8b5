package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasbord/klasbord/core/remark"
)

var remarkCols = []string{
	"id", "subject_id", "slug", "text", "is_template", "created_at", "updated_at",
}

func TestRemarkRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRemarkRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("create assigns id", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO remark").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rem, err := repo.CreateRemark(ctx, remark.Remark{
			SubjectID: "sub-1",
			Slug:      "sterk_onderzoek",
			Text:      "Sterk onderzoek uitgevoerd.",
			CreatedAt: now,
			UpdatedAt: now,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, rem.ID)
	})

	t.Run("query with template filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM remark WHERE subject_id = \$1 AND is_template = \$2$`).
			WithArgs("sub-1", true).
			WillReturnRows(sqlmock.NewRows(remarkCols).
				AddRow("id-1", "sub-1", "sterk_onderzoek", "Sterk onderzoek uitgevoerd.", true, now, now))

		isTemplate := true
		rems, err := repo.QueryRemarks(ctx, remark.QueryFilter{SubjectID: "sub-1", IsTemplate: &isTemplate}, nil)
		require.NoError(t, err)
		require.Len(t, rems, 1)
		assert.Equal(t, "sterk_onderzoek", rems[0].Slug)
	})

	t.Run("get missing maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM remark WHERE id = \$1`).
			WithArgs("gone").
			WillReturnRows(sqlmock.NewRows(remarkCols))

		_, err := repo.GetRemarkByID(ctx, "gone")
		assert.Equal(t, remark.ErrNotFound, err)
	})

	t.Run("update missing maps to not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE remark").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateRemark(ctx, remark.Remark{ID: "gone", Slug: "x"})
		assert.Equal(t, remark.ErrNotFound, err)
	})

	t.Run("multi-delete", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM remark WHERE id IN \(\$1, \$2\)`).
			WithArgs("id-1", "id-2").
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.DeleteRemarksByID(ctx, "id-1", "id-2"))
		require.NoError(t, repo.DeleteRemarksByID(ctx)) // no-op without ids
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
