package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasbord/klasbord/core/mailtmpl"
)

var mailTmplCols = []string{
	"id", "subject_id", "slug", "subject", "body", "is_template", "created_at", "updated_at",
}

func TestMailTemplateRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMailTemplateRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("create assigns id", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO mail_template").
			WillReturnResult(sqlmock.NewResult(0, 1))

		tmpl, err := repo.CreateTemplate(ctx, mailtmpl.Template{
			SubjectID: "sub-1",
			Slug:      "beoordeling_klaar",
			Subject:   "Je beoordeling staat klaar",
			Body:      "Beste {{.Student}},",
			CreatedAt: now,
			UpdatedAt: now,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, tmpl.ID)
	})

	t.Run("query search spans slug, subject and body", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM mail_template WHERE \(slug ILIKE \$1 OR subject ILIKE \$2 OR body ILIKE \$3\)$`).
			WithArgs("%beoordeling%", "%beoordeling%", "%beoordeling%").
			WillReturnRows(sqlmock.NewRows(mailTmplCols).
				AddRow("id-1", "sub-1", "beoordeling_klaar", "Je beoordeling staat klaar", "Beste {{.Student}},", true, now, now))

		tmpls, err := repo.QueryTemplates(ctx, mailtmpl.QueryFilter{Search: "beoordeling"}, nil)
		require.NoError(t, err)
		require.Len(t, tmpls, 1)
		assert.Equal(t, "beoordeling_klaar", tmpls[0].Slug)
	})

	t.Run("get missing maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM mail_template WHERE id = \$1`).
			WithArgs("gone").
			WillReturnRows(sqlmock.NewRows(mailTmplCols))

		_, err := repo.GetTemplateByID(ctx, "gone")
		assert.Equal(t, mailtmpl.ErrNotFound, err)
	})

	t.Run("update missing maps to not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE mail_template").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateTemplate(ctx, mailtmpl.Template{ID: "gone", Slug: "x"})
		assert.Equal(t, mailtmpl.ErrNotFound, err)
	})

	t.Run("multi-delete", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM mail_template WHERE id IN \(\$1, \$2\)`).
			WithArgs("id-1", "id-2").
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.DeleteTemplatesByID(ctx, "id-1", "id-2"))
		require.NoError(t, repo.DeleteTemplatesByID(ctx)) // no-op without ids
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
