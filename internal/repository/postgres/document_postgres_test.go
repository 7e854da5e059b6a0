package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"hrapi/internal/model"
	"hrapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var documentCols = []string{
	"id", "party_id", "document_type", "document_name", "version",
	"file_name", "storage_path", "status", "size", "content_type",
	"uploaded_at", "uploaded_by", "expiry_date", "deleted_at", "deleted_by",
}

func documentRow(id int64, version int, storagePath, status string) *sqlmock.Rows {
	return sqlmock.NewRows(documentCols).
		AddRow(id, int64(42), "id_proof", "passport", version,
			"passport.pdf", storagePath, status, int64(1024), "application/pdf",
			time.Now().UTC(), "user-1", nil, nil, nil)
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	doc := &model.Document{
		PartyID:      42,
		DocumentType: "id_proof",
		DocumentName: "passport",
		FileName:     "passport.pdf",
		Status:       model.DocumentStatusPending,
		Size:         1024,
		ContentType:  "application/pdf",
	}

	t.Run("resolves the group version inside the transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) \+ 1`).
			WithArgs(int64(42), "id_proof", "passport").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
		mock.ExpectQuery("INSERT INTO documents").
			WillReturnRows(documentRow(105, 3, "", model.DocumentStatusPending))
		mock.ExpectCommit()

		result, err := repo.Create(ctx, doc)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, int64(105), result.ID)
		assert.Equal(t, 3, result.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique index collision maps to the conflict sentinel", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) \+ 1`).
			WithArgs(int64(42), "id_proof", "passport").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
		mock.ExpectQuery("INSERT INTO documents").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_documents_version_group"})
		mock.ExpectRollback()

		_, err := repo.Create(ctx, doc)

		assert.ErrorIs(t, err, repository.ErrVersionConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_NextVersion(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) \+ 1`).
		WithArgs(int64(42), "id_proof", "passport").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1))

	next, err := repo.NextVersion(context.Background(), 42, "id_proof", "passport")

	assert.NoError(t, err)
	assert.Equal(t, 1, next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_MarkStored(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	key := "documents/42/105/passport_v0003.pdf"

	mock.ExpectQuery(`UPDATE documents\s+SET storage_path = \$2, status = \$3`).
		WithArgs(int64(105), key, model.DocumentStatusStored).
		WillReturnRows(documentRow(105, 3, key, model.DocumentStatusStored))

	result, err := repo.MarkStored(context.Background(), 105, key)

	assert.NoError(t, err)
	assert.Equal(t, key, result.StoragePath)
	assert.Equal(t, model.DocumentStatusStored, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id =").
			WithArgs(int64(105)).
			WillReturnRows(documentRow(105, 3, "documents/42/105/passport_v0003.pdf", model.DocumentStatusStored))

		doc, err := repo.FindByID(ctx, 105)

		assert.NoError(t, err)
		assert.Equal(t, int64(105), doc.ID)
		assert.Equal(t, "user-1", *doc.UploadedBy)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id =").
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(ctx, 404)

		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestDocumentPostgres_ListByParty(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE party_id =`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(documentCols).
		AddRow(int64(2), int64(42), "id_proof", "passport", 2,
			"passport.pdf", "documents/42/2/passport_v0002.pdf", model.DocumentStatusStored,
			int64(10), "application/pdf", time.Now().UTC(), nil, nil, nil, nil).
		AddRow(int64(1), int64(42), "id_proof", "passport", 1,
			"passport.pdf", "documents/42/1/passport_v0001.pdf", model.DocumentStatusStored,
			int64(10), "application/pdf", time.Now().UTC().Add(-time.Hour), nil, nil, nil, nil)

	mock.ExpectQuery(`ORDER BY uploaded_at DESC, id DESC`).
		WithArgs(int64(42), 10, 0).
		WillReturnRows(rows)

	res, err := repo.ListByParty(context.Background(), 42, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, int64(2), res.Items[0].ID)
	assert.Nil(t, res.Items[0].UploadedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("soft delete stamps through COALESCE", func(t *testing.T) {
		deletedAt := time.Now().UTC()
		actor := "actor-a"

		rows := sqlmock.NewRows(documentCols).
			AddRow(int64(105), int64(42), "id_proof", "passport", 3,
				"passport.pdf", "documents/42/105/passport_v0003.pdf", model.DocumentStatusStored,
				int64(10), "application/pdf", time.Now().UTC(), nil, nil, deletedAt, actor)

		mock.ExpectQuery(`UPDATE documents SET deleted_at = \$1, deleted_by = COALESCE\(deleted_by, \$2\) WHERE id = \$3`).
			WithArgs(deletedAt, actor, int64(105)).
			WillReturnRows(rows)

		doc, err := repo.Update(ctx, 105, repository.DocumentUpdate{
			DeletedAt: &deletedAt,
			DeletedBy: &actor,
		})

		assert.NoError(t, err)
		assert.NotNil(t, doc.DeletedAt)
		assert.Equal(t, actor, *doc.DeletedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update is a plain read", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id =").
			WithArgs(int64(105)).
			WillReturnRows(documentRow(105, 3, "documents/42/105/passport_v0003.pdf", model.DocumentStatusStored))

		doc, err := repo.Update(ctx, 105, repository.DocumentUpdate{})

		assert.NoError(t, err)
		assert.Equal(t, int64(105), doc.ID)
	})
}
