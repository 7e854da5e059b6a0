package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"hrapi/internal/model"
	"hrapi/internal/repository"
)

const pgUniqueViolation = "23505"

const documentColumns = `id, party_id, document_type, document_name, version, file_name, storage_path, status, size, content_type, uploaded_at, uploaded_by, expiry_date, deleted_at, deleted_by`

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const qNextVersion = `
	SELECT COALESCE(MAX(version), 0) + 1
	FROM documents
	WHERE party_id = $1 AND document_type = $2 AND document_name = $3
`

// NextVersion resolves the next version for a version group without mutating anything.
func (r *DocumentPostgres) NextVersion(ctx context.Context, partyID int64, documentType, documentName string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, qNextVersion, partyID, documentType, documentName).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Create resolves the group version and inserts the row in one transaction.
// The uq_documents_version_group index backs the uniqueness invariant; a
// collision with a concurrent creator is reported as ErrVersionConflict.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var version int
	if err := tx.QueryRowContext(ctx, qNextVersion, doc.PartyID, doc.DocumentType, doc.DocumentName).Scan(&version); err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO documents (party_id, document_type, document_name, version, file_name, storage_path, status, size, content_type, uploaded_by, expiry_date)
		VALUES ($1, $2, $3, $4, $5, '', $6, $7, $8, $9, $10)
		RETURNING ` + documentColumns
	row := tx.QueryRowContext(ctx, q,
		doc.PartyID,
		doc.DocumentType,
		doc.DocumentName,
		version,
		doc.FileName,
		doc.Status,
		doc.Size,
		doc.ContentType,
		doc.UploadedBy,
		doc.ExpiryDate,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, mapVersionConflict(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, mapVersionConflict(err)
	}
	return out, nil
}

// MarkStored records the storage key and flips the row to stored.
func (r *DocumentPostgres) MarkStored(ctx context.Context, id int64, storagePath string) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET storage_path = $2, status = $3
		WHERE id = $1
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q, id, storagePath, model.DocumentStatusStored)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID. Tombstoned rows are returned too.
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	return scanDocument(row)
}

// ListByParty returns a party's documents by upload recency with a total count.
func (r *DocumentPostgres) ListByParty(ctx context.Context, partyID int64, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE party_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, partyID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE party_id = $1
		ORDER BY uploaded_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, partyID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Update applies a partial metadata update built dynamically with squirrel.
// deleted_by is stamped through COALESCE so the first stamp always wins.
func (r *DocumentPostgres) Update(ctx context.Context, id int64, upd repository.DocumentUpdate) (*model.Document, error) {
	if upd.Empty() {
		return r.FindByID(ctx, id)
	}

	b := squirrel.Update("documents").
		PlaceholderFormat(squirrel.Dollar).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + documentColumns)

	if upd.DocumentType != nil {
		b = b.Set("document_type", *upd.DocumentType)
	}
	if upd.DocumentName != nil {
		b = b.Set("document_name", *upd.DocumentName)
	}
	if upd.ExpiryDate != nil {
		b = b.Set("expiry_date", *upd.ExpiryDate)
	}
	if upd.DeletedAt != nil {
		b = b.Set("deleted_at", *upd.DeletedAt)
	}
	if upd.DeletedBy != nil {
		b = b.Set("deleted_by", squirrel.Expr("COALESCE(deleted_by, ?)", *upd.DeletedBy))
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	row := r.db.QueryRowContext(ctx, q, args...)
	return scanDocument(row)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*model.Document, error) {
	var (
		d          model.Document
		uploadedBy sql.NullString
		expiryDate sql.NullTime
		deletedAt  sql.NullTime
		deletedBy  sql.NullString
	)
	if err := s.Scan(
		&d.ID,
		&d.PartyID,
		&d.DocumentType,
		&d.DocumentName,
		&d.Version,
		&d.FileName,
		&d.StoragePath,
		&d.Status,
		&d.Size,
		&d.ContentType,
		&d.UploadedAt,
		&uploadedBy,
		&expiryDate,
		&deletedAt,
		&deletedBy,
	); err != nil {
		return nil, err
	}
	if uploadedBy.Valid {
		d.UploadedBy = &uploadedBy.String
	}
	if expiryDate.Valid {
		t := expiryDate.Time
		d.ExpiryDate = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		d.DeletedAt = &t
	}
	if deletedBy.Valid {
		d.DeletedBy = &deletedBy.String
	}
	return &d, nil
}

func mapVersionConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrVersionConflict, pgErr.ConstraintName)
	}
	return err
}
