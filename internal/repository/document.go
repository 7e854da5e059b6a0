package repository

import (
	"context"
	"time"

	"hrapi/internal/model"
)

// DocumentUpdate describes a partial metadata update. Nil fields are left
// untouched. DeletedBy is applied first-stamp-wins: an already stamped
// deleted_by is never overwritten.
type DocumentUpdate struct {
	DocumentType *string
	DocumentName *string
	ExpiryDate   *time.Time
	DeletedAt    *time.Time
	DeletedBy    *string
}

// Empty reports whether the update would change nothing.
func (u DocumentUpdate) Empty() bool {
	return u.DocumentType == nil && u.DocumentName == nil && u.ExpiryDate == nil &&
		u.DeletedAt == nil && u.DeletedBy == nil
}

// DocumentRepository defines data access for document rows using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// NextVersion resolves the next version for the exact
	// (party_id, document_type, document_name) group: max existing version
	// plus one, or 1 when the group is empty. Pure read.
	NextVersion(ctx context.Context, partyID int64, documentType, documentName string) (int, error)

	// Create inserts a new document row, resolving the group version and
	// inserting inside a single transaction. The unique index on
	// (party_id, document_type, document_name, version) is the safety net:
	// a collision surfaces as ErrVersionConflict.
	// doc.Version, doc.ID, and doc.UploadedAt are set from the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// MarkStored records the storage key returned by the blob backend and
	// flips the row status from pending to stored.
	MarkStored(ctx context.Context, id int64, storagePath string) (*model.Document, error)

	// FindByID returns a document by its ID, tombstoned rows included.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// ListByParty returns a party's documents ordered by uploaded_at DESC,
	// ties broken by id DESC, together with the total row count.
	ListByParty(ctx context.Context, partyID int64, pq PageQuery) (*PageResult[model.Document], error)

	// Update applies a partial metadata update and returns the updated row.
	Update(ctx context.Context, id int64, upd DocumentUpdate) (*model.Document, error)
}
