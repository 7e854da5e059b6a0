package model

import "time"

// Document statuses for the two-phase write. A row is inserted as
// StatusPending and flips to StatusStored once the blob save succeeds,
// so orphaned rows are distinguishable from healthy ones after a crash.
const (
	DocumentStatusPending = "pending"
	DocumentStatusStored  = "stored"
)

// Document represents one stored file revision belonging to a party.
// Rows sharing (party_id, document_type, document_name) form a version
// group; Version is unique and strictly increasing within that group.
// Rows are never physically deleted: DeletedAt/DeletedBy are the
// soft-delete tombstone and the file stays in object storage.
type Document struct {
	ID           int64      `json:"id"`
	PartyID      int64      `json:"party_id"`
	DocumentType string     `json:"document_type"`
	DocumentName string     `json:"document_name"`
	Version      int        `json:"version"`
	FileName     string     `json:"file_name"`
	StoragePath  string     `json:"storage_path"`
	Status       string     `json:"status"`
	Size         int64      `json:"size"`
	ContentType  string     `json:"content_type"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	UploadedBy   *string    `json:"uploaded_by,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	DeletedBy    *string    `json:"deleted_by,omitempty"`
}

// Deleted reports whether the soft-delete tombstone has been stamped.
func (d *Document) Deleted() bool {
	return d.DeletedAt != nil
}
