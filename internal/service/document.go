package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"hrapi/internal/config"
	"hrapi/internal/model"
	"hrapi/internal/repository"
	"hrapi/internal/storage"
)

// versionConflictRetries bounds the re-resolution loop when concurrent
// creators collide on a version-group slot.
const versionConflictRetries = 3

// DocumentView is a Document enriched with the read-side derived fields.
// DaysToExpiry is absent exactly when ExpiryDate is.
type DocumentView struct {
	model.Document
	IsExpired    bool `json:"is_expired"`
	DaysToExpiry *int `json:"days_to_expiry,omitempty"`
}

// DocumentListResult is the service-level DTO for a party's documents.
type DocumentListResult struct {
	Items []DocumentView `json:"data"`
	Total int            `json:"total"`
}

// CreateDocumentInput carries a new upload. Actor is the optional
// authenticated user id stamped onto uploaded_by.
type CreateDocumentInput struct {
	PartyID      int64
	DocumentType string
	DocumentName string
	File         io.Reader
	FileName     string
	Size         int64
	ContentType  string
	ExpiryDate   *time.Time
	Actor        *string
}

// UpdateDocumentInput is a partial update. A non-nil File starts a new
// revision in the document's version group; nil fields are left untouched. A
// DeletedAt stamps the soft-delete tombstone.
type UpdateDocumentInput struct {
	File         io.Reader
	FileName     string
	Size         int64
	ContentType  string
	DocumentType *string
	DocumentName *string
	ExpiryDate   *time.Time
	DeletedAt    *time.Time
	Actor        *string
}

// DocumentService defines the document lifecycle use cases: validated upload,
// version-group revisions, metadata updates, soft-delete, and reads.
type DocumentService interface {
	// Create validates the upload, inserts the metadata row at the group's
	// next version, saves the bytes under the deterministic path, and records
	// the storage key back onto the row.
	Create(ctx context.Context, in CreateDocumentInput) (*DocumentView, error)

	// Update applies metadata changes and tombstone stamping to the row; a new
	// file additionally creates the next revision in the row's version group
	// and the new revision is returned.
	Update(ctx context.Context, id int64, in UpdateDocumentInput) (*DocumentView, error)

	// SoftDelete stamps the tombstone with the current time and actor. The row
	// and its file survive; a prior deleted_by is never overwritten.
	SoftDelete(ctx context.Context, id int64, actor *string) (*DocumentView, error)

	// Get returns a single document by id, tombstoned rows included.
	Get(ctx context.Context, id int64) (*DocumentView, error)

	// ListByParty returns a party's documents ordered by upload recency.
	ListByParty(ctx context.Context, partyID int64, limit, offset int) (*DocumentListResult, error)

	// DownloadURL returns a presigned URL for a stored document's bytes.
	DownloadURL(ctx context.Context, id int64) (string, error)
}

type documentService struct {
	store         storage.Storage
	repo          repository.DocumentRepository
	parties       repository.PartyRepository
	maxSize       int64
	allowedExt    map[string]bool
	presignExpiry time.Duration
	log           *zap.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, parties repository.PartyRepository, cfg config.UploadConfig, log *zap.Logger) DocumentService {
	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(ext)] = true
	}
	return &documentService{
		store:         store,
		repo:          repo,
		parties:       parties,
		maxSize:       cfg.MaxSize,
		allowedExt:    allowed,
		presignExpiry: time.Duration(cfg.PresignExpirySec) * time.Second,
		log:           log,
	}
}

func (s *documentService) Create(ctx context.Context, in CreateDocumentInput) (*DocumentView, error) {
	if in.PartyID <= 0 {
		return nil, invalidField("party_id", "party_id is required")
	}
	if strings.TrimSpace(in.DocumentType) == "" {
		return nil, invalidField("document_type", "document_type is required")
	}
	if strings.TrimSpace(in.DocumentName) == "" {
		return nil, invalidField("document_name", "document_name is required")
	}
	if in.File == nil {
		return nil, invalidField("file", "file is required")
	}
	if err := s.validateFile(in.FileName, in.Size); err != nil {
		return nil, err
	}

	exists, err := s.parties.Exists(ctx, in.PartyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPartyNotFound
	}

	doc := &model.Document{
		PartyID:      in.PartyID,
		DocumentType: in.DocumentType,
		DocumentName: in.DocumentName,
		FileName:     in.FileName,
		Status:       model.DocumentStatusPending,
		Size:         in.Size,
		ContentType:  in.ContentType,
		UploadedBy:   in.Actor,
		ExpiryDate:   in.ExpiryDate,
	}
	stored, err := s.insertWithRetry(ctx, doc)
	if err != nil {
		return nil, err
	}
	return s.saveBytes(ctx, stored, in.File, in.FileName)
}

func (s *documentService) Update(ctx context.Context, id int64, in UpdateDocumentInput) (*DocumentView, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	// Validate up front so a bad file leaves the row untouched.
	if in.File != nil {
		if err := s.validateFile(in.FileName, in.Size); err != nil {
			return nil, err
		}
	}

	upd := repository.DocumentUpdate{
		DocumentType: in.DocumentType,
		DocumentName: in.DocumentName,
		ExpiryDate:   in.ExpiryDate,
	}
	if in.DeletedAt != nil {
		upd.DeletedAt = in.DeletedAt
		// COALESCE in the repository keeps an existing stamp: first wins.
		upd.DeletedBy = in.Actor
	}
	if !upd.Empty() {
		doc, err = s.repo.Update(ctx, id, upd)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrDocumentNotFound
			}
			return nil, err
		}
	}

	if in.File == nil {
		v := newDocumentView(doc, time.Now().UTC())
		return &v, nil
	}

	// A replacement file becomes the next revision of the row's version group,
	// not an in-place mutation; the prior revision stays addressable.
	next := &model.Document{
		PartyID:      doc.PartyID,
		DocumentType: doc.DocumentType,
		DocumentName: doc.DocumentName,
		FileName:     in.FileName,
		Status:       model.DocumentStatusPending,
		Size:         in.Size,
		ContentType:  in.ContentType,
		UploadedBy:   in.Actor,
		ExpiryDate:   doc.ExpiryDate,
	}
	stored, err := s.insertWithRetry(ctx, next)
	if err != nil {
		return nil, err
	}
	return s.saveBytes(ctx, stored, in.File, in.FileName)
}

func (s *documentService) SoftDelete(ctx context.Context, id int64, actor *string) (*DocumentView, error) {
	now := time.Now().UTC()
	return s.Update(ctx, id, UpdateDocumentInput{DeletedAt: &now, Actor: actor})
}

func (s *documentService) Get(ctx context.Context, id int64) (*DocumentView, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	v := newDocumentView(doc, time.Now().UTC())
	return &v, nil
}

func (s *documentService) ListByParty(ctx context.Context, partyID int64, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	exists, err := s.parties.Exists(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPartyNotFound
	}

	res, err := s.repo.ListByParty(ctx, partyID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]DocumentView, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, newDocumentView(&res.Items[i], now))
	}
	return &DocumentListResult{Items: items, Total: res.Total}, nil
}

func (s *documentService) DownloadURL(ctx context.Context, id int64) (string, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.Status != model.DocumentStatusStored || doc.StoragePath == "" {
		return "", ErrFileNotStored
	}
	return s.store.PresignGet(ctx, doc.StoragePath, s.presignExpiry)
}

func (s *documentService) findDocument(ctx context.Context, id int64) (*model.Document, error) {
	if id <= 0 {
		return nil, invalidField("id", "id is required")
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// insertWithRetry re-runs version resolution when a concurrent creator takes
// the slot first; the unique group index reports the collision.
func (s *documentService) insertWithRetry(ctx context.Context, doc *model.Document) (*model.Document, error) {
	for attempt := 1; attempt <= versionConflictRetries; attempt++ {
		stored, err := s.repo.Create(ctx, doc)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		s.log.Warn("document_version_conflict",
			zap.Int64("party_id", doc.PartyID),
			zap.String("document_type", doc.DocumentType),
			zap.String("document_name", doc.DocumentName),
			zap.Int("attempt", attempt),
		)
	}
	return nil, ErrVersionConflict
}

// saveBytes is phase two of the write: path derivation, blob save, and the
// stored-key writeback. A storage failure leaves the row pending on purpose.
func (s *documentService) saveBytes(ctx context.Context, doc *model.Document, r io.Reader, filename string) (*DocumentView, error) {
	key := DocumentStoragePath(doc.PartyID, doc.ID, doc.Version, filename)
	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        doc.Size,
		ContentType: doc.ContentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		s.log.Error("document_store_failed",
			zap.Int64("document_id", doc.ID),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, &StorageError{DocumentID: doc.ID, Err: err}
	}

	// The backend's returned key is authoritative; it may differ from ours.
	updated, err := s.repo.MarkStored(ctx, doc.ID, info.Key)
	if err != nil {
		return nil, fmt.Errorf("record storage key: %w", err)
	}
	v := newDocumentView(updated, time.Now().UTC())
	return &v, nil
}

func (s *documentService) validateFile(filename string, size int64) error {
	if size > s.maxSize {
		return &ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("file size %d exceeds the %d byte limit", size, s.maxSize),
			Err:    ErrFileTooLarge,
		}
	}
	ext := fileExtension(filename)
	if !s.allowedExt[ext] {
		return &ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("file type %q is not allowed", ext),
			Err:    ErrUnsupportedFileType,
		}
	}
	return nil
}

func newDocumentView(d *model.Document, now time.Time) DocumentView {
	v := DocumentView{Document: *d}
	if d.ExpiryDate != nil {
		days := daysUntil(now, *d.ExpiryDate)
		v.DaysToExpiry = &days
		v.IsExpired = days < 0
	}
	return v
}

// daysUntil counts whole calendar days from now's date to the expiry date;
// negative once the expiry date is in the past.
func daysUntil(now, expiry time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
