package service

import (
	"errors"
	"fmt"
)

var (
	// ErrPartyNotFound is returned when the referenced party does not exist.
	ErrPartyNotFound = errors.New("party not found")
	// ErrDocumentNotFound is returned for an unknown document id.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrProfileNotFound is returned for an unknown profile id.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrFileTooLarge is returned when an upload exceeds the configured size ceiling.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	// ErrUnsupportedFileType is returned when the filename extension is not allow-listed.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrVersionConflict is returned when version resolution keeps losing the
	// race for a group slot after the bounded retries.
	ErrVersionConflict = errors.New("document version conflict")
	// ErrFileNotStored is returned when a download is requested for a row
	// whose blob save never completed.
	ErrFileNotStored = errors.New("document file not stored")
)

// ValidationError reports a field-level validation failure. Nothing has been
// persisted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError marks a partial failure: the metadata row committed but the
// blob save failed. The row stays in pending status referencing no file and is
// not rolled back; the caller retries the save or flags it for cleanup.
type StorageError struct {
	DocumentID int64
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store file for document %d: %v", e.DocumentID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
