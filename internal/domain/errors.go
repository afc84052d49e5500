package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCollectionNotFound      = errors.New("collection not found")
	ErrDocumentNotFound        = errors.New("document not found")
	ErrSceneNotFound           = errors.New("scene not found")
	ErrImportInProgress        = errors.New("another import is already running")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrEmptyMapFile            = errors.New("map file is empty")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrMissingBatch            = errors.New("required record batch missing")
	ErrDanglingReference       = errors.New("dangling reference")
	ErrStorageUnavailable      = errors.New("object storage is not configured")
)

// MissingBatchError reports a required category that never appeared in a map export.
type MissingBatchError struct {
	Category Category
}

func (e *MissingBatchError) Error() string {
	return fmt.Sprintf("missing %s batch", e.Category)
}

func (e *MissingBatchError) Unwrap() error {
	return ErrMissingBatch
}

// DanglingReferenceError reports an index that has no entry in its target table.
type DanglingReferenceError struct {
	Kind  string
	Index int
	// Source names the record holding the reference, e.g. "country 3".
	Source string
}

func (e *DanglingReferenceError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: dangling %s reference %d", e.Source, e.Kind, e.Index)
	}
	return fmt.Sprintf("dangling %s reference %d", e.Kind, e.Index)
}

func (e *DanglingReferenceError) Unwrap() error {
	return ErrDanglingReference
}
