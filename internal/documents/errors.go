package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrNotAuthorized indicates the acting identity does not own the document.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrOwnerNotFound indicates the acting identity's user record is absent.
	ErrOwnerNotFound = errors.New("owner not found")
)
