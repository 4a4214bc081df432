package documents

import "context"

// Repo defines persistence operations for documents.
//
// ListByOwner deliberately omits the access field from its projection: a
// regular user's listing never reveals the access-control bookkeeping field.
// Administrative reads return full records.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Document, error)
	List(ctx context.Context) ([]Document, error)
	SearchByTitle(ctx context.Context, keyword string) ([]Document, error)
	Update(ctx context.Context, doc Document) error
	Delete(ctx context.Context, id string) error
}
