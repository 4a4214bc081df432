package documents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"dms-backend/internal/shared/auth"
	"dms-backend/internal/shared/metrics"
	"dms-backend/internal/users"
)

// Service contains business logic for documents, including the ownership gate.
type Service struct {
	Repo  Repo
	Users users.Repo
}

func NewService(repo Repo, userRepo users.Repo) *Service {
	return &Service{Repo: repo, Users: userRepo}
}

// CreateInput carries the validated creation fields.
type CreateInput struct {
	Title   string
	Content string
	Access  Access
}

// Create persists a new document owned by the acting identity. The token only
// proves authenticity, so the owner's user record is re-fetched here; its
// absence yields ErrOwnerNotFound.
func (s *Service) Create(ctx context.Context, identity auth.Identity, in CreateInput) (Document, error) {
	owner, err := s.Users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Document{}, ErrOwnerNotFound
		}
		return Document{}, err
	}

	now := time.Now().UTC()
	doc := Document{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		Access:    in.Access,
		OwnerID:   owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	metrics.IncDocumentCreated()
	return doc, nil
}

// ListOwn returns the acting identity's documents. The user record is
// re-fetched first so a stale token surfaces as ErrOwnerNotFound.
func (s *Service) ListOwn(ctx context.Context, identity auth.Identity) ([]Document, error) {
	if _, err := s.Users.GetByID(ctx, identity.UserID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	return s.Repo.ListByOwner(ctx, identity.UserID)
}

// UpdateInput carries the mutable document fields.
type UpdateInput struct {
	Title   string
	Content string
}

// Update applies the ownership gate and updates title/content. The fetch comes
// first: a missing document is reported as not found, never as not authorized.
func (s *Service) Update(ctx context.Context, identity auth.Identity, id string, in UpdateInput) (Document, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if !owns(identity, doc) {
		metrics.IncAuthorizationDenied()
		return Document{}, ErrNotAuthorized
	}

	doc.Title = in.Title
	doc.Content = in.Content
	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

// Delete removes a document after the ownership gate. Administrators may
// delete any document; everyone else only their own. Fetch-first, as in Update.
func (s *Service) Delete(ctx context.Context, identity auth.Identity, id string) error {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if identity.Role != auth.RoleAdministrator && !owns(identity, doc) {
		metrics.IncAuthorizationDenied()
		return ErrNotAuthorized
	}
	if err := s.Repo.Delete(ctx, doc.ID); err != nil {
		return err
	}
	metrics.IncDocumentDeleted()
	return nil
}

// Get fetches a single document for administrative reads.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns every document for administrative listing.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	return s.Repo.List(ctx)
}

// Search returns documents whose title contains the keyword, case-insensitively.
func (s *Service) Search(ctx context.Context, keyword string) ([]Document, error) {
	return s.Repo.SearchByTitle(ctx, keyword)
}

// owns compares the document's owner to the acting identity. Identifiers may
// arrive as different representations of the same value, so both sides are
// normalized before comparison.
func owns(identity auth.Identity, doc Document) bool {
	return strings.TrimSpace(doc.OwnerID) == strings.TrimSpace(identity.UserID)
}
