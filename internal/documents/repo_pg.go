package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, title, content, access, owner_id, created_at, updated_at`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, title, content, access, owner_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Title,
		doc.Content,
		string(doc.Access),
		doc.OwnerID,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// GetByID fetches a full document record.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	var doc Document
	var access string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&access,
		&doc.OwnerID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	doc.Access = Access(access)
	return doc, nil
}

// ListByOwner returns the owner's documents with the access column left out of
// the projection.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	const query = `
SELECT id, title, content, owner_id, created_at, updated_at
FROM documents
WHERE owner_id = $1
ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Content,
			&doc.OwnerID,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// List returns every document, for administrative reads.
func (r *PGRepo) List(ctx context.Context) ([]Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFull(rows)
}

// SearchByTitle returns documents whose title contains the keyword,
// case-insensitively.
func (r *PGRepo) SearchByTitle(ctx context.Context, keyword string) ([]Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE title ILIKE '%' || $1 || '%' ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query, keyword)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFull(rows)
}

// Update rewrites the mutable fields. The owner reference is immutable.
func (r *PGRepo) Update(ctx context.Context, doc Document) error {
	const query = `
UPDATE documents
SET title = $1, content = $2, updated_at = now()
WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, doc.Title, doc.Content, doc.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a document.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanFull(rows *sql.Rows) ([]Document, error) {
	var out []Document
	for rows.Next() {
		var doc Document
		var access string
		if err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Content,
			&access,
			&doc.OwnerID,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		doc.Access = Access(access)
		out = append(out, doc)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
