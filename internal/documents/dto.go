package documents

import "time"

// DocumentResponse is the full outward-facing representation of a document,
// used for creation results and administrative reads.
type DocumentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Access    string    `json:"access"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		Access:    string(doc.Access),
		OwnerID:   doc.OwnerID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func toResponses(docs []Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	return out
}

// OwnedDocumentResponse is the owner-listing projection: the access field is
// withheld from it.
type OwnedDocumentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toOwnedResponses(docs []Document) []OwnedDocumentResponse {
	out := make([]OwnedDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, OwnedDocumentResponse{
			ID:        doc.ID,
			Title:     doc.Title,
			Content:   doc.Content,
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	return out
}
