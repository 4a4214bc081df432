package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dms-backend/internal/bootstrap"
	"dms-backend/internal/shared/auth"
	"dms-backend/internal/shared/config"
	"dms-backend/internal/shared/server/middleware"
)

type envelope struct {
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Env:        "dev",
		JWTSecret:  "test-secret",
		JWTTTL:     time.Hour,
		BcryptCost: 4,
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *bootstrap.App, method, path, token string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	var env envelope
	if resp.Body.Len() > 0 {
		if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope from %q: %v", resp.Body.String(), err)
		}
	}
	return resp, env
}

func registerUser(t *testing.T, app *bootstrap.App, userName, email string, roleID int) (string, string) {
	t.Helper()

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/register", "", map[string]any{
		"userName":  userName,
		"firstName": "Frank",
		"lastName":  "Osagie",
		"email":     email,
		"password":  "frank123",
		"roleId":    roleID,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, resp.Code, resp.Body.String())
	}

	var body struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Body, &body); err != nil {
		t.Fatalf("decode register body: %v", err)
	}
	if body.ID == "" || body.Token == "" {
		t.Fatalf("expected id and token in register body, got %s", env.Body)
	}
	return body.ID, body.Token
}

func createDocument(t *testing.T, app *bootstrap.App, token, title, content, access string) string {
	t.Helper()

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/document/create", token, map[string]any{
		"title":   title,
		"content": content,
		"access":  access,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create document: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Body, &body); err != nil {
		t.Fatalf("decode create body: %v", err)
	}
	return body.ID
}

func TestCreateDocumentValidation(t *testing.T) {
	app := newTestApp(t)
	_, token := registerUser(t, app, "Frankie1", "frank1@example.com", 2)

	cases := []struct {
		name    string
		payload map[string]any
		field   string
	}{
		{"missing title", map[string]any{"content": "doc_content", "access": "private"}, "title"},
		{"missing content", map[string]any{"title": "doc_title", "access": "private"}, "content"},
		{"missing access", map[string]any{"title": "doc_title", "content": "doc_content"}, "access"},
		{"short title", map[string]any{"title": "doc", "content": "doc_content", "access": "private"}, "title"},
		{"short content", map[string]any{"title": "doc_title", "content": "doc", "access": "private"}, "content"},
		{"bad access", map[string]any{"title": "doc_title", "content": "doc_content", "access": "secret"}, "access"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := doJSON(t, app, http.MethodPost, "/api/v1/document/create", token, tc.payload)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
			}
			if !strings.Contains(env.Message, tc.field) {
				t.Fatalf("expected message naming %q, got %q", tc.field, env.Message)
			}
		})
	}
}

func TestCreateDocumentForAbsentUserIsNotFound(t *testing.T) {
	app := newTestApp(t)

	// Token verifies but its user record does not exist.
	token, err := app.Signer.Sign(auth.Identity{UserID: uuid.NewString(), Role: auth.RoleStandard})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/document/create", token, map[string]any{
		"title":   "doc_title",
		"content": "doc_content",
		"access":  "private",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(strings.ToLower(env.Message), "not found") {
		t.Fatalf("expected not-found message, got %q", env.Message)
	}
}

func TestCreateThenListRoundTrip(t *testing.T) {
	app := newTestApp(t)
	_, token := registerUser(t, app, "Frankie1", "frank1@example.com", 2)

	docID := createDocument(t, app, token, "doc_title", "doc_content", "private")

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/documents", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var docs []map[string]any
	if err := json.Unmarshal(env.Body, &docs); err != nil {
		t.Fatalf("decode list body: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected exactly 1 document, got %d", len(docs))
	}
	if docs[0]["id"] != docID {
		t.Fatalf("expected document %s, got %v", docID, docs[0]["id"])
	}
	if docs[0]["title"] != "doc_title" || docs[0]["content"] != "doc_content" {
		t.Fatalf("round-trip mismatch: %v", docs[0])
	}
	if _, ok := docs[0]["access"]; ok {
		t.Fatalf("own listing must not reveal the access field: %v", docs[0])
	}
}

func TestListDocumentsForAbsentUserIsNotFound(t *testing.T) {
	app := newTestApp(t)

	token, err := app.Signer.Sign(auth.Identity{UserID: uuid.NewString(), Role: auth.RoleStandard})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/documents", token, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListDocumentsExcludesOtherOwners(t *testing.T) {
	app := newTestApp(t)
	_, tokenA := registerUser(t, app, "FrankieA", "a@example.com", 2)
	_, tokenB := registerUser(t, app, "FrankieB", "b@example.com", 2)

	createDocument(t, app, tokenA, "doc_title_a", "doc_content_a", "private")
	createDocument(t, app, tokenB, "doc_title_b", "doc_content_b", "public")

	_, env := doJSON(t, app, http.MethodGet, "/api/v1/documents", tokenA, nil)
	var docs []map[string]any
	if err := json.Unmarshal(env.Body, &docs); err != nil {
		t.Fatalf("decode list body: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected only own document, got %d", len(docs))
	}
	if docs[0]["title"] != "doc_title_a" {
		t.Fatalf("expected doc_title_a, got %v", docs[0]["title"])
	}
}

func TestUpdateDocumentByNonOwnerIsNotAuthorized(t *testing.T) {
	app := newTestApp(t)
	_, tokenA := registerUser(t, app, "FrankieA", "a@example.com", 2)
	_, tokenB := registerUser(t, app, "FrankieB", "b@example.com", 2)

	docID := createDocument(t, app, tokenA, "doc_title", "doc_content", "private")

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/document/update/"+docID, tokenB, map[string]any{
		"title":   "doc_title_1",
		"content": "doc_content_1",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(strings.ToLower(env.Message), "not authorized") {
		t.Fatalf("expected not-authorized message, got %q", env.Message)
	}

	// The document must be unmodified.
	doc, err := app.DocumentsRepo.GetByID(context.Background(), docID)
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if doc.Title != "doc_title" || doc.Content != "doc_content" {
		t.Fatalf("document was modified by a non-owner: %+v", doc)
	}
}

func TestUpdateAbsentDocumentIsNotFoundBeforeOwnership(t *testing.T) {
	app := newTestApp(t)
	_, token := registerUser(t, app, "Frankie1", "frank1@example.com", 2)

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/document/update/"+uuid.NewString(), token, map[string]any{
		"title":   "doc_title_1",
		"content": "doc_content_1",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(strings.ToLower(env.Message), "does not exist") {
		t.Fatalf("expected does-not-exist message, got %q", env.Message)
	}
}

func TestOwnerUpdatesDocument(t *testing.T) {
	app := newTestApp(t)
	_, token := registerUser(t, app, "Frankie1", "frank1@example.com", 2)

	docID := createDocument(t, app, token, "doc_title", "doc_content", "private")

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/document/update/"+docID, token, map[string]any{
		"title":   "doc_title_1",
		"content": "doc_content_1",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(strings.ToLower(env.Message), "successfully updated") {
		t.Fatalf("expected successfully-updated message, got %q", env.Message)
	}

	doc, err := app.DocumentsRepo.GetByID(context.Background(), docID)
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if doc.Title != "doc_title_1" || doc.Content != "doc_content_1" {
		t.Fatalf("update not applied: %+v", doc)
	}
}

func TestDeleteDocumentByNonOwnerIsNotAuthorized(t *testing.T) {
	app := newTestApp(t)
	_, tokenA := registerUser(t, app, "FrankieA", "a@example.com", 2)
	_, tokenB := registerUser(t, app, "FrankieB", "b@example.com", 2)

	docID := createDocument(t, app, tokenA, "doc_title", "doc_content", "private")

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/document/delete/"+docID, tokenB, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	if _, err := app.DocumentsRepo.GetByID(context.Background(), docID); err != nil {
		t.Fatalf("document should still exist: %v", err)
	}
}

func TestDeleteIsIdempotentlyNotFound(t *testing.T) {
	app := newTestApp(t)
	_, token := registerUser(t, app, "Frankie1", "frank1@example.com", 2)

	docID := createDocument(t, app, token, "doc_title", "doc_content", "private")

	resp, env := doJSON(t, app, http.MethodDelete, "/api/v1/document/delete/"+docID, token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(strings.ToLower(env.Message), "successfully deleted") {
		t.Fatalf("expected successfully-deleted message, got %q", env.Message)
	}

	// Repeating the delete reports not found, not a crash.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/document/delete/"+docID, token, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeated delete, got %d", resp.Code)
	}
}

func TestAdminDocumentEndpointsRequireAdminRole(t *testing.T) {
	app := newTestApp(t)
	_, standardToken := registerUser(t, app, "Frankie1", "frank1@example.com", 2)

	for _, path := range []string{
		"/api/v1/admin/documents",
		"/api/v1/admin/document/" + uuid.NewString(),
		"/api/v1/admin/documents/search?keyword=doc",
	} {
		resp, _ := doJSON(t, app, http.MethodGet, path, standardToken, nil)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403 for standard role, got %d", path, resp.Code)
		}
	}
}

func TestAdminListsAllDocuments(t *testing.T) {
	app := newTestApp(t)
	_, tokenA := registerUser(t, app, "FrankieA", "a@example.com", 2)
	_, tokenB := registerUser(t, app, "FrankieB", "b@example.com", 2)
	_, adminToken := registerUser(t, app, "AdminUser", "admin@example.com", 1)

	createDocument(t, app, tokenA, "doc_title_a", "doc_content_a", "private")
	createDocument(t, app, tokenB, "doc_title_b", "doc_content_b", "public")

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/admin/documents", adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var docs []map[string]any
	if err := json.Unmarshal(env.Body, &docs); err != nil {
		t.Fatalf("decode list body: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected all documents, got %d", len(docs))
	}
	if _, ok := docs[0]["access"]; !ok {
		t.Fatalf("admin listing should include the access field: %v", docs[0])
	}
}

func TestAdminGetsDocumentByID(t *testing.T) {
	app := newTestApp(t)
	_, token := registerUser(t, app, "Frankie1", "frank1@example.com", 2)
	_, adminToken := registerUser(t, app, "AdminUser", "admin@example.com", 1)

	docID := createDocument(t, app, token, "doc_title", "doc_content", "role")

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/admin/document/"+docID, adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var doc map[string]any
	if err := json.Unmarshal(env.Body, &doc); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if doc["id"] != docID || doc["access"] != "role" {
		t.Fatalf("unexpected admin document body: %v", doc)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/admin/document/"+uuid.NewString(), adminToken, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for absent document, got %d", resp.Code)
	}
}

func TestAdminSearchMatchesTitleSubstringCaseInsensitively(t *testing.T) {
	app := newTestApp(t)
	_, token := registerUser(t, app, "Frankie1", "frank1@example.com", 2)
	_, adminToken := registerUser(t, app, "AdminUser", "admin@example.com", 1)

	createDocument(t, app, token, "doc_title_1", "doc_content", "private")
	createDocument(t, app, token, "Doc_Title_10", "doc_content", "public")
	createDocument(t, app, token, "unrelated title", "doc_content", "public")

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/admin/documents/search?keyword=DOC_TITLE_1", adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var docs []map[string]any
	if err := json.Unmarshal(env.Body, &docs); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(docs), docs)
	}
	for _, doc := range docs {
		title, _ := doc["title"].(string)
		if !strings.Contains(strings.ToLower(title), "doc_title_1") {
			t.Fatalf("unexpected search hit: %v", doc)
		}
	}
}
