package documents

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"dms-backend/internal/shared/server/middleware"
	"dms-backend/internal/shared/server/respond"
)

const (
	titleMinLen   = 5
	titleMaxLen   = 50
	contentMinLen = 5
)

// Handler wires HTTP handlers to the documents service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the token-protected document routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/document/create", h.create)
	rg.GET("/documents", h.listOwn)
	rg.PUT("/document/update/:id", h.update)
	rg.DELETE("/document/delete/:id", h.delete)
}

// RegisterAdminRoutes attaches the administrator-only document routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.adminList)
	rg.GET("/document/:id", h.adminGet)
	rg.GET("/documents/search", h.adminSearch)
}

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Access  string `json:"access"`
}

func (h *Handler) create(c *gin.Context) {
	identity, _ := middleware.IdentityFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Access = strings.TrimSpace(req.Access)

	if msg, ok := validateCreate(req); !ok {
		respond.BadRequest(c, msg)
		return
	}

	doc, err := h.Svc.Create(c.Request.Context(), identity, CreateInput{
		Title:   req.Title,
		Content: req.Content,
		Access:  Access(req.Access),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrOwnerNotFound):
			respond.NotFound(c, "User with this ID not found")
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Created(c, "New document has been created successfully", toResponse(doc))
}

func (h *Handler) listOwn(c *gin.Context) {
	identity, _ := middleware.IdentityFromContext(c)

	docs, err := h.Svc.ListOwn(c.Request.Context(), identity)
	if err != nil {
		switch {
		case errors.Is(err, ErrOwnerNotFound):
			respond.NotFound(c, "User with this ID not found")
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, "Successfully retrieved documents", toOwnedResponses(docs))
}

type updateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) update(c *gin.Context) {
	identity, _ := middleware.IdentityFromContext(c)
	id := c.Param("id")

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)

	if msg, ok := validateUpdate(req); !ok {
		respond.BadRequest(c, msg)
		return
	}

	doc, err := h.Svc.Update(c.Request.Context(), identity, id, UpdateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "Document with this ID does not exist")
		case errors.Is(err, ErrNotAuthorized):
			respond.NotAuthorized(c, "You are not authorized to update this document")
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, "Document has been successfully updated", toResponse(doc))
}

func (h *Handler) delete(c *gin.Context) {
	identity, _ := middleware.IdentityFromContext(c)
	id := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), identity, id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "Document with this ID is not found")
		case errors.Is(err, ErrNotAuthorized):
			respond.NotAuthorized(c, "You are not authorized to delete this document")
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, "Document has been successfully deleted", nil)
}

func (h *Handler) adminList(c *gin.Context) {
	docs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.InternalError(c)
		return
	}
	respond.Success(c, "Successfully retrieved all documents", toResponses(docs))
}

func (h *Handler) adminGet(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "Document with the ID "+id+" not found")
		default:
			respond.InternalError(c)
		}
		return
	}
	respond.Success(c, "Successfully retrieved document with ID "+id, toResponse(doc))
}

func (h *Handler) adminSearch(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	docs, err := h.Svc.Search(c.Request.Context(), keyword)
	if err != nil {
		respond.InternalError(c)
		return
	}
	respond.Success(c, "Successfully searched documents", toResponses(docs))
}

func validateCreate(req createRequest) (string, bool) {
	if msg, ok := validateTitle(req.Title); !ok {
		return msg, false
	}
	if msg, ok := validateContent(req.Content); !ok {
		return msg, false
	}
	if req.Access == "" {
		return `"access" is required`, false
	}
	if !Access(req.Access).Valid() {
		return `"access" must be one of private, public, role`, false
	}
	return "", true
}

func validateUpdate(req updateRequest) (string, bool) {
	if msg, ok := validateTitle(req.Title); !ok {
		return msg, false
	}
	return validateContent(req.Content)
}

func validateTitle(title string) (string, bool) {
	if title == "" {
		return `"title" is required`, false
	}
	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		return `"title" must be between 5 and 50 characters`, false
	}
	return "", true
}

func validateContent(content string) (string, bool) {
	if content == "" {
		return `"content" is required`, false
	}
	if utf8.RuneCountInString(content) < contentMinLen {
		return `"content" must be at least 5 characters`, false
	}
	return "", true
}
