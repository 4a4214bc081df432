package users

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"dms-backend/internal/shared/auth"
	"dms-backend/internal/shared/server/middleware"
	"dms-backend/internal/shared/server/respond"
)

var passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Handler wires HTTP handlers to the users service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches the unauthenticated account routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.POST("/forgot-password", h.forgotPassword)
	rg.POST("/reset-password/:token", h.resetPassword)
}

// RegisterRoutes attaches the token-protected self-service routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/me/update", h.updateProfile)
	rg.GET("/logout", h.logout)
}

// RegisterAdminRoutes attaches the administrator-only routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.adminList)
	rg.GET("/user/:id", h.adminGet)
	rg.GET("/users/search", h.adminSearch)
	rg.DELETE("/delete/user/:id", h.adminDelete)
}

type registerRequest struct {
	UserName  string `json:"userName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	RoleID    int    `json:"roleId"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}

	req.UserName = strings.TrimSpace(req.UserName)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	if msg, ok := validateRegister(req); !ok {
		respond.BadRequest(c, msg)
		return
	}

	user, token, err := h.Svc.Register(c.Request.Context(), RegisterInput{
		UserName:  req.UserName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      auth.Role(req.RoleID),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			respond.BadRequest(c, "User already exists")
		default:
			respond.InternalError(c)
		}
		return
	}

	c.Header(middleware.TokenHeader, token)
	respond.Created(c, "Successfully registered new user", toAuthResponse(user, token))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if req.Email == "" {
		respond.BadRequest(c, `"email" is required`)
		return
	}
	if req.Password == "" {
		respond.BadRequest(c, `"password" is required`)
		return
	}

	user, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "Email address does not exist")
		case errors.Is(err, ErrBadCredentials):
			respond.BadRequest(c, "Password does not match")
		default:
			respond.InternalError(c)
		}
		return
	}

	c.Header(middleware.TokenHeader, token)
	respond.Success(c, "Successfully logged in", toAuthResponse(user, token))
}

func (h *Handler) me(c *gin.Context) {
	identity, _ := middleware.IdentityFromContext(c)

	user, err := h.Svc.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "User with this ID not found")
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, "Successful Operation", toResponse(user))
}

type profileRequest struct {
	UserName  string `json:"userName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	identity, _ := middleware.IdentityFromContext(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}

	req.UserName = strings.TrimSpace(req.UserName)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	for _, field := range []struct{ name, value string }{
		{"userName", req.UserName},
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
	} {
		if field.value == "" {
			respond.BadRequest(c, `"`+field.name+`" is required`)
			return
		}
	}
	if !validEmail(req.Email) {
		respond.BadRequest(c, `"email" must be a valid email address`)
		return
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), identity.UserID, ProfileInput{
		UserName:  req.UserName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "User with this ID not found")
		case errors.Is(err, ErrEmailTaken):
			respond.BadRequest(c, "User already exists")
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, "User details have been successfully updated", toResponse(user))
}

// logout is stateless: tokens are not persisted server-side, so there is
// nothing to clear.
func (h *Handler) logout(c *gin.Context) {
	respond.Success(c, "You have logged out successfully", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		respond.BadRequest(c, `"email" is required`)
		return
	}

	token, err := h.Svc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "Email address does not exist")
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, "Password reset token generated", gin.H{"resetToken": token})
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	if msg, ok := validatePassword(req.Password); !ok {
		respond.BadRequest(c, msg)
		return
	}

	err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrResetExpired):
			respond.BadRequest(c, "Reset token is invalid or expired")
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, "Password has been successfully reset", nil)
}

func (h *Handler) adminList(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.InternalError(c)
		return
	}
	respond.Success(c, "Successfully retrieved all users", toListedResponses(list))
}

func (h *Handler) adminGet(c *gin.Context) {
	id := c.Param("id")
	user, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "User with the ID "+id+" not found")
		default:
			respond.InternalError(c)
		}
		return
	}
	respond.Success(c, "Successfully retrieved user with ID "+id, toResponse(user))
}

func (h *Handler) adminSearch(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	list, err := h.Svc.Search(c.Request.Context(), keyword)
	if err != nil {
		respond.InternalError(c)
		return
	}
	respond.Success(c, "Successfully searched users", toListedResponses(list))
}

func (h *Handler) adminDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "User with ID "+id+" is not found")
		default:
			respond.InternalError(c)
		}
		return
	}
	respond.Success(c, "Successfully deleted user with ID "+id, nil)
}

func validateRegister(req registerRequest) (string, bool) {
	for _, field := range []struct{ name, value string }{
		{"userName", req.UserName},
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
	} {
		if field.value == "" {
			return `"` + field.name + `" is required`, false
		}
	}
	if !validEmail(req.Email) {
		return `"email" must be a valid email address`, false
	}
	if msg, ok := validatePassword(req.Password); !ok {
		return msg, false
	}
	if req.RoleID == 0 {
		return `"roleId" is required`, false
	}
	if !auth.Role(req.RoleID).Valid() {
		return `"roleId" must be a valid role`, false
	}
	return "", true
}

func validatePassword(password string) (string, bool) {
	if password == "" {
		return `"password" is required`, false
	}
	if len(password) < 6 {
		return `"password" must be at least 6 characters`, false
	}
	if !passwordPattern.MatchString(password) {
		return `"password" must contain only letters and digits`, false
	}
	return "", true
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
