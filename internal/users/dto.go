package users

import "time"

// UserResponse is the outward-facing representation of a user. The password
// hash never appears here; this is the single redaction point for user records.
type UserResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	RoleID    int       `json:"roleId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(user User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		UserName:  user.UserName,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		RoleID:    int(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ListedUserResponse is the administrative listing projection: the role is
// withheld alongside the password.
type ListedUserResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toListedResponses(list []User) []ListedUserResponse {
	out := make([]ListedUserResponse, 0, len(list))
	for _, user := range list {
		out = append(out, ListedUserResponse{
			ID:        user.ID,
			UserName:  user.UserName,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		})
	}
	return out
}

// AuthResponse is returned by register and login: a redacted user plus the token.
type AuthResponse struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	RoleID   int    `json:"roleId"`
	Token    string `json:"token"`
}

func toAuthResponse(user User, token string) AuthResponse {
	return AuthResponse{
		ID:       user.ID,
		UserName: user.UserName,
		Email:    user.Email,
		RoleID:   int(user.Role),
		Token:    token,
	}
}
