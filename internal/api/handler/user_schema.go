package handler

import "github.com/mateosvilasboas/infog2-crud/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// createUserRequest is the admin-only creation payload (explicit role).
type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	CPF      string `json:"cpf"      validate:"required,len=11"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required"`
}

// registerClientRequest is the open self-registration payload; the role is
// always forced to client.
type registerClientRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	CPF      string `json:"cpf"      validate:"required,len=11"`
	Password string `json:"password" validate:"required"`
}

// updateUserRequest is the self-service profile update. Password is optional;
// empty means "keep the current one".
type updateUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password"`
}

// userResponse is the public view of a user. The password hash and deletion
// metadata are never exposed.
type userResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
	Role  string `json:"role"`
}

type userListResponse struct {
	Users []userResponse `json:"users"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		CPF:   u.CPF,
		Role:  u.Role,
	}
}
