// Package identity forwards user administration to the Inventra backend.
// Role enforcement for mutations is the backend's job; the frontend only
// gates navigation.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/inventra/frontend/internal/domain/identity"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
)

// Passwords shorter than this are rejected before any network call.
const minPasswordLength = 8

var validate = validator.New()

// UserService handles user listing and manager-only user mutations.
type UserService struct {
	api *apiclient.Client
}

// NewUserService creates a UserService.
func NewUserService(api *apiclient.Client) *UserService {
	return &UserService{api: api}
}

// NewUserInput is the body for POST /users.
type NewUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=MANAGER CASHIER"`
}

// UpdateUserInput is the body for PUT /users/:id.
type UpdateUserInput struct {
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// List returns all users.
func (s *UserService) List(ctx context.Context, token string) ([]identity.User, error) {
	resp, err := s.api.Get(ctx, token, "/users", nil)
	if err != nil {
		return nil, err
	}
	return apiclient.Decode[[]identity.User](resp)
}

// Create forwards a new user to the backend.
func (s *UserService) Create(ctx context.Context, token string, input NewUserInput) (identity.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validate.Struct(input); err != nil {
		return identity.User{}, invalidUserInput(err)
	}

	resp, err := s.api.Post(ctx, token, "/users", input)
	if err != nil {
		return identity.User{}, err
	}
	return apiclient.Decode[identity.User](resp)
}

// Update forwards user changes to the backend.
func (s *UserService) Update(ctx context.Context, token, id string, input UpdateUserInput) (identity.User, error) {
	if id == "" {
		return identity.User{}, shared.ErrInvalidInput
	}
	resp, err := s.api.Put(ctx, token, "/users/"+id, input)
	if err != nil {
		return identity.User{}, err
	}
	return apiclient.Decode[identity.User](resp)
}

// ResetPassword sets a new password for a user. Too-short passwords are
// rejected without issuing a request.
func (s *UserService) ResetPassword(ctx context.Context, token, id, newPassword string) error {
	if id == "" {
		return shared.ErrInvalidInput
	}
	if len(newPassword) < minPasswordLength {
		return shared.NewDomainError("PASSWORD_TOO_SHORT", "Password must be at least 8 characters")
	}
	_, err := s.api.Post(ctx, token, "/users/"+id+"/reset-password", map[string]string{
		"password": newPassword,
	})
	return err
}

// invalidUserInput turns the first field failure into a user-facing message.
func invalidUserInput(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return shared.ErrInvalidInput
	}
	switch fe := fieldErrs[0]; fe.Field() {
	case "Name":
		return shared.NewDomainError("INVALID_INPUT", "Name is required")
	case "Email":
		return shared.NewDomainError("INVALID_INPUT", "A valid email is required")
	case "Password":
		return shared.NewDomainError("PASSWORD_TOO_SHORT", "Password must be at least 8 characters")
	case "Role":
		return shared.NewDomainError("INVALID_INPUT", "Role must be MANAGER or CASHIER")
	default:
		return shared.ErrInvalidInput
	}
}
