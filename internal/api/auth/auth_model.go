package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// Messages surfaced to clients. Login failures deliberately use one message
// for both unknown email and wrong password so account existence never
// leaks.
const (
	MsgIncorrectCredentials  = "Incorrect email or password"
	MsgAuthorizationRequired = "Authorization required"
)

// RegisterRequest represents the signup request body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error(`The "name" field must be filled in`),
			validation.Length(2, 30).Error(`The "name" field must be between 2 and 30 characters`),
		),
		validation.Field(&r.Avatar,
			validation.Required.Error(`The "avatar" field must be filled in`),
			is.URL.Error(`The "avatar" field must be a valid URL`),
		),
		validation.Field(&r.Email,
			validation.Required.Error(`The "email" field must be filled in`),
			is.Email.Error(`The "email" field must be a valid email format`),
		),
		validation.Field(&r.Password,
			validation.Required.Error(`The "password" field must be filled in`),
		),
	)
}

// LoginRequest represents the signin request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error(`The "email" field must be filled in`),
			is.Email.Error(`The "email" field must be a valid email format`),
		),
		validation.Field(&r.Password,
			validation.Required.Error(`The "password" field must be filled in`),
		),
	)
}

// LoginResponse carries the signed credential token.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterResponse wraps the created identity. The password hash is stripped
// by the User type itself.
type RegisterResponse struct {
	Data *types.User `json:"data"`
}
