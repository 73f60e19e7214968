package user

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// UpdateProfileRequest represents the PATCH /users/me body. Both fields are
// optional; present fields must still satisfy the schema.
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Length(2, 30).Error(`The "name" field must be between 2 and 30 characters`),
		),
		validation.Field(&r.Avatar,
			is.URL.Error(`The "avatar" field must be a valid URL`),
		),
	)
}

// Params converts the request into domain update parameters.
func (r UpdateProfileRequest) Params() types.UpdateProfileParams {
	return types.UpdateProfileParams{
		Name:   r.Name,
		Avatar: r.Avatar,
	}
}

// ProfileResponse wraps an identity for update responses.
type ProfileResponse struct {
	Data *types.User `json:"data"`
}
