package item

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// CreateItemRequest represents the POST /items body.
type CreateItemRequest struct {
	Name     string `json:"name"`
	Weather  string `json:"weather"`
	ImageURL string `json:"imageUrl"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error(`The "name" field must be filled in`),
			validation.Length(2, 30).Error(`The "name" field must be between 2 and 30 characters`),
		),
		validation.Field(&r.Weather,
			validation.Required.Error(`The "weather" field must be filled in`),
			validation.In(types.WeatherHot, types.WeatherWarm, types.WeatherCold).
				Error(`The "weather" field must be one of: hot, warm, cold`),
		),
		validation.Field(&r.ImageURL,
			validation.Required.Error(`The "imageUrl" field must be filled in`),
			is.URL.Error(`The "imageUrl" field must be a valid URL`),
		),
	)
}

// ItemResponse wraps a single item.
type ItemResponse struct {
	Data *types.ClothingItem `json:"data"`
}

// ItemListResponse wraps the public item list.
type ItemListResponse struct {
	Data []types.ClothingItem `json:"data"`
}

// DeleteResponse confirms a completed deletion.
type DeleteResponse struct {
	Message string `json:"message"`
}
