package types

import (
	"time"

	"github.com/google/uuid"
)

// Weather tags accepted for a clothing item.
const (
	WeatherHot  = "hot"
	WeatherWarm = "warm"
	WeatherCold = "cold"
)

// ClothingItem is an owned resource. Owner is fixed at creation; Likes is a
// set, each user appears at most once.
type ClothingItem struct {
	ID        uuid.UUID   `json:"id"`
	OwnerID   uuid.UUID   `json:"owner"`
	Name      string      `json:"name"`
	Weather   string      `json:"weather"`
	ImageURL  string      `json:"imageUrl"`
	Likes     []uuid.UUID `json:"likes"`
	CreatedAt time.Time   `json:"createdAt"`
}
