package trainers

import (
	"errors"
	"time"

	"github.com/fitcoach/backend/pkg"
)

var ErrTrainerNotFound = errors.New("trainer_not_found")

// Profile is the public card a user fills in when applying to become a
// trainer. HeroURL holds the CV link.
type Profile struct {
	UserID           int64     `json:"user_id"`
	Headline         *string   `json:"headline"`
	Bio              *string   `json:"bio"`
	YearsExperience  *int      `json:"years_experience"`
	Location         *string   `json:"location"`
	PriceFrom        *float64  `json:"price_from"`
	Languages        []string  `json:"languages"`
	Specialties      []string  `json:"specialties"`
	Certifications   []string  `json:"certifications"`
	HeroURL          *string   `json:"hero_url"`
	ContactURL       *string   `json:"contact_url"`
	TelegramUsername *string   `json:"telegram_username"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Trainer is a trainer (or applicant) with their profile, if any.
type Trainer struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Username *string  `json:"username"`
	PhotoURL *string  `json:"photo_url"`
	Profile  *Profile `json:"profile"`
}

type CatalogueFilter struct {
	Page          int
	Limit         int
	Search        string
	Specialty     string
	Location      string
	Language      string
	MinExperience int
}

type CataloguePage struct {
	Trainers   []Trainer      `json:"trainers"`
	Pagination pkg.Pagination `json:"pagination"`
}
