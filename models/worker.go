package models

import "time"

// Service categories
const (
	CategoryElectrician = "electrician"
	CategoryBuilder     = "builder"
	CategoryPlumber     = "plumber"
	CategoryCarpenter   = "carpenter"
	CategoryWhitewasher = "whitewasher"
)

// ValidCategories - the fixed category enum
var ValidCategories = []string{
	CategoryElectrician,
	CategoryBuilder,
	CategoryPlumber,
	CategoryCarpenter,
	CategoryWhitewasher,
}

// IsValidCategory - category enum check
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Worker - service-provider profile, optionally linked to a login-capable
// user through UserID
type Worker struct {
	ID            string    `json:"id"`
	UserID        *string   `json:"user_id,omitempty"`
	Name          string    `json:"name"`
	Photo         string    `json:"photo,omitempty"`
	Category      string    `json:"category"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	DailyWage     float64   `json:"daily_wage"`
	Experience    int       `json:"experience"` // years
	Location      string    `json:"location,omitempty"`
	Available     bool      `json:"available"`
	QuickResponse bool      `json:"quick_response"`
	Skills        []string  `json:"skills"`
	Description   string    `json:"description,omitempty"`
	DescriptionHi string    `json:"description_hi,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WorkerSettings - the partner-editable flags
type WorkerSettings struct {
	QuickResponse bool `json:"quick_response"`
	Available     bool `json:"available"`
}

// ToggleRequest - flag update payload
type ToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// UpdateWorkerProfileRequest - partner profile edits; nil fields untouched.
// Rating and review count are never client-writable.
type UpdateWorkerProfileRequest struct {
	DailyWage   *float64  `json:"daily_wage,omitempty" validate:"omitempty,gt=0"`
	Experience  *int      `json:"experience,omitempty" validate:"omitempty,gte=0"`
	Location    *string   `json:"location,omitempty" validate:"omitempty,max=255"`
	Skills      *[]string `json:"skills,omitempty" validate:"omitempty,dive,min=1"`
	Description *string   `json:"description,omitempty"`
}

// CategoryInfo - static category metadata with bilingual labels
type CategoryInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameHi        string `json:"name_hi"`
	Icon          string `json:"icon"`
	Description   string `json:"description"`
	DescriptionHi string `json:"description_hi"`
}

// Categories - the fixed catalog shown on the customer dashboard
var Categories = []CategoryInfo{
	{
		ID:            CategoryElectrician,
		Name:          "Electrician",
		NameHi:        "इलेक्ट्रीशियन",
		Icon:          "zap",
		Description:   "Electrical repairs and installations",
		DescriptionHi: "विद्युत मरम्मत और स्थापना",
	},
	{
		ID:            CategoryBuilder,
		Name:          "Builder",
		NameHi:        "राजमिस्त्री",
		Icon:          "hard-hat",
		Description:   "Construction and masonry work",
		DescriptionHi: "निर्माण और राजगीरी का काम",
	},
	{
		ID:            CategoryPlumber,
		Name:          "Plumber",
		NameHi:        "प्लंबर",
		Icon:          "droplet",
		Description:   "Plumbing repairs and installations",
		DescriptionHi: "प्लंबिंग मरम्मत और स्थापना",
	},
	{
		ID:            CategoryCarpenter,
		Name:          "Carpenter",
		NameHi:        "बढ़ई",
		Icon:          "hammer",
		Description:   "Woodwork and furniture",
		DescriptionHi: "लकड़ी का काम और फर्नीचर",
	},
	{
		ID:            CategoryWhitewasher,
		Name:          "Whitewasher",
		NameHi:        "पुताई वाला",
		Icon:          "paint-roller",
		Description:   "Painting and whitewashing",
		DescriptionHi: "पेंटिंग और सफेदी",
	},
}
