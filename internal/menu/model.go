package menu

import "time"

// Dish is a menu item as the customer menu and the CMS see it.
//
// Price is nil when the dish has no single price. When Variants is
// non-empty it supersedes Price for every price-based rule.
type Dish struct {
	ID         string    `json:"id" validate:"required,max=100"`
	CategoryID string    `json:"categoryId" validate:"required,max=100"`
	Name       string    `json:"name" validate:"required,max=255"`
	ShortDesc  string    `json:"shortDesc" validate:"max=500"`
	FullDesc   string    `json:"fullDesc,omitempty" validate:"max=4000"`
	Price      *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Variants   []Variant `json:"variants,omitempty" validate:"max=20,dive"`
	DietTags   []string  `json:"dietTags" validate:"dive,required,max=50"`
	Allergens  []string  `json:"allergens" validate:"dive,required,max=50"`
	Available  bool      `json:"available"`
	ImageURL   string    `json:"imageUrl,omitempty"`

	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Variant is an alternatively priced version of a dish (size, portion).
type Variant struct {
	Label string  `json:"label" validate:"required,max=100"`
	Price float64 `json:"price" validate:"gte=0"`
}

type Category struct {
	ID        string `json:"id" validate:"required,max=100"`
	Name      string `json:"name" validate:"required,max=255"`
	SortOrder int    `json:"sortOrder"`
}

// PriceBucket is one of the fixed price range filters. The zero value
// means no bucket is selected.
type PriceBucket string

const (
	BucketNone     PriceBucket = ""
	BucketLTE10    PriceBucket = "lte10"
	BucketBTW11_20 PriceBucket = "btw11_20"
	BucketGT20     PriceBucket = "gt20"
)

// FilterState describes the active menu query. A nil SelectedCategory
// means all categories.
type FilterState struct {
	Search            string      `json:"search"`
	SelectedCategory  *string     `json:"selectedCategory,omitempty"`
	ActiveDietFilters []string    `json:"activeDietFilters"`
	AvailabilityOnly  bool        `json:"availabilityOnly"`
	PriceBucket       PriceBucket `json:"priceBucket,omitempty"`
}

// priceRange returns the min and max price of d. ok is false when the dish
// carries no price information at all.
func (d Dish) priceRange() (min, max float64, ok bool) {
	if len(d.Variants) > 0 {
		min, max = d.Variants[0].Price, d.Variants[0].Price
		for _, v := range d.Variants[1:] {
			if v.Price < min {
				min = v.Price
			}
			if v.Price > max {
				max = v.Price
			}
		}
		return min, max, true
	}
	if d.Price != nil {
		return *d.Price, *d.Price, true
	}
	return 0, 0, false
}
