package analytics

import "time"

const (
	EventPageView     = "page_view"
	EventDishView     = "dish_view"
	EventAddToCart    = "add_to_cart"
	EventSearch       = "search"
	EventFilter       = "filter"
	EventCategoryView = "category_view"
)

// MaxBatchEvents caps a single ingest call.
const MaxBatchEvents = 100

// Event is one visitor tracking event.
type Event struct {
	ID         string            `json:"id" validate:"max=64"`
	VisitorID  string            `json:"visitorId" validate:"required,max=128"`
	SessionID  string            `json:"sessionId" validate:"required,max=128"`
	Type       string            `json:"type" validate:"required,oneof=page_view dish_view add_to_cart search filter category_view"`
	Path       string            `json:"path,omitempty" validate:"max=500"`
	DishID     string            `json:"dishId,omitempty" validate:"max=100"`
	Query      string            `json:"query,omitempty" validate:"max=255"`
	Metadata   map[string]string `json:"metadata,omitempty" validate:"max=20,dive,keys,max=64,endkeys,max=500"`
	OccurredAt time.Time         `json:"occurredAt"`
}

type Batch struct {
	Events []Event `json:"events" validate:"required,min=1,max=100,dive"`
}

// --------------------------------------------------
// DASHBOARD
// --------------------------------------------------

type Summary struct {
	From string `json:"from"`
	To   string `json:"to"`

	TotalEvents    int            `json:"totalEvents"`
	UniqueVisitors int            `json:"uniqueVisitors"`
	UniqueSessions int            `json:"uniqueSessions"`
	PageViews      int            `json:"pageViews"`
	ByType         map[string]int `json:"byType"`
	ByDay          []DayCount     `json:"byDay"`
	TopDishes      []DishStat     `json:"topDishes"`
	TopSearches    []QueryCount   `json:"topSearches"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type DishStat struct {
	DishID    string `json:"dishId"`
	Views     int    `json:"views"`
	AddToCart int    `json:"addToCart"`
}

type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}
