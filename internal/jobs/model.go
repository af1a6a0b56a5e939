package jobs

import "time"

const (
	TypeFullTime = "full-time"
	TypePartTime = "part-time"
	TypeSeasonal = "seasonal"
	TypeContract = "contract"
)

// --------------------------------------------------
// JOB POSTING (PERSISTED ENTITY)
// --------------------------------------------------

type Posting struct {
	ID string `json:"id"`

	Title          string   `json:"title" validate:"required,max=255"`
	Department     string   `json:"department" validate:"required,max=255"`
	Location       string   `json:"location" validate:"required,max=255"`
	EmploymentType string   `json:"employmentType" validate:"required,oneof=full-time part-time seasonal contract"`
	Description    string   `json:"description" validate:"required"`
	Requirements   []string `json:"requirements" validate:"max=30,dive,required,max=500"`
	SalaryRange    string   `json:"salaryRange,omitempty" validate:"max=100"`

	Active bool `json:"active"`

	PostedAt  time.Time `json:"postedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
