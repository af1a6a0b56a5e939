package content

import "time"

// Footer is the site-wide footer block.
type Footer struct {
	CompanyName  string       `json:"companyName" validate:"required,max=255"`
	Tagline      string       `json:"tagline" validate:"max=500"`
	Address      string       `json:"address" validate:"max=500"`
	Phone        string       `json:"phone" validate:"max=50"`
	Email        string       `json:"email" validate:"omitempty,email"`
	OpeningHours []string     `json:"openingHours" validate:"max=14,dive,required,max=120"`
	SocialLinks  []SocialLink `json:"socialLinks" validate:"max=20,dive"`

	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

type SocialLink struct {
	Platform string `json:"platform" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,url"`
}

// LegalType names one of the fixed legal pages.
type LegalType string

const (
	LegalPrivacy       LegalType = "privacy"
	LegalTerms         LegalType = "terms"
	LegalCookies       LegalType = "cookies"
	LegalAccessibility LegalType = "accessibility"
	LegalRefund        LegalType = "refund"
)

var legalTypes = map[LegalType]bool{
	LegalPrivacy:       true,
	LegalTerms:         true,
	LegalCookies:       true,
	LegalAccessibility: true,
	LegalRefund:        true,
}

func ParseLegalType(s string) (LegalType, error) {
	t := LegalType(s)
	if !legalTypes[t] {
		return "", ErrUnknownLegalType
	}
	return t, nil
}

// LegalPage is an ordered list of titled sections.
type LegalPage struct {
	Type     LegalType `json:"type"`
	Title    string    `json:"title" validate:"required,max=255"`
	Sections []Section `json:"sections" validate:"required,min=1,max=100,dive"`

	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

type Section struct {
	Heading string `json:"heading" validate:"required,max=255"`
	Body    string `json:"body" validate:"required"`
}

// Document is the stored form of any CMS block.
type Document struct {
	Name      string
	Body      []byte
	UpdatedBy string
	UpdatedAt time.Time
}

const footerDocument = "footer"

func legalDocument(t LegalType) string {
	return "legal/" + string(t)
}
