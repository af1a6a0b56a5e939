package menu

import (
	"errors"
	"fmt"
	"math"
)

const maxLineQuantity = 50

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("quantity must be between 1 and 50")
	ErrDishUnavailable   = errors.New("dish is not available")
	ErrVariantRequired   = errors.New("variant is required for this dish")
	ErrUnknownVariant    = errors.New("unknown variant")
	ErrDishWithoutPrice  = errors.New("dish has no price")
	ErrUnknownCartDishID = errors.New("unknown dish")
)

// CartLine is one requested line of a cart.
type CartLine struct {
	DishID   string `json:"dishId"`
	Variant  string `json:"variant,omitempty"`
	Quantity int    `json:"quantity"`
}

type QuotedLine struct {
	DishID    string  `json:"dishId"`
	Name      string  `json:"name"`
	Variant   string  `json:"variant,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// CartQuote is a priced cart. All amounts are rounded to cents.
type CartQuote struct {
	Lines      []QuotedLine `json:"lines"`
	Subtotal   float64      `json:"subtotal"`
	TaxPercent float64      `json:"taxPercent"`
	Tax        float64      `json:"tax"`
	Total      float64      `json:"total"`
}

// Quote prices lines against dishes. Pure: no lookups beyond the slice.
func Quote(dishes []Dish, lines []CartLine, taxPercent float64) (*CartQuote, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	byID := make(map[string]Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}

	quote := &CartQuote{
		Lines:      make([]QuotedLine, 0, len(lines)),
		TaxPercent: taxPercent,
	}

	var subtotal float64
	for _, line := range lines {
		if line.Quantity < 1 || line.Quantity > maxLineQuantity {
			return nil, fmt.Errorf("%s: %w", line.DishID, ErrInvalidQuantity)
		}

		dish, ok := byID[line.DishID]
		if !ok {
			return nil, fmt.Errorf("%s: %w", line.DishID, ErrUnknownCartDishID)
		}
		if !dish.Available {
			return nil, fmt.Errorf("%s: %w", dish.ID, ErrDishUnavailable)
		}

		unit, err := unitPrice(dish, line.Variant)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dish.ID, err)
		}

		total := roundCents(unit * float64(line.Quantity))
		subtotal += total

		quote.Lines = append(quote.Lines, QuotedLine{
			DishID:    dish.ID,
			Name:      dish.Name,
			Variant:   line.Variant,
			Quantity:  line.Quantity,
			UnitPrice: unit,
			LineTotal: total,
		})
	}

	quote.Subtotal = roundCents(subtotal)
	quote.Tax = roundCents(quote.Subtotal * taxPercent / 100)
	quote.Total = roundCents(quote.Subtotal + quote.Tax)

	return quote, nil
}

// unitPrice follows the same rule as the price filter: variants win over
// the scalar price.
func unitPrice(d Dish, variant string) (float64, error) {
	if len(d.Variants) > 0 {
		if variant == "" {
			return 0, ErrVariantRequired
		}
		for _, v := range d.Variants {
			if v.Label == variant {
				return v.Price, nil
			}
		}
		return 0, ErrUnknownVariant
	}

	if variant != "" {
		return 0, ErrUnknownVariant
	}
	if d.Price == nil {
		return 0, ErrDishWithoutPrice
	}
	return *d.Price, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
