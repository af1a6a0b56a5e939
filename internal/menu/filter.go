package menu

import (
	"strconv"
	"strings"
)

// Evaluate returns the dishes that satisfy every active filter in
// filters, in input order. It never mutates its arguments and never
// returns nil.
func Evaluate(dishes []Dish, filters FilterState) []Dish {
	query := strings.ToLower(strings.TrimSpace(filters.Search))

	var diet map[string]struct{}
	if len(filters.ActiveDietFilters) > 0 {
		diet = make(map[string]struct{}, len(filters.ActiveDietFilters))
		for _, tag := range filters.ActiveDietFilters {
			diet[tag] = struct{}{}
		}
	}

	out := make([]Dish, 0, len(dishes))
	for _, d := range dishes {
		if query != "" && !matchesSearch(d, query) {
			continue
		}
		if filters.SelectedCategory != nil && d.CategoryID != *filters.SelectedCategory {
			continue
		}
		if diet != nil && !hasAllTags(d.DietTags, diet) {
			continue
		}
		if filters.AvailabilityOnly && !d.Available {
			continue
		}
		if filters.PriceBucket != BucketNone && !inBucket(d, filters.PriceBucket) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// matchesSearch checks each searchable field on its own; query is
// already lowercased.
func matchesSearch(d Dish, query string) bool {
	fields := [...]string{
		d.Name,
		d.ShortDesc,
		d.FullDesc,
		strings.Join(d.Allergens, " "),
		variantText(d.Variants),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func variantText(variants []Variant) string {
	parts := make([]string, len(variants))
	for i, v := range variants {
		parts[i] = v.Label + " " + formatPrice(v.Price)
	}
	return strings.Join(parts, " ")
}

// formatPrice renders the shortest decimal form: 9, 12.5, 20.01.
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func hasAllTags(tags []string, want map[string]struct{}) bool {
	have := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		have[t] = struct{}{}
	}
	for t := range want {
		if _, ok := have[t]; !ok {
			return false
		}
	}
	return true
}

// inBucket uses range overlap: a dish spanning 9..15 sits in both lte10
// and btw11_20. A dish without any price is in no bucket.
func inBucket(d Dish, bucket PriceBucket) bool {
	min, max, ok := d.priceRange()
	if !ok {
		return false
	}

	switch bucket {
	case BucketLTE10:
		return min <= 10
	case BucketBTW11_20:
		return max >= 11 && min <= 20
	case BucketGT20:
		return max > 20
	default:
		return false
	}
}
