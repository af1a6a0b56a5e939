package menu

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidFilter = errors.New("invalid filter")

// ParsePriceBucket maps a query value to a bucket. Empty input is
// BucketNone.
func ParsePriceBucket(s string) (PriceBucket, error) {
	switch b := PriceBucket(strings.TrimSpace(s)); b {
	case BucketNone, BucketLTE10, BucketBTW11_20, BucketGT20:
		return b, nil
	default:
		return BucketNone, fmt.Errorf("%w: unknown price bucket %q", ErrInvalidFilter, s)
	}
}

// ParseFilterState builds a FilterState from menu query parameters:
//
//	search=edamame&category=starters&diet=vegan,vegetarian&available=true&price=lte10
//
// diet may also be repeated.
func ParseFilterState(q url.Values) (FilterState, error) {
	var fs FilterState

	fs.Search = q.Get("search")

	if c := strings.TrimSpace(q.Get("category")); c != "" && c != "all" {
		fs.SelectedCategory = &c
	}

	seen := map[string]bool{}
	for _, raw := range q["diet"] {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			fs.ActiveDietFilters = append(fs.ActiveDietFilters, tag)
		}
	}

	if a := q.Get("available"); a != "" {
		v, err := strconv.ParseBool(a)
		if err != nil {
			return FilterState{}, fmt.Errorf("%w: available must be true or false", ErrInvalidFilter)
		}
		fs.AvailabilityOnly = v
	}

	bucket, err := ParsePriceBucket(q.Get("price"))
	if err != nil {
		return FilterState{}, err
	}
	fs.PriceBucket = bucket

	return fs, nil
}
