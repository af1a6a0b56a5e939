package analytics

import (
	"sort"
	"strings"
)

const (
	dayLayout = "2006-01-02"
	topN      = 10
)

// Summarize aggregates events for the dashboard. It does not look at the
// clock; days are UTC calendar days.
func Summarize(events []Event) Summary {
	s := Summary{
		ByType:      make(map[string]int),
		ByDay:       []DayCount{},
		TopDishes:   []DishStat{},
		TopSearches: []QueryCount{},
	}

	visitors := make(map[string]struct{})
	sessions := make(map[string]struct{})
	days := make(map[string]int)
	dishes := make(map[string]*DishStat)
	queries := make(map[string]int)

	for _, e := range events {
		s.TotalEvents++
		s.ByType[e.Type]++
		visitors[e.VisitorID] = struct{}{}
		sessions[e.SessionID] = struct{}{}
		days[e.OccurredAt.UTC().Format(dayLayout)]++

		switch e.Type {
		case EventPageView:
			s.PageViews++
		case EventDishView, EventAddToCart:
			if e.DishID == "" {
				continue
			}
			st, ok := dishes[e.DishID]
			if !ok {
				st = &DishStat{DishID: e.DishID}
				dishes[e.DishID] = st
			}
			if e.Type == EventDishView {
				st.Views++
			} else {
				st.AddToCart++
			}
		case EventSearch:
			if q := strings.ToLower(strings.TrimSpace(e.Query)); q != "" {
				queries[q]++
			}
		}
	}

	s.UniqueVisitors = len(visitors)
	s.UniqueSessions = len(sessions)

	for day, n := range days {
		s.ByDay = append(s.ByDay, DayCount{Day: day, Count: n})
	}
	sort.Slice(s.ByDay, func(i, j int) bool { return s.ByDay[i].Day < s.ByDay[j].Day })

	for _, st := range dishes {
		s.TopDishes = append(s.TopDishes, *st)
	}
	sort.Slice(s.TopDishes, func(i, j int) bool {
		a, b := s.TopDishes[i], s.TopDishes[j]
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		if a.AddToCart != b.AddToCart {
			return a.AddToCart > b.AddToCart
		}
		return a.DishID < b.DishID
	})
	if len(s.TopDishes) > topN {
		s.TopDishes = s.TopDishes[:topN]
	}

	for q, n := range queries {
		s.TopSearches = append(s.TopSearches, QueryCount{Query: q, Count: n})
	}
	sort.Slice(s.TopSearches, func(i, j int) bool {
		a, b := s.TopSearches[i], s.TopSearches[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Query < b.Query
	})
	if len(s.TopSearches) > topN {
		s.TopSearches = s.TopSearches[:topN]
	}

	return s
}
