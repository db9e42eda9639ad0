// Package stats computes derived views over a report collection.
// All reducers are pure and stateless: they operate on the full in-scope
// result set handed to them and maintain nothing incrementally.
package stats

import (
	"sort"
	"time"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
)

// NamedCount is one bucket of a grouped count. Name resolution (commune or
// problem type id to display name) is the caller's concern; the reducers
// group by id and attach the name when a resolver is provided.
type NamedCount struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Count int       `json:"count"`
}

// MonthCount is the number of reports created in one calendar month.
type MonthCount struct {
	Month string `json:"month"` // "2026-01"
	Count int    `json:"count"`
}

// Overview bundles every chart the dashboards draw, computed in one pass
// over the scoped report slice.
type Overview struct {
	Total           int                           `json:"total"`
	ByStatus        map[entity.ReportStatus]int   `json:"by_status"`
	ByPriority      map[entity.ReportPriority]int `json:"by_priority"`
	TopCommunes     []NamedCount                  `json:"top_communes"`
	TopProblemTypes []NamedCount                  `json:"top_problem_types"`
	ByMonth         []MonthCount                  `json:"by_month"`
}

// CountByStatus returns a count per lifecycle state. Every state is present
// in the result, so the values always sum to len(reports).
func CountByStatus(reports []*entity.Report) map[entity.ReportStatus]int {
	counts := make(map[entity.ReportStatus]int, 4)
	for _, s := range entity.AllStatuses() {
		counts[s] = 0
	}
	for _, r := range reports {
		counts[r.Status]++
	}

	return counts
}

// CountByPriority returns a count per priority, every priority present.
func CountByPriority(reports []*entity.Report) map[entity.ReportPriority]int {
	counts := make(map[entity.ReportPriority]int, 4)
	for _, p := range entity.AllPriorities() {
		counts[p] = 0
	}
	for _, r := range reports {
		counts[r.Priority]++
	}

	return counts
}

// TopCommunes groups reports by commune and returns the n largest groups.
// Ordering is deterministic: descending count, then ascending name, so the
// output does not depend on map iteration order.
func TopCommunes(reports []*entity.Report, n int, nameOf func(uuid.UUID) string) []NamedCount {
	return topN(reports, n, nameOf, func(r *entity.Report) uuid.UUID { return r.CommuneID })
}

// TopProblemTypes groups reports by problem type, same ordering rules as TopCommunes.
func TopProblemTypes(reports []*entity.Report, n int, nameOf func(uuid.UUID) string) []NamedCount {
	return topN(reports, n, nameOf, func(r *entity.Report) uuid.UUID { return r.ProblemTypeID })
}

func topN(reports []*entity.Report, n int, nameOf func(uuid.UUID) string, keyOf func(*entity.Report) uuid.UUID) []NamedCount {
	grouped := make(map[uuid.UUID]int)
	for _, r := range reports {
		grouped[keyOf(r)]++
	}

	buckets := make([]NamedCount, 0, len(grouped))
	for id, count := range grouped {
		name := ""
		if nameOf != nil {
			name = nameOf(id)
		}
		buckets = append(buckets, NamedCount{ID: id, Name: name, Count: count})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}

		return buckets[i].Name < buckets[j].Name
	})

	if n > 0 && len(buckets) > n {
		buckets = buckets[:n]
	}

	return buckets
}

// CountByMonth groups reports by the calendar month of their creation time,
// ordered chronologically.
func CountByMonth(reports []*entity.Report) []MonthCount {
	grouped := make(map[string]int)
	for _, r := range reports {
		grouped[r.CreatedAt.Format("2006-01")]++
	}

	months := make([]MonthCount, 0, len(grouped))
	for month, count := range grouped {
		months = append(months, MonthCount{Month: month, Count: count})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

	return months
}

// Compute assembles the full overview in one call.
func Compute(reports []*entity.Report, topN int, communeName, problemTypeName func(uuid.UUID) string) *Overview {
	return &Overview{
		Total:           len(reports),
		ByStatus:        CountByStatus(reports),
		ByPriority:      CountByPriority(reports),
		TopCommunes:     TopCommunes(reports, topN, communeName),
		TopProblemTypes: TopProblemTypes(reports, topN, problemTypeName),
		ByMonth:         CountByMonth(reports),
	}
}

// Month formats a time as an aggregation month key.
func Month(t time.Time) string {
	return t.Format("2006-01")
}
