// Package insights computes the derived views of a session collection:
// the filtered schedule list, dashboard statistics, status distribution,
// per-student earnings ranking and the calendar day buckets. Every
// function takes an immutable snapshot and returns a fresh result.
package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/KaladaranC/TutorTrack/internal/models"
)

// FilterAll matches every status.
const FilterAll = "ALL"

const defaultTopStudents = 5

// Filter returns the sessions matching the status filter and search text,
// ordered most recent first. The search matches case-insensitively against
// student name or subject; empty search matches everything. Ties on start
// time keep the collection order.
func Filter(sessions []models.Session, statusFilter, search string) []models.Session {
	needle := strings.ToLower(strings.TrimSpace(search))

	filtered := make([]models.Session, 0, len(sessions))
	for _, session := range sessions {
		if statusFilter != FilterAll && statusFilter != "" &&
			session.Status != models.SessionStatus(statusFilter) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(session.StudentName), needle) &&
			!strings.Contains(strings.ToLower(session.Subject), needle) {
			continue
		}
		filtered = append(filtered, session)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].StartTime.After(filtered[j].StartTime)
	})

	return filtered
}

// ComputeStats reduces the collection to the dashboard headline numbers.
// An empty collection yields all zeros.
func ComputeStats(sessions []models.Session, now time.Time) models.Stats {
	var stats models.Stats
	for _, session := range sessions {
		stats.TotalSessions++
		switch session.Status {
		case models.StatusPaid:
			stats.TotalEarnings += session.Rate
		case models.StatusCompleted:
			stats.PendingPayment += session.Rate
		case models.StatusScheduled:
			if session.StartTime.After(now) {
				stats.UpcomingSessions++
			}
		}
	}
	return stats
}

// StatusDistribution counts sessions per lifecycle stage in the fixed
// SCHEDULED, COMPLETED, PAID order. Stages with no sessions are omitted
// from the result, though every record is counted.
func StatusDistribution(sessions []models.Session) []models.StatusCount {
	counts := make(map[models.SessionStatus]int, len(models.AllStatuses))
	for _, session := range sessions {
		counts[session.Status]++
	}

	distribution := make([]models.StatusCount, 0, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		if counts[status] == 0 {
			continue
		}
		meta := models.MetaForStatus(status)
		distribution = append(distribution, models.StatusCount{
			Status: status,
			Label:  meta.Label,
			Color:  meta.Color,
			Count:  counts[status],
		})
	}
	return distribution
}

// TopStudents ranks students by the summed rate of their completed and
// paid sessions, highest first, truncated to limit. Scheduled sessions
// carry no realized value and are excluded. Grouping is by the exact
// student name string. Ties keep the order students were first seen in.
func TopStudents(sessions []models.Session, limit int) []models.StudentEarnings {
	if limit <= 0 {
		limit = defaultTopStudents
	}

	totals := make(map[string]float64)
	order := make([]string, 0)
	for _, session := range sessions {
		if session.Status != models.StatusCompleted && session.Status != models.StatusPaid {
			continue
		}
		if _, seen := totals[session.StudentName]; !seen {
			order = append(order, session.StudentName)
		}
		totals[session.StudentName] += session.Rate
	}

	ranked := make([]models.StudentEarnings, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, models.StudentEarnings{
			StudentName: name,
			TotalValue:  totals[name],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalValue > ranked[j].TotalValue
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// BucketByDay groups the sessions falling inside the given month into
// day-of-month buckets, each ordered by time of day. Sessions in other
// months are excluded; days without sessions are absent from the map.
func BucketByDay(
	sessions []models.Session,
	year int,
	month time.Month,
	loc *time.Location,
) map[int][]models.Session {
	if loc == nil {
		loc = time.Local
	}

	buckets := make(map[int][]models.Session)
	for _, session := range sessions {
		local := session.StartTime.In(loc)
		if local.Year() != year || local.Month() != month {
			continue
		}
		day := local.Day()
		buckets[day] = append(buckets[day], session)
	}

	for day := range buckets {
		bucket := buckets[day]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].StartTime.Before(bucket[j].StartTime)
		})
	}

	return buckets
}
