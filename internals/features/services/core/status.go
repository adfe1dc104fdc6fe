// file: internals/features/services/core/status.go
package core

import "gorm.io/gorm"

/* =========================
   Status lifecycle
   ========================= */

const (
	StatusPending     = "pending"
	StatusApproved    = "approved"
	StatusDisapproved = "disapproved"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
)

// transitions: pending → approved|disapproved, approved → completed,
// cancelled reachable from any non-terminal state.
var transitions = map[string][]string{
	StatusPending:     {StatusApproved, StatusDisapproved, StatusCancelled},
	StatusApproved:    {StatusCompleted, StatusCancelled},
	StatusDisapproved: {StatusCancelled},
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusDisapproved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func IsTerminal(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition allows the listed moves plus same-status no-ops.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

/* =========================
   Summary stats
   ========================= */

type statusCount struct {
	Status string
	Total  int64
}

// StatusHistogram counts rows per status for list responses. Errors collapse
// to an empty map; the listing itself already surfaced any real store problem.
func StatusHistogram(db *gorm.DB, table, statusColumn string) map[string]int64 {
	var rows []statusCount
	stats := map[string]int64{}
	err := db.Table(table).
		Select(statusColumn + " AS status, COUNT(*) AS total").
		Group(statusColumn).
		Scan(&rows).Error
	if err != nil {
		return stats
	}
	for _, r := range rows {
		stats[r.Status] = r.Total
	}
	return stats
}
