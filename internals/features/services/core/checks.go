// file: internals/features/services/core/checks.go
package core

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

/* =========================
   Duplicate check
   ========================= */

// Clause is a prepared WHERE fragment. Callers build these so the checks stay
// generic over the four service tables.
type Clause struct {
	Query string
	Args  []any
}

// EqualFold builds a trimmed, case-insensitive equality clause for a text
// column.
func EqualFold(column, value string) Clause {
	return Clause{
		Query: "LOWER(TRIM(" + column + ")) = LOWER(?)",
		Args:  []any{strings.TrimSpace(value)},
	}
}

// Equal builds a plain equality clause (ids, dates).
func Equal(column string, value any) Clause {
	return Clause{Query: column + " = ?", Args: []any{value}}
}

type DuplicateSpec struct {
	Table     string
	IDColumn  string
	Clauses   []Clause // requester + subject + key date, ANDed
	ExcludeID string   // set on update so a record does not match itself
}

type DuplicateResult struct {
	IsDuplicate bool
	MatchedID   string
}

// CheckDuplicate reports whether a materially identical request already
// exists. Store errors propagate; create paths treat them as fatal.
func CheckDuplicate(db *gorm.DB, spec DuplicateSpec) (DuplicateResult, error) {
	q := db.Table(spec.Table)
	for _, cl := range spec.Clauses {
		q = q.Where(cl.Query, cl.Args...)
	}
	if spec.ExcludeID != "" {
		q = q.Where(spec.IDColumn+" <> ?", spec.ExcludeID)
	}

	var ids []string
	if err := q.Select(spec.IDColumn).Limit(1).Scan(&ids).Error; err != nil {
		return DuplicateResult{}, err
	}
	if len(ids) == 0 {
		return DuplicateResult{}, nil
	}
	return DuplicateResult{IsDuplicate: true, MatchedID: ids[0]}, nil
}

/* =========================
   Conflict check
   ========================= */

// Party is one side of a booking to test for double-booking: a member, a
// groom/bride, or the officiating pastor. Match is how that party is stored
// (member id equality, or case-insensitive name equality for free-text
// parties).
type Party struct {
	Type  string // reported in ConflictTypes, e.g. "member", "groom", "pastor"
	Match Clause
}

type ConflictSpec struct {
	Table        string
	IDColumn     string
	DateColumn   string
	Date         any // exact scheduled datetime
	StatusColumn string
	Parties      []Party
	ExcludeID    string
}

type ConflictResult struct {
	HasConflict   bool
	ConflictTypes []string
	Message       string
	ConflictingID string
}

// activeStatuses: completed/cancelled records never block a slot.
var inactiveStatuses = []string{StatusCompleted, StatusCancelled}

// CheckConflict tests each party independently against (party = ?, date = ?)
// over active records, so simultaneous conflicts (groom AND pastor busy) are
// all reported. Store errors are fail-open: logged, treated as no conflict
// for that party.
func CheckConflict(db *gorm.DB, spec ConflictSpec) ConflictResult {
	res := ConflictResult{}
	for _, p := range spec.Parties {
		q := db.Table(spec.Table).
			Where(spec.DateColumn+" = ?", spec.Date).
			Where(p.Match.Query, p.Match.Args...)
		if spec.StatusColumn != "" {
			q = q.Where(spec.StatusColumn+" NOT IN ?", inactiveStatuses)
		}
		if spec.ExcludeID != "" {
			q = q.Where(spec.IDColumn+" <> ?", spec.ExcludeID)
		}

		var ids []string
		if err := q.Select(spec.IDColumn).Limit(1).Scan(&ids).Error; err != nil {
			log.Printf("[WARN] conflict check on %s (%s) failed, allowing: %v", spec.Table, p.Type, err)
			continue
		}
		if len(ids) == 0 {
			continue
		}
		res.HasConflict = true
		res.ConflictTypes = append(res.ConflictTypes, p.Type)
		if res.ConflictingID == "" {
			res.ConflictingID = ids[0]
		}
	}
	if res.HasConflict {
		res.Message = fmt.Sprintf(
			"Schedule conflict: %s already booked on the requested date (record %s)",
			strings.Join(res.ConflictTypes, ", "), res.ConflictingID,
		)
	}
	return res
}
