// file: internals/features/services/core/engine_test.go
package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type bookingRow struct {
	BookingID     string     `gorm:"type:varchar(10);primaryKey;column:booking_id"`
	BookingName   string     `gorm:"type:varchar(150);column:booking_name"`
	BookingDate   *time.Time `gorm:"column:booking_date"`
	BookingStatus string     `gorm:"type:varchar(16);column:booking_status"`
}

func (bookingRow) TableName() string { return "bookings" }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// single in-memory connection, the pool must not fan out
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&bookingRow{}, &ServiceArchiveModel{}))
	return db
}

func seedBooking(t *testing.T, db *gorm.DB, id, name string, date *time.Time, status string) {
	t.Helper()
	require.NoError(t, db.Create(&bookingRow{
		BookingID:     id,
		BookingName:   name,
		BookingDate:   date,
		BookingStatus: status,
	}).Error)
}

func ts(s string) *time.Time {
	v, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	v = v.UTC()
	return &v
}

/* =========================
   NextID
   ========================= */

func TestNextIDEmptyTable(t *testing.T) {
	db := newTestDB(t)
	id, err := NextID(db, "bookings", "booking_id", IDWidth)
	require.NoError(t, err)
	require.Equal(t, "0000000001", id)
}

func TestNextIDIncrementsMax(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "0000000003", "a", nil, StatusPending)
	seedBooking(t, db, "0000000007", "b", nil, StatusPending)

	id, err := NextID(db, "bookings", "booking_id", IDWidth)
	require.NoError(t, err)
	require.Equal(t, "0000000008", id)
	require.Len(t, id, IDWidth)
}

/* =========================
   Duplicate check
   ========================= */

func TestCheckDuplicateCaseAndWhitespaceInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "0000000001", "  John DOE  ", nil, StatusPending)

	res, err := CheckDuplicate(db, DuplicateSpec{
		Table:    "bookings",
		IDColumn: "booking_id",
		Clauses:  []Clause{EqualFold("booking_name", "john doe")},
	})
	require.NoError(t, err)
	require.True(t, res.IsDuplicate)
	require.Equal(t, "0000000001", res.MatchedID)
}

func TestCheckDuplicateNoMatch(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "0000000001", "John Doe", nil, StatusPending)

	res, err := CheckDuplicate(db, DuplicateSpec{
		Table:    "bookings",
		IDColumn: "booking_id",
		Clauses:  []Clause{EqualFold("booking_name", "Jane Doe")},
	})
	require.NoError(t, err)
	require.False(t, res.IsDuplicate)
}

func TestCheckDuplicateExcludesOwnRecord(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "0000000001", "John Doe", nil, StatusPending)

	res, err := CheckDuplicate(db, DuplicateSpec{
		Table:     "bookings",
		IDColumn:  "booking_id",
		ExcludeID: "0000000001",
		Clauses:   []Clause{EqualFold("booking_name", "John Doe")},
	})
	require.NoError(t, err)
	require.False(t, res.IsDuplicate)
}

func TestCheckDuplicatePropagatesStoreError(t *testing.T) {
	db := newTestDB(t)
	_, err := CheckDuplicate(db, DuplicateSpec{
		Table:    "no_such_table",
		IDColumn: "booking_id",
		Clauses:  []Clause{EqualFold("booking_name", "x")},
	})
	require.Error(t, err)
}

/* =========================
   Conflict check
   ========================= */

func TestCheckConflictSameSlot(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "0000000001", "Pastor Andrew", ts("2026-10-10 09:00:00"), StatusApproved)

	res := CheckConflict(db, ConflictSpec{
		Table:        "bookings",
		IDColumn:     "booking_id",
		DateColumn:   "booking_date",
		Date:         *ts("2026-10-10 09:00:00"),
		StatusColumn: "booking_status",
		Parties: []Party{
			{Type: "pastor", Match: EqualFold("booking_name", "pastor andrew")},
		},
	})
	require.True(t, res.HasConflict)
	require.Equal(t, []string{"pastor"}, res.ConflictTypes)
	require.Equal(t, "0000000001", res.ConflictingID)
	require.Contains(t, res.Message, "pastor")
	require.Contains(t, res.Message, "0000000001")
}

func TestCheckConflictExactDatetimeOnly(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "0000000001", "Pastor Andrew", ts("2026-10-10 09:00:00"), StatusApproved)

	// one second apart is a different slot
	res := CheckConflict(db, ConflictSpec{
		Table:        "bookings",
		IDColumn:     "booking_id",
		DateColumn:   "booking_date",
		Date:         *ts("2026-10-10 09:00:01"),
		StatusColumn: "booking_status",
		Parties: []Party{
			{Type: "pastor", Match: EqualFold("booking_name", "Pastor Andrew")},
		},
	})
	require.False(t, res.HasConflict)
}

func TestCheckConflictIgnoresTerminalRecords(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "0000000001", "Pastor Andrew", ts("2026-10-10 09:00:00"), StatusCompleted)
	seedBooking(t, db, "0000000002", "Pastor Andrew", ts("2026-10-10 09:00:00"), StatusCancelled)

	res := CheckConflict(db, ConflictSpec{
		Table:        "bookings",
		IDColumn:     "booking_id",
		DateColumn:   "booking_date",
		Date:         *ts("2026-10-10 09:00:00"),
		StatusColumn: "booking_status",
		Parties: []Party{
			{Type: "pastor", Match: EqualFold("booking_name", "Pastor Andrew")},
		},
	})
	require.False(t, res.HasConflict)
}

func TestCheckConflictReportsEveryBusyParty(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "0000000001", "Pastor Andrew", ts("2026-10-10 09:00:00"), StatusApproved)
	seedBooking(t, db, "0000000002", "John Groom", ts("2026-10-10 09:00:00"), StatusPending)

	res := CheckConflict(db, ConflictSpec{
		Table:        "bookings",
		IDColumn:     "booking_id",
		DateColumn:   "booking_date",
		Date:         *ts("2026-10-10 09:00:00"),
		StatusColumn: "booking_status",
		Parties: []Party{
			{Type: "groom", Match: EqualFold("booking_name", "John Groom")},
			{Type: "pastor", Match: EqualFold("booking_name", "Pastor Andrew")},
		},
	})
	require.True(t, res.HasConflict)
	require.Equal(t, []string{"groom", "pastor"}, res.ConflictTypes)
}

func TestCheckConflictFailOpenOnStoreError(t *testing.T) {
	db := newTestDB(t)
	res := CheckConflict(db, ConflictSpec{
		Table:        "no_such_table",
		IDColumn:     "booking_id",
		DateColumn:   "booking_date",
		Date:         *ts("2026-10-10 09:00:00"),
		StatusColumn: "booking_status",
		Parties: []Party{
			{Type: "pastor", Match: EqualFold("booking_name", "Pastor Andrew")},
		},
	})
	require.False(t, res.HasConflict)
}

/* =========================
   Lifecycle
   ========================= */

func TestCanTransition(t *testing.T) {
	require.True(t, CanTransition(StatusPending, StatusApproved))
	require.True(t, CanTransition(StatusPending, StatusDisapproved))
	require.True(t, CanTransition(StatusApproved, StatusCompleted))
	require.True(t, CanTransition(StatusPending, StatusCancelled))
	require.True(t, CanTransition(StatusApproved, StatusCancelled))

	require.False(t, CanTransition(StatusPending, StatusCompleted))
	require.False(t, CanTransition(StatusCompleted, StatusCancelled))
	require.False(t, CanTransition(StatusCancelled, StatusApproved))

	// same-status writes are a no-op, never an error
	require.True(t, CanTransition(StatusApproved, StatusApproved))
}

func TestIsTerminal(t *testing.T) {
	require.True(t, IsTerminal(StatusCompleted))
	require.True(t, IsTerminal(StatusCancelled))
	require.False(t, IsTerminal(StatusDisapproved)) // still cancellable
	require.False(t, IsTerminal(StatusPending))
	require.False(t, IsTerminal(StatusApproved))
}

/* =========================
   Archive-then-delete
   ========================= */

func TestArchiveThenDelete(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "0000000005", "John Doe", ts("2026-10-10 09:00:00"), StatusApproved)

	var row bookingRow
	require.NoError(t, db.First(&row, "booking_id = ?", "0000000005").Error)
	require.NoError(t, ArchiveThenDelete(db, "booking", row.BookingID, &row))

	// original row is gone
	var count int64
	require.NoError(t, db.Model(&bookingRow{}).Where("booking_id = ?", "0000000005").Count(&count).Error)
	require.Zero(t, count)

	// archive holds the full snapshot keyed by the original id
	var arch ServiceArchiveModel
	require.NoError(t, db.First(&arch, "original_id = ? AND service_type = ?", "0000000005", "booking").Error)

	var snap bookingRow
	require.NoError(t, json.Unmarshal(arch.Snapshot, &snap))
	require.Equal(t, "John Doe", snap.BookingName)
	require.Equal(t, StatusApproved, snap.BookingStatus)
}
