// file: internals/features/services/core/idgen.go
package core

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// IDWidth is the zero-pad width for sequential service ids.
const IDWidth = 10

// NextID returns MAX(id)+1 zero-padded to width. Ids are fixed-width numeric
// strings, so MAX compares lexicographically the same as numerically.
// Empty table or a non-numeric max → "0000000001". Store errors propagate.
//
// Call this inside the same transaction as the insert; two connections
// computing the next id concurrently would otherwise collide.
func NextID(tx *gorm.DB, table, idColumn string, width int) (string, error) {
	if width <= 0 {
		width = IDWidth
	}

	var maxID *string
	err := tx.Table(table).
		Select("MAX(" + idColumn + ")").
		Scan(&maxID).Error
	if err != nil {
		return "", err
	}

	var n int64
	if maxID != nil {
		if v, perr := strconv.ParseInt(strings.TrimSpace(*maxID), 10, 64); perr == nil {
			n = v
		}
	}
	return fmt.Sprintf("%0*d", width, n+1), nil
}
