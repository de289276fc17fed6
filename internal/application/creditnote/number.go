package creditnote

import (
	"fmt"
	"time"

	"github.com/Thaworapong/credit-note/internal/domain/entity"
)

const numberPrefix = "CNT"

// DateKey formats the per-day bucket key of the sequence log.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// GenerateNumber derives the next document number for the given day from the
// log snapshot: CNT{BuddhistYear}{MM}-{NNN}, e.g. CNT256806-001. Pure; it
// must be called again after any log change rather than cached, so a number
// shown but never committed is reused instead of skipped.
//
// The sequence is zero-padded to three digits. Past 999 issues in one day the
// field simply widens; it never wraps. A day that large is outside the
// intended use of the tool.
func GenerateNumber(today time.Time, log entity.SequenceLog) string {
	buddhistYear := today.Year() + 543
	seq := log.CountFor(DateKey(today)) + 1
	return fmt.Sprintf("%s%d%02d-%03d", numberPrefix, buddhistYear, int(today.Month()), seq)
}
