package creditnote_test

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Thaworapong/credit-note/internal/application/creditnote"
	"github.com/Thaworapong/credit-note/internal/domain/entity"
)

var numberPattern = regexp.MustCompile(`^CNT\d{4}\d{2}-\d{3}$`)

func recordOn(dateKey string) entity.DocumentRecord {
	return entity.DocumentRecord{DocumentNumber: "CNT", IssueDate: dateKey}
}

// First number of an empty day uses the Buddhist year and sequence 001.
func TestGenerateNumber_FirstOfDay(t *testing.T) {
	today := time.Date(2025, time.June, 25, 10, 0, 0, 0, time.UTC)

	got := creditnote.GenerateNumber(today, entity.SequenceLog{})

	assert.Equal(t, "CNT256806-001", got)
	assert.Regexp(t, numberPattern, got)
}

// One committed export advances the next preview by exactly one.
func TestGenerateNumber_AdvancesWithLog(t *testing.T) {
	day := time.Date(2025, time.January, 15, 9, 30, 0, 0, time.UTC)
	log := entity.SequenceLog{}

	first := creditnote.GenerateNumber(day, log)
	assert.Equal(t, "CNT256801-001", first)

	log["2025-01-15"] = append(log["2025-01-15"], recordOn("2025-01-15"))
	second := creditnote.GenerateNumber(day, log)
	assert.Equal(t, "CNT256801-002", second)
}

// Numbers on the same day are strictly increasing by one and zero-padded.
func TestGenerateNumber_StrictlyIncreasing(t *testing.T) {
	day := time.Date(2025, time.November, 3, 8, 0, 0, 0, time.UTC)
	log := entity.SequenceLog{}

	for i := 1; i <= 12; i++ {
		got := creditnote.GenerateNumber(day, log)
		assert.Equal(t, fmt.Sprintf("CNT256811-%03d", i), got)
		log["2025-11-03"] = append(log["2025-11-03"], recordOn("2025-11-03"))
	}
}

// Another day's records do not leak into today's sequence.
func TestGenerateNumber_ScopedPerDay(t *testing.T) {
	log := entity.SequenceLog{
		"2025-01-14": {recordOn("2025-01-14"), recordOn("2025-01-14")},
	}
	today := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "CNT256801-001", creditnote.GenerateNumber(today, log))
}

// Past 999 the sequence field widens instead of wrapping.
func TestGenerateNumber_WidensPast999(t *testing.T) {
	day := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	log := entity.SequenceLog{}
	bucket := make([]entity.DocumentRecord, 999)
	log["2025-03-01"] = bucket

	assert.Equal(t, "CNT256803-1000", creditnote.GenerateNumber(day, log))
}

func TestDateKey(t *testing.T) {
	d := time.Date(2025, time.January, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-05", creditnote.DateKey(d))
}
