package datasets

import (
	"sort"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
)

// DayMap accumulates one subject's records as tributaries contribute their
// days. Tributaries are applied in a fixed order (activity, sleep, heart
// rate, glucose, then dataset-specific extensions) so merges are
// deterministic; their field sets are disjoint, so no tributary overwrites
// another.
type DayMap map[time.Time]*models.DailyRecord

// Day returns the record for the date, creating an empty one on first
// touch. A day seen by a single tributary still yields a record, with every
// other field missing.
func (m DayMap) Day(date time.Time) *models.DailyRecord {
	if rec, ok := m[date]; ok {
		return rec
	}
	rec := models.EmptyRecord(date)
	m[date] = rec
	return rec
}

// Sorted freezes the map into the result sequence, ascending by date. Dates
// are unique by construction.
func (m DayMap) Sorted() []*models.DailyRecord {
	records := make([]*models.DailyRecord, 0, len(m))
	for _, rec := range m {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records
}
