package frontdesk

import (
	"fmt"
	"time"
)

// DatetimeLayout is the minute-precision layout used wherever an appointment
// datetime crosses the wire.
const DatetimeLayout = "2006-01-02T15:04"

// Slot is a candidate bookable time window offered to the patient. Slots are
// advisory only: the reducer never checks a chosen datetime against them.
type Slot struct {
	ID       string `json:"id"`
	Datetime string `json:"datetime"`
	Label    string `json:"label"`
}

var slotHours = map[string][]int{
	"Dentaire":   {9, 11, 15, 17, 10, 16},
	"Esthétique": {12, 14, 18, 11, 16, 19},
}

var defaultSlotHours = []int{10, 13, 15, 9, 11, 17}

// GenerateSlots proposes six candidate slots for the given vertical, two per
// calendar day starting the day after now. Unknown verticals fall back to the
// default hour list. Pure given now; no error conditions.
func GenerateSlots(vertical string, now time.Time) []Slot {
	hours, ok := slotHours[vertical]
	if !ok {
		hours = defaultSlotHours
	}

	base := now.Add(24 * time.Hour)

	slots := make([]Slot, 0, len(hours))
	for i, h := range hours {
		day := base.AddDate(0, 0, i/2)
		d := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location())
		slots = append(slots, Slot{
			ID:       fmt.Sprintf("S%d", i+1),
			Datetime: d.Format(DatetimeLayout),
			Label:    frenchLabel(d),
		})
	}
	return slots
}

var frenchWeekdays = [...]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}

var frenchMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// frenchLabel renders the fr-CH style short display string shown to patients,
// e.g. "jeu. 02 janv. 09:00".
func frenchLabel(t time.Time) string {
	return fmt.Sprintf("%s %02d %s %02d:%02d",
		frenchWeekdays[t.Weekday()], t.Day(), frenchMonths[t.Month()-1], t.Hour(), t.Minute())
}
