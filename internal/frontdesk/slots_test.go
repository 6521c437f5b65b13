package frontdesk

import (
	"testing"
	"time"
)

func TestGenerateSlots_Dentaire(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	slots := GenerateSlots("Dentaire", now)
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}

	wantDatetimes := []string{
		"2025-01-02T09:00",
		"2025-01-02T11:00",
		"2025-01-03T15:00",
		"2025-01-03T17:00",
		"2025-01-04T10:00",
		"2025-01-04T16:00",
	}
	for i, s := range slots {
		wantID := "S" + string(rune('1'+i))
		if s.ID != wantID {
			t.Errorf("slot %d: id=%q want %q", i, s.ID, wantID)
		}
		if s.Datetime != wantDatetimes[i] {
			t.Errorf("slot %d: datetime=%q want %q", i, s.Datetime, wantDatetimes[i])
		}
	}

	// 2025-01-02 is a Thursday.
	if slots[0].Label != "jeu. 02 janv. 09:00" {
		t.Errorf("label=%q want %q", slots[0].Label, "jeu. 02 janv. 09:00")
	}
}

func TestGenerateSlots_UnknownVerticalFallsBack(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	slots := GenerateSlots("Vétérinaire", now)
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	if slots[0].Datetime != "2025-01-02T10:00" {
		t.Errorf("first slot datetime=%q want %q", slots[0].Datetime, "2025-01-02T10:00")
	}
}

func TestGenerateSlots_DatesNonDecreasing(t *testing.T) {
	now := time.Date(2025, 3, 15, 19, 30, 0, 0, time.UTC)

	for _, vertical := range []string{"Dentaire", "Esthétique", "autre"} {
		slots := GenerateSlots(vertical, now)
		prev := ""
		for i, s := range slots {
			date := s.Datetime[:10]
			if date < prev {
				t.Errorf("%s: slot %d date %q before previous %q", vertical, i, date, prev)
			}
			prev = date
		}
	}
}

func TestGenerateSlots_PureGivenNow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	a := GenerateSlots("Esthétique", now)
	b := GenerateSlots("Esthétique", now)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs between calls: %+v vs %+v", i, a[i], b[i])
		}
	}
}
