package frontdesk

import (
	"strings"
	"testing"
	"time"
)

var applyNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestApply_CreateAssignsIDAndIdentity(t *testing.T) {
	led := NewLedger()

	applied := led.Apply([]Action{{
		Kind: KindCreateAppointment,
		CreateAppointment: &CreateAppointmentAction{
			PatientName: "Jean Martin",
			Phone:       "+41 79 111 22 33",
			Reason:      "Consultation",
			Datetime:    "2025-01-02T09:00",
		},
	}}, applyNow)

	if len(applied) != 1 || applied[0] != string(KindCreateAppointment) {
		t.Fatalf("applied=%v", applied)
	}
	if len(led.Appointments) != 1 {
		t.Fatalf("appointments=%d", len(led.Appointments))
	}

	appt := led.Appointments[0]
	if !strings.HasPrefix(appt.ID, "R") || len(appt.ID) != 9 {
		t.Errorf("id=%q, want R plus 8 hex chars", appt.ID)
	}
	if appt.Status != StatusConfirmed {
		t.Errorf("status=%q want %q", appt.Status, StatusConfirmed)
	}
	if appt.CreatedAt != applyNow {
		t.Errorf("created_at=%v want %v", appt.CreatedAt, applyNow)
	}
	if led.Patient.Name != "Jean Martin" || led.Patient.Phone != "+41 79 111 22 33" {
		t.Errorf("identity not updated: %+v", led.Patient)
	}
}

func TestApply_RescheduleSetsStatus(t *testing.T) {
	led := NewLedger()
	led.Appointments = []Appointment{{ID: "Rdeadbeef", Datetime: "2025-01-02T09:00", Status: StatusConfirmed}}

	applied := led.Apply([]Action{{
		Kind:       KindRescheduleAppointment,
		Reschedule: &RescheduleAction{AppointmentID: "Rdeadbeef", NewDatetime: "2025-01-05T10:00"},
	}}, applyNow)

	if len(applied) != 1 {
		t.Fatalf("applied=%v", applied)
	}
	appt := led.Appointments[0]
	if appt.Datetime != "2025-01-05T10:00" || appt.Status != StatusRescheduled {
		t.Errorf("appointment=%+v", appt)
	}
}

func TestApply_RescheduleOfCancelledSkipped(t *testing.T) {
	led := NewLedger()
	led.Appointments = []Appointment{{ID: "Rdeadbeef", Datetime: "2025-01-02T09:00", Status: StatusCancelled}}

	applied := led.Apply([]Action{{
		Kind:       KindRescheduleAppointment,
		Reschedule: &RescheduleAction{AppointmentID: "Rdeadbeef", NewDatetime: "2025-01-05T10:00"},
	}}, applyNow)

	if len(applied) != 0 {
		t.Fatalf("applied=%v, want skip", applied)
	}
	appt := led.Appointments[0]
	if appt.Datetime != "2025-01-02T09:00" || appt.Status != StatusCancelled {
		t.Errorf("cancelled appointment mutated: %+v", appt)
	}
}

func TestApply_CancelIsTerminalNotDeleting(t *testing.T) {
	led := NewLedger()
	led.Appointments = []Appointment{{ID: "Rdeadbeef", Status: StatusRescheduled}}

	cancel := []Action{{Kind: KindCancelAppointment, Cancel: &CancelAction{AppointmentID: "Rdeadbeef"}}}

	led.Apply(cancel, applyNow)
	led.Apply(cancel, applyNow) // cancelling twice is harmless

	if len(led.Appointments) != 1 {
		t.Fatalf("appointment deleted, appointments=%d", len(led.Appointments))
	}
	if led.Appointments[0].Status != StatusCancelled {
		t.Errorf("status=%q", led.Appointments[0].Status)
	}
}

func TestApply_BatchInOrder(t *testing.T) {
	led := NewLedger()

	applied := led.Apply([]Action{
		{Kind: KindCreateAppointment, CreateAppointment: &CreateAppointmentAction{Datetime: "2025-01-02T09:00"}},
		{Kind: KindCreateTicket, CreateTicket: &CreateTicketAction{Topic: "Rappel tarifs", Priority: PriorityNormal, PatientName: "Inconnu"}},
	}, applyNow)

	want := []string{string(KindCreateAppointment), string(KindCreateTicket)}
	if len(applied) != len(want) {
		t.Fatalf("applied=%v", applied)
	}
	for i := range want {
		if applied[i] != want[i] {
			t.Errorf("applied[%d]=%q want %q", i, applied[i], want[i])
		}
	}
	if len(led.Tickets) != 1 || !strings.HasPrefix(led.Tickets[0].ID, "T") {
		t.Errorf("tickets=%+v", led.Tickets)
	}
}

// A later action sees the cumulative effect of the earlier ones: cancelling
// first makes the reducer skip the reschedule that follows.
func TestApply_CancelThenRescheduleSameBatch(t *testing.T) {
	led := NewLedger()
	led.Appointments = []Appointment{{ID: "Rdeadbeef", Datetime: "2025-01-02T09:00", Status: StatusConfirmed}}

	applied := led.Apply([]Action{
		{Kind: KindCancelAppointment, Cancel: &CancelAction{AppointmentID: "Rdeadbeef"}},
		{Kind: KindRescheduleAppointment, Reschedule: &RescheduleAction{AppointmentID: "Rdeadbeef", NewDatetime: "2025-01-05T10:00"}},
	}, applyNow)

	if len(applied) != 1 || applied[0] != string(KindCancelAppointment) {
		t.Fatalf("applied=%v", applied)
	}
	appt := led.Appointments[0]
	if appt.Status != StatusCancelled || appt.Datetime != "2025-01-02T09:00" {
		t.Errorf("appointment=%+v", appt)
	}
}

func TestApply_TicketIsAppendOnly(t *testing.T) {
	led := NewLedger()

	led.Apply([]Action{
		{Kind: KindCreateTicket, CreateTicket: &CreateTicketAction{Topic: "a", Priority: PriorityNormal}},
		{Kind: KindCreateTicket, CreateTicket: &CreateTicketAction{Topic: "b", Priority: PriorityHigh}},
	}, applyNow)

	if len(led.Tickets) != 2 {
		t.Fatalf("tickets=%d", len(led.Tickets))
	}
	if led.Tickets[0].ID == led.Tickets[1].ID {
		t.Errorf("ticket ids collide: %q", led.Tickets[0].ID)
	}
}
