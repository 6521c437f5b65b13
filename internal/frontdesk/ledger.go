package frontdesk

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

type AppointmentStatus string

const (
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusCancelled   AppointmentStatus = "cancelled"
)

type TicketPriority string

const (
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
)

type Appointment struct {
	ID          string            `json:"id"`
	PatientName string            `json:"patient_name"`
	Phone       string            `json:"phone"`
	Reason      string            `json:"reason"`
	Datetime    string            `json:"datetime"`
	Site        string            `json:"site"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Ticket is an escalation to a human. Append-only, never mutated.
type Ticket struct {
	ID          string         `json:"id"`
	Topic       string         `json:"topic"`
	Priority    TicketPriority `json:"priority"`
	PatientName string         `json:"patient_name"`
	Phone       string         `json:"phone"`
	CreatedAt   time.Time      `json:"created_at"`
}

// PatientIdentity is a best-effort memo of who we are talking to, overwritten
// last-write-wins whenever an appointment supplies a name or phone.
type PatientIdentity struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Ledger holds the appointment and ticket state for one conversation session.
// It is exclusively owned: callers must not run two turns against the same
// ledger concurrently.
type Ledger struct {
	Patient      PatientIdentity `json:"patient"`
	Appointments []Appointment   `json:"appointments"`
	Tickets      []Ticket        `json:"tickets"`
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) findAppointment(id string) *Appointment {
	for i := range l.Appointments {
		if l.Appointments[i].ID == id {
			return &l.Appointments[i]
		}
	}
	return nil
}

// Apply mutates the ledger with a validated action batch, strictly in input
// order, and returns the kinds actually applied. Each action sees the
// cumulative effect of the ones before it. Appointments are never deleted;
// a cancelled appointment refuses any further reschedule, and cancelling one
// again is a harmless no-op.
func (l *Ledger) Apply(actions []Action, now time.Time) []string {
	applied := make([]string, 0, len(actions))

	for _, a := range actions {
		switch a.Kind {
		case KindCreateAppointment:
			ca := a.CreateAppointment
			appt := Appointment{
				ID:          newEntityID("R"),
				PatientName: ca.PatientName,
				Phone:       ca.Phone,
				Reason:      ca.Reason,
				Datetime:    ca.Datetime,
				Site:        ca.Site,
				Status:      StatusConfirmed,
				CreatedAt:   now,
			}
			l.Appointments = append(l.Appointments, appt)
			if appt.PatientName != "" {
				l.Patient.Name = appt.PatientName
			}
			if appt.Phone != "" {
				l.Patient.Phone = appt.Phone
			}
			applied = append(applied, string(KindCreateAppointment))

		case KindRescheduleAppointment:
			appt := l.findAppointment(a.Reschedule.AppointmentID)
			if appt == nil || appt.Status == StatusCancelled {
				continue
			}
			appt.Datetime = a.Reschedule.NewDatetime
			appt.Status = StatusRescheduled
			applied = append(applied, string(KindRescheduleAppointment))

		case KindCancelAppointment:
			appt := l.findAppointment(a.Cancel.AppointmentID)
			if appt == nil {
				continue
			}
			appt.Status = StatusCancelled
			applied = append(applied, string(KindCancelAppointment))

		case KindCreateTicket:
			ct := a.CreateTicket
			l.Tickets = append(l.Tickets, Ticket{
				ID:          newEntityID("T"),
				Topic:       ct.Topic,
				Priority:    ct.Priority,
				PatientName: ct.PatientName,
				Phone:       ct.Phone,
				CreatedAt:   now,
			})
			applied = append(applied, string(KindCreateTicket))
		}
	}

	return applied
}

// newEntityID returns a short prefixed id like "R3fa1b2c4". Uniqueness only
// needs to hold within one session's ledger.
func newEntityID(prefix string) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return prefix + hex.EncodeToString(b[:])
}
