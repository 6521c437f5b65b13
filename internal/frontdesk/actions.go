package frontdesk

import (
	"encoding/json"
	"regexp"
	"strings"
)

type ActionKind string

// Known action kinds. These strings are part of the model contract and must
// round-trip exactly as written.
const (
	KindCreateAppointment     ActionKind = "create_appointment"
	KindRescheduleAppointment ActionKind = "reschedule_appointment"
	KindCancelAppointment     ActionKind = "cancel_appointment"
	KindCreateTicket          ActionKind = "create_ticket"
)

// rawAction mirrors the duck-typed objects the model emits: one flat bag of
// optional fields plus the discriminating type.
type rawAction struct {
	Type          string `json:"type"`
	PatientName   string `json:"patient_name"`
	Phone         string `json:"phone"`
	Reason        string `json:"reason"`
	Datetime      string `json:"datetime"`
	Site          string `json:"site"`
	AppointmentID string `json:"appointment_id"`
	NewDatetime   string `json:"new_datetime"`
	Topic         string `json:"topic"`
	Priority      string `json:"priority"`
}

type CreateAppointmentAction struct {
	PatientName string
	Phone       string
	Reason      string
	Datetime    string
	Site        string
}

type RescheduleAction struct {
	AppointmentID string
	NewDatetime   string
}

type CancelAction struct {
	AppointmentID string
}

type CreateTicketAction struct {
	Topic       string
	Priority    TicketPriority
	PatientName string
	Phone       string
}

// Action is the validated, tagged form of a model-emitted action. Exactly one
// of the per-kind payloads is non-nil, matching Kind.
type Action struct {
	Kind              ActionKind
	CreateAppointment *CreateAppointmentAction
	Reschedule        *RescheduleAction
	Cancel            *CancelAction
	CreateTicket      *CreateTicketAction
}

const (
	ReasonMalformedAction      = "malformed_action"
	ReasonMissingRequiredField = "missing_required_field"
	ReasonUnknownActionKind    = "unknown_action_kind"
	ReasonAppointmentNotFound  = "appointment_not_found"
	ReasonAppointmentCancelled = "appointment_cancelled"
)

// Rejection reports why one action of a batch was skipped. Rejections are
// observability data, never errors: the rest of the batch continues.
type Rejection struct {
	Index  int    `json:"index"`
	Kind   string `json:"kind,omitempty"`
	Reason string `json:"reason"`
}

var jsonBlockRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

type actionPayload struct {
	Actions []json.RawMessage `json:"actions"`
}

// ExtractActions splits a raw model reply into the user-visible text and the
// embedded action batch. Every ```json fence is stripped from the visible
// text; only the last one is decoded, on the theory that a model emitting
// several blocks corrected itself. A block that fails to decode degrades to
// "no actions": a malformed payload must never suppress the conversational
// reply.
func ExtractActions(raw string) (visible string, actions []json.RawMessage, hasActions bool) {
	visible = strings.TrimSpace(jsonBlockRe.ReplaceAllString(raw, ""))

	matches := jsonBlockRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return visible, nil, false
	}

	var payload actionPayload
	if err := json.Unmarshal([]byte(matches[len(matches)-1][1]), &payload); err != nil {
		return visible, nil, false
	}
	if len(payload.Actions) == 0 {
		return visible, nil, false
	}
	return visible, payload.Actions, true
}

// ValidateActions checks each raw action against its per-kind schema and the
// current ledger, filling defaults from the known patient identity. Validation
// runs strictly before any mutation, so referential checks see the pre-batch
// ledger: an id assigned later in the same batch cannot be referenced. A bad
// action is skipped with a Rejection and never aborts the batch.
func ValidateActions(raw []json.RawMessage, led *Ledger) ([]Action, []Rejection) {
	actions := make([]Action, 0, len(raw))
	var rejected []Rejection

	for i, r := range raw {
		var a rawAction
		if err := json.Unmarshal(r, &a); err != nil {
			rejected = append(rejected, Rejection{Index: i, Reason: ReasonMalformedAction})
			continue
		}
		act, reason := validateOne(a, led)
		if reason != "" {
			rejected = append(rejected, Rejection{Index: i, Kind: a.Type, Reason: reason})
			continue
		}
		actions = append(actions, act)
	}
	return actions, rejected
}

func validateOne(a rawAction, led *Ledger) (Action, string) {
	switch ActionKind(a.Type) {
	case KindCreateAppointment:
		datetime := strings.TrimSpace(a.Datetime)
		if datetime == "" {
			return Action{}, ReasonMissingRequiredField
		}
		return Action{Kind: KindCreateAppointment, CreateAppointment: &CreateAppointmentAction{
			PatientName: fallback(a.PatientName, led.Patient.Name),
			Phone:       fallback(a.Phone, led.Patient.Phone),
			Reason:      fallback(a.Reason, "Consultation"),
			Datetime:    datetime,
			Site:        strings.TrimSpace(a.Site),
		}}, ""

	case KindRescheduleAppointment:
		id := strings.TrimSpace(a.AppointmentID)
		nd := strings.TrimSpace(a.NewDatetime)
		if id == "" || nd == "" {
			return Action{}, ReasonMissingRequiredField
		}
		appt := led.findAppointment(id)
		if appt == nil {
			return Action{}, ReasonAppointmentNotFound
		}
		if appt.Status == StatusCancelled {
			return Action{}, ReasonAppointmentCancelled
		}
		return Action{Kind: KindRescheduleAppointment, Reschedule: &RescheduleAction{
			AppointmentID: id,
			NewDatetime:   nd,
		}}, ""

	case KindCancelAppointment:
		id := strings.TrimSpace(a.AppointmentID)
		if id == "" {
			return Action{}, ReasonMissingRequiredField
		}
		if led.findAppointment(id) == nil {
			return Action{}, ReasonAppointmentNotFound
		}
		return Action{Kind: KindCancelAppointment, Cancel: &CancelAction{AppointmentID: id}}, ""

	case KindCreateTicket:
		return Action{Kind: KindCreateTicket, CreateTicket: &CreateTicketAction{
			Topic:       fallback(a.Topic, "Demande"),
			Priority:    normalizePriority(a.Priority),
			PatientName: fallback(a.PatientName, fallback(led.Patient.Name, "Inconnu")),
			Phone:       fallback(a.Phone, led.Patient.Phone),
		}}, ""
	}

	return Action{}, ReasonUnknownActionKind
}

func fallback(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}

// normalizePriority coerces free-text priorities into the known enum; anything
// that is not "high" becomes "normal".
func normalizePriority(p string) TicketPriority {
	if strings.EqualFold(strings.TrimSpace(p), string(PriorityHigh)) {
		return PriorityHigh
	}
	return PriorityNormal
}
