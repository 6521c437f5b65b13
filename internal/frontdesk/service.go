package frontdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/ai"
)

// Notifier receives escalation tickets once they are applied to a ledger.
// Delivery is best effort: a failure is logged and never fails the turn.
type Notifier interface {
	NotifyTicket(ctx context.Context, sessionID string, t Ticket) error
}

// Transcript records conversation messages for audit. Best effort as well.
type Transcript interface {
	Record(ctx context.Context, sessionID, role, content string) error
}

// TurnResult is everything an external renderer needs after one turn.
type TurnResult struct {
	Reply          string        `json:"reply"`
	ActionsApplied []string      `json:"actions_applied"`
	Rejections     []Rejection   `json:"rejections,omitempty"`
	Appointments   []Appointment `json:"appointments"`
	Tickets        []Ticket      `json:"tickets"`
	Slots          []Slot        `json:"slots"`
}

// Service orchestrates one conversation turn: build the model request from
// ledger state, call the provider, extract and validate the action batch, and
// apply it to the ledger. The ledger is only mutated after the model call
// succeeded and the batch validated, so a failed turn leaves no trace.
type Service struct {
	provider   ai.Provider
	notifier   Notifier   // optional
	transcript Transcript // optional
	now        func() time.Time
}

func NewService(provider ai.Provider, notifier Notifier, transcript Transcript) *Service {
	return &Service{
		provider:   provider,
		notifier:   notifier,
		transcript: transcript,
		now:        time.Now,
	}
}

// userPayload is the structured user message sent alongside the system prompt,
// carrying the whole session state the model needs.
type userPayload struct {
	Vertical             string          `json:"vertical"`
	PatientKnown         PatientIdentity `json:"patient_known"`
	AvailableSlots       []Slot          `json:"available_slots"`
	ExistingAppointments []Appointment   `json:"existing_appointments"`
	ExistingTickets      []Ticket        `json:"existing_tickets"`
	UserMessage          string          `json:"user_message"`
	Instructions         string          `json:"instructions"`
}

const rebookInstructions = "Pour déplacer/annuler, demande à l'utilisateur de copier l'ID depuis la colonne 'ID' (Agenda)."

// ProcessTurn runs one chat turn against the given ledger. The caller owns the
// ledger and must serialize turns per session; nothing here suspends between
// validation and application. A provider error is terminal for the turn: it is
// returned as-is, with the ledger untouched.
func (s *Service) ProcessTurn(ctx context.Context, sessionID string, led *Ledger, vertical, message string) (*TurnResult, error) {
	now := s.now()
	slots := GenerateSlots(vertical, now)

	payload, err := json.MarshalIndent(userPayload{
		Vertical:             vertical,
		PatientKnown:         led.Patient,
		AvailableSlots:       slots,
		ExistingAppointments: led.Appointments,
		ExistingTickets:      led.Tickets,
		UserMessage:          message,
		Instructions:         rebookInstructions,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal turn payload: %w", err)
	}

	s.record(ctx, sessionID, "user", message)

	raw, err := s.provider.Chat(ctx, []ai.Message{
		{Role: "system", Content: SystemPrompt(vertical)},
		{Role: "user", Content: string(payload)},
	})
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	visible, rawActions, _ := ExtractActions(raw)
	actions, rejections := ValidateActions(rawActions, led)
	for _, rej := range rejections {
		log.Printf("action rejected session=%s index=%d kind=%q reason=%s", sessionID, rej.Index, rej.Kind, rej.Reason)
	}

	ticketsBefore := len(led.Tickets)
	applied := led.Apply(actions, now)

	s.record(ctx, sessionID, "assistant", visible)

	if s.notifier != nil {
		for _, t := range led.Tickets[ticketsBefore:] {
			if err := s.notifier.NotifyTicket(ctx, sessionID, t); err != nil {
				log.Printf("ticket notify failed session=%s ticket=%s err=%v", sessionID, t.ID, err)
			}
		}
	}

	return &TurnResult{
		Reply:          visible,
		ActionsApplied: applied,
		Rejections:     rejections,
		Appointments:   led.Appointments,
		Tickets:        led.Tickets,
		Slots:          slots,
	}, nil
}

// VoiceReply answers one spoken utterance on the phone channel. No actions are
// extracted on this channel; it is pure conversation.
func (s *Service) VoiceReply(ctx context.Context, userText string) (string, error) {
	reply, err := s.provider.Chat(ctx, []ai.Message{
		{Role: "system", Content: VoiceSystemPrompt()},
		{Role: "user", Content: "Appel téléphone. Message client: " + userText},
	})
	if err != nil {
		return "", fmt.Errorf("model call: %w", err)
	}
	return trimmedOr(reply, "Merci. Quel est votre nom, s'il vous plaît ?"), nil
}

// WhatsAppReply answers one inbound WhatsApp message.
func (s *Service) WhatsAppReply(ctx context.Context, from, to, body string) (string, error) {
	reply, err := s.provider.Chat(ctx, []ai.Message{
		{Role: "system", Content: WhatsAppSystemPrompt()},
		{Role: "user", Content: fmt.Sprintf("Canal: WhatsApp\nDe: %s\nÀ: %s\nMessage: %s", from, to, body)},
	})
	if err != nil {
		return "", fmt.Errorf("model call: %w", err)
	}
	return trimmedOr(reply, "Je suis là. Pouvez-vous me dire votre nom et si c'est pour une prise de RDV ?"), nil
}

func trimmedOr(s, def string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return def
}

func (s *Service) record(ctx context.Context, sessionID, role, content string) {
	if s.transcript == nil || content == "" {
		return
	}
	if err := s.transcript.Record(ctx, sessionID, role, content); err != nil {
		log.Printf("transcript record failed session=%s role=%s err=%v", sessionID, role, err)
	}
}
