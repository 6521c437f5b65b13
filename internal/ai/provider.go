package ai

import "context"

// Message is one chat turn sent to a provider.
type Message struct {
	Role    string
	Content string
}

// Provider is a minimal chat-completion client. Implementations are stateless:
// the caller supplies the full message history on every call. The Chat call is
// the only blocking operation of a turn; cancellation flows through ctx.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
