package notify

import "context"

// Message is one outgoing notification. AttachmentPath is optional; channels
// that cannot carry attachments (Slack) ignore it.
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

type Multi []Notifier

func (m Multi) Send(ctx context.Context, msg Message) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
