// Package mail delivers lifecycle notifications. Delivery is best-effort and
// decoupled from the persistence transaction: the engine only blocks on
// submission to the queue, never on delivery.
package mail

import "context"

// TemplateKind selects the message template on the rendering side.
type TemplateKind string

const (
	TemplateSponsorshipOffered  TemplateKind = "sponsorship_offered"
	TemplateSponsorshipRedeemed TemplateKind = "sponsorship_redeemed"
	TemplateSponsorshipAccepted TemplateKind = "sponsorship_accepted"
	TemplateSponsorshipRevoked  TemplateKind = "sponsorship_revoked"
	TemplateSponsorshipRemoved  TemplateKind = "sponsorship_removed"
	TemplateSeatsAutoscaled     TemplateKind = "org_seats_autoscaled"
	TemplateSeatLimitReached    TemplateKind = "org_seats_max_reached"
)

// Message is one outbound notification, rendering concerns excluded.
type Message struct {
	Recipients []string
	Template   TemplateKind
	Subject    string
	Body       string
	Model      map[string]string
}

// Dispatcher queues lifecycle emails. At-least-once semantics: duplicates are
// tolerated by recipients, loss is the failure mode to avoid.
type Dispatcher interface {
	Enqueue(ctx context.Context, msg Message) error
}

// Sender is the delivery backend behind the queue.
type Sender interface {
	Send(msg Message) error
}
