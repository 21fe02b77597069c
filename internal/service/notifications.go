package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/logger"
	"sponsorship-backend/internal/mail"
	"sponsorship-backend/internal/repository"

	"github.com/google/uuid"
)

// LifecycleEvent tags an externally observable sponsorship transition.
type LifecycleEvent string

const (
	EventSponsorshipOffered  LifecycleEvent = "offered"
	EventSponsorshipResent   LifecycleEvent = "resent"
	EventSponsorshipRedeemed LifecycleEvent = "redeemed"
	EventSponsorshipRevoked  LifecycleEvent = "revoked"
	EventSponsorshipRemoved  LifecycleEvent = "removed"
)

// NotificationInput carries the already-resolved entities a lifecycle event
// needs to address its messages. Building is pure; recipient resolution
// happens in the notifier.
type NotificationInput struct {
	Sponsorship       *domain.Sponsorship
	SponsoringOrgName string
	SponsoredOrgName  string
	SponsorEmail      string
	AdminEmails       []string
	Token             string
	TokenExpiresAt    time.Time
	BaseURL           string
}

// BuildLifecycleMessages maps a lifecycle event onto outbound messages.
// Rendering stays out: the template kind and model travel to the dispatcher.
func BuildLifecycleMessages(event LifecycleEvent, in NotificationInput) []mail.Message {
	sp := in.Sponsorship

	switch event {
	case EventSponsorshipOffered, EventSponsorshipResent:
		redeemURL := fmt.Sprintf("%s/redeem-sponsorship?email=%s&token=%s",
			in.BaseURL, url.QueryEscape(sp.OfferedToEmail), url.QueryEscape(in.Token))
		return []mail.Message{{
			Recipients: []string{sp.OfferedToEmail},
			Template:   mail.TemplateSponsorshipOffered,
			Subject:    fmt.Sprintf("%s Has Sponsored a Plan for You", in.SponsoringOrgName),
			Body: fmt.Sprintf("Hello,\n\n%s (%s) has offered to sponsor a %s plan for you.\n\nAccept the offer before %s:\n%s\n",
				sp.FriendlyName, in.SponsorEmail, sp.PlanSponsorshipType, in.TokenExpiresAt.UTC().Format(time.RFC1123), redeemURL),
			Model: map[string]string{
				"email":      url.QueryEscape(sp.OfferedToEmail),
				"token":      url.QueryEscape(in.Token),
				"expires_at": in.TokenExpiresAt.UTC().Format(time.RFC3339),
				"org_name":   in.SponsoringOrgName,
			},
		}}

	case EventSponsorshipRedeemed:
		msgs := []mail.Message{{
			Recipients: []string{sp.OfferedToEmail},
			Template:   mail.TemplateSponsorshipRedeemed,
			Subject:    "Your Sponsored Plan Is Active",
			Body: fmt.Sprintf("Hello,\n\nYour sponsored %s plan for %s is now active.\n",
				sp.PlanSponsorshipType, in.SponsoredOrgName),
			Model: map[string]string{"sponsored_org": in.SponsoredOrgName},
		}}
		if len(in.AdminEmails) > 0 {
			msgs = append(msgs, mail.Message{
				Recipients: in.AdminEmails,
				Template:   mail.TemplateSponsorshipAccepted,
				Subject:    fmt.Sprintf("%s Accepted a Sponsorship Offer", sp.OfferedToEmail),
				Body: fmt.Sprintf("The sponsorship offered to %s has been redeemed by %s.\n",
					sp.OfferedToEmail, in.SponsoredOrgName),
				Model: map[string]string{"offered_to": sp.OfferedToEmail},
			})
		}
		return msgs

	case EventSponsorshipRevoked:
		return []mail.Message{{
			Recipients: []string{sp.OfferedToEmail},
			Template:   mail.TemplateSponsorshipRevoked,
			Subject:    "Your Sponsorship Has Been Revoked",
			Body:       "Hello,\n\nThe organization sponsoring your plan has revoked the sponsorship. Your plan will return to standard billing.\n",
		}}

	case EventSponsorshipRemoved:
		if len(in.AdminEmails) == 0 {
			return nil
		}
		return []mail.Message{{
			Recipients: in.AdminEmails,
			Template:   mail.TemplateSponsorshipRemoved,
			Subject:    "A Sponsored Organization Opted Out",
			Body: fmt.Sprintf("The organization sponsored through %s has removed its sponsorship.\n",
				sp.OfferedToEmail),
		}}
	}
	return nil
}

// sponsorshipNotifier resolves recipients and hands built messages to the
// dispatcher. Enqueue failures are logged, never surfaced: the lifecycle
// transition is the source of truth.
type sponsorshipNotifier struct {
	dispatcher  mail.Dispatcher
	orgUserRepo repository.OrgUserRepository
	baseURL     string
}

func (n *sponsorshipNotifier) notify(ctx context.Context, event LifecycleEvent, in NotificationInput) {
	in.BaseURL = n.baseURL
	for _, msg := range BuildLifecycleMessages(event, in) {
		if err := n.dispatcher.Enqueue(ctx, msg); err != nil {
			logger.ErrorContext(ctx, "Failed to enqueue sponsorship notification",
				"event", string(event), "template", string(msg.Template), "error", err)
		}
	}
}

// adminEmails is best-effort recipient resolution; a lookup failure ends up
// as a notification without admin copies, not a command failure.
func (n *sponsorshipNotifier) adminEmails(ctx context.Context, orgID uuid.UUID) []string {
	emails, err := n.orgUserRepo.ListEmailsByMinimumRole(ctx, orgID, domain.OrgUserTypeAdmin)
	if err != nil {
		logger.WarnContext(ctx, "Failed to resolve admin emails", "org_id", orgID, "error", err)
		return nil
	}
	return emails
}

func (n *sponsorshipNotifier) logTokenFailure(ctx context.Context, sp *domain.Sponsorship, err error) {
	logger.ErrorContext(ctx, "Failed to mint redemption token for invite mail",
		"sponsorship_id", sp.ID, "error", err)
}

