package service

import (
	"context"
	"fmt"
	"time"

	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/errors"
	"sponsorship-backend/internal/mail"
	"sponsorship-backend/internal/repository"
)

type orgMailer struct {
	dispatcher  mail.Dispatcher
	orgRepo     repository.OrganizationRepository
	orgUserRepo repository.OrgUserRepository
}

func NewOrgMailer(dispatcher mail.Dispatcher, orgRepo repository.OrganizationRepository, orgUserRepo repository.OrgUserRepository) OrgMailer {
	return &orgMailer{
		dispatcher:  dispatcher,
		orgRepo:     orgRepo,
		orgUserRepo: orgUserRepo,
	}
}

// NotifySeatsAutoscaled mails org owners after an autoscaling event. The
// notified-at stamp on the organization dedupes: once owners have been told,
// later autoscale events stay silent until the stamp is cleared.
func (m *orgMailer) NotifySeatsAutoscaled(ctx context.Context, org *domain.Organization, initialSeats int32) error {
	if org == nil {
		return errors.NotFound("organization not found")
	}
	if org.OwnersNotifiedOfAutoscaling != nil {
		return nil
	}

	ownerEmails, err := m.orgUserRepo.ListEmailsByMinimumRole(ctx, org.ID, domain.OrgUserTypeOwner)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to resolve owner emails")
	}

	var current int32
	if org.Seats != nil {
		current = *org.Seats
	}
	msg := mail.Message{
		Recipients: ownerEmails,
		Template:   mail.TemplateSeatsAutoscaled,
		Subject:    fmt.Sprintf("%s Seat Count Has Increased", org.Name),
		Body: fmt.Sprintf("Your organization %s automatically grew from %d to %d seats.\n",
			org.Name, initialSeats, current),
		Model: map[string]string{
			"initial_seats": fmt.Sprintf("%d", initialSeats),
			"current_seats": fmt.Sprintf("%d", current),
		},
	}
	if err := m.dispatcher.Enqueue(ctx, msg); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to enqueue autoscale notification")
	}

	now := time.Now()
	org.OwnersNotifiedOfAutoscaling = &now
	if err := m.orgRepo.Update(ctx, org); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to stamp autoscale notification")
	}
	return nil
}

// NotifySeatLimitReached mails org owners when autoscaling hit its ceiling.
func (m *orgMailer) NotifySeatLimitReached(ctx context.Context, org *domain.Organization, maxSeats int32) error {
	if org == nil {
		return errors.NotFound("organization not found")
	}

	ownerEmails, err := m.orgUserRepo.ListEmailsByMinimumRole(ctx, org.ID, domain.OrgUserTypeOwner)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to resolve owner emails")
	}

	msg := mail.Message{
		Recipients: ownerEmails,
		Template:   mail.TemplateSeatLimitReached,
		Subject:    fmt.Sprintf("%s Seat Limit Reached", org.Name),
		Body: fmt.Sprintf("Your organization %s reached its autoscale limit of %d seats.\n",
			org.Name, maxSeats),
		Model: map[string]string{"max_seats": fmt.Sprintf("%d", maxSeats)},
	}
	if err := m.dispatcher.Enqueue(ctx, msg); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to enqueue seat limit notification")
	}
	return nil
}
