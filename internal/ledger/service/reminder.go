package service

import (
	"context"
	"errors"
	"fmt"

	"gymbook/internal/identity"
	"gymbook/internal/notify"
	"gymbook/pkg/config"
	"gymbook/pkg/model"
	"gymbook/pkg/sanitizer"
)

// ErrNotConfigured is returned when a reminder is requested but no
// notification topic has been configured for this deployment.
var ErrNotConfigured = errors.New("notifications are not configured")

type ReminderRequest struct {
	ClassID string `json:"classId"`
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
	DryRun  bool   `json:"dryRun,omitempty"`
	Max     int    `json:"max,omitempty"`
}

type ReminderResult struct {
	Class      model.ClassSnapshot
	DryRun     bool
	Sent       int
	Recipients []string
	Bcc        string
}

// Remind fans a reminder email out to everyone booked into a class. User ids
// that cannot be resolved to an email are skipped, recipients are deduped,
// and the batch is capped. With DryRun set the recipient list is returned
// without publishing anything.
func (s *ledgerService) Remind(ctx context.Context, req *ReminderRequest) (*ReminderResult, error) {
	cls, err := s.repo.GetClass(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}

	result := &ReminderResult{
		Class:  cls.Snapshot(),
		DryRun: req.DryRun,
	}

	userIDs, err := s.repo.UserIDsByClass(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		result.Recipients = []string{}
		return result, nil
	}

	result.Recipients = s.collectRecipients(ctx, userIDs, req.Max)
	if len(result.Recipients) == 0 || req.DryRun {
		return result, nil
	}

	if s.publisher == nil {
		return nil, ErrNotConfigured
	}

	msg := notify.EmailMessage{
		Kind:    notify.KindReminder,
		To:      result.Recipients,
		From:    s.cfg.SendFrom,
		Bcc:     s.cfg.AdminInbox,
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	}
	if msg.Subject == "" {
		msg.Subject = fmt.Sprintf("Reminder: %s at %s", cls.Name, cls.Time)
	}
	if msg.Text == "" {
		msg.Text = fmt.Sprintf(
			"This is a reminder for your class booking:\n\nClass: %s\nTime: %s\n\nSee you soon!",
			cls.Name, cls.Time,
		)
	}
	if msg.HTML == "" {
		msg.HTML = fmt.Sprintf(
			"<p>This is a reminder for your class booking:</p><p><b>Class:</b> %s<br/><b>Time:</b> %s</p><p>See you soon!</p>",
			cls.Name, cls.Time,
		)
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish reminder",
			"class_id", req.ClassID,
			"recipients", len(result.Recipients),
			"error", err,
		)
		return nil, err
	}

	result.Sent = len(result.Recipients)
	result.Bcc = s.cfg.AdminInbox

	s.cfg.Log.Info("Class reminder published",
		"class_id", req.ClassID,
		"sent", result.Sent,
	)
	return result, nil
}

// collectRecipients resolves user ids to emails, drops duplicates while
// keeping first-seen order, and caps the batch at min(max, ceiling) with the
// configured default when max is unset.
func (s *ledgerService) collectRecipients(ctx context.Context, userIDs []string, max int) []string {
	limit := s.cfg.ReminderMaxRecipients
	if max > 0 {
		limit = sanitizer.ClampInt(max, 1, config.ReminderRecipientCeiling)
	}

	seen := make(map[string]struct{}, len(userIDs))
	recipients := make([]string, 0, len(userIDs))
	for _, userID := range userIDs {
		email := identity.ResolveEmail(ctx, userID, s.directories...)
		if email == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		recipients = append(recipients, email)
		if len(recipients) >= limit {
			break
		}
	}
	return recipients
}
