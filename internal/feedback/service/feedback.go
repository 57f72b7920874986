package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"gymbook/internal/feedback/repository"
	"gymbook/internal/notify"
	"gymbook/pkg/config"
	"gymbook/pkg/logger"
	"gymbook/pkg/sanitizer"
)

// ErrNotConfigured is returned when no notification publisher is wired.
var ErrNotConfigured = errors.New("notifications not configured")

// FeedbackRequest is the intake payload. UserAgent and ClientIP are filled
// by the handler from the request, not by the client.
type FeedbackRequest struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Message     string            `json:"message"`
	Attachments []AttachmentInput `json:"attachments"`

	UserAgent string `json:"-"`
	ClientIP  string `json:"-"`
}

// FeedbackResult echoes what was sent and to whom. ToAdmin is nil when no
// admin inbox is configured.
type FeedbackResult struct {
	ToUser      string           `json:"toUser"`
	ToAdmin     *string          `json:"toAdmin"`
	Attachments []AttachmentMeta `json:"attachments"`
	TotalBytes  int              `json:"totalBytes"`
}

type FeedbackService interface {
	Submit(ctx context.Context, req *FeedbackRequest) (*FeedbackResult, error)
}

type feedbackService struct {
	repo      repository.FeedbackRepository
	publisher notify.Publisher
	cfg       *config.Config
	log       *logger.Logger
}

func NewFeedbackService(
	repo repository.FeedbackRepository,
	publisher notify.Publisher,
	cfg *config.Config,
	log *logger.Logger,
) FeedbackService {
	return &feedbackService{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

// Submit persists the feedback, then dispatches an admin notification (when
// an admin inbox is configured) and an acknowledgement to the sender. The
// record is written before any email job, so a delivery failure never loses
// the submission.
func (s *feedbackService) Submit(ctx context.Context, req *FeedbackRequest) (*FeedbackResult, error) {
	if s.publisher == nil {
		return nil, ErrNotConfigured
	}

	parsed, err := parseAttachments(req.Attachments)
	if err != nil {
		return nil, err
	}

	name := sanitizer.NormalizeText(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	meta := make([]AttachmentMeta, 0, len(parsed.list))
	for _, a := range parsed.list {
		meta = append(meta, AttachmentMeta{Filename: a.Filename, Type: a.ContentType})
	}

	record := &repository.FeedbackRecord{
		Name:            name,
		Email:           email,
		Message:         req.Message,
		UserAgent:       req.UserAgent,
		IP:              req.ClientIP,
		HasAttachments:  len(parsed.list) > 0,
		AttachmentsMeta: meta,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	body := message
	if body == "" {
		body = "(no message)"
	}

	result := &FeedbackResult{
		ToUser:      email,
		Attachments: meta,
		TotalBytes:  parsed.totalBytes,
	}

	if s.cfg.AdminInbox != "" {
		adminMsg := notify.EmailMessage{
			Kind:        notify.KindFeedbackAdmin,
			To:          []string{s.cfg.AdminInbox},
			From:        s.cfg.SendFrom,
			Subject:     fmt.Sprintf("[Gym] New feedback from %s", name),
			Text:        fmt.Sprintf("From: %s <%s>\n\nMessage:\n%s\n", name, email, body),
			Attachments: parsed.list,
		}
		if err := s.publisher.Publish(ctx, adminMsg); err != nil {
			return nil, fmt.Errorf("failed to publish admin notification: %w", err)
		}
		inbox := s.cfg.AdminInbox
		result.ToAdmin = &inbox
	}

	ackMsg := notify.EmailMessage{
		Kind:    notify.KindFeedbackAck,
		To:      []string{email},
		From:    s.cfg.SendFrom,
		Subject: "Thanks! We received your feedback",
		Text: fmt.Sprintf(
			"Hi %s,\n\nThanks for contacting us. We've received your message:\n\n%s\n\n— Your Gym Team",
			name, body),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Thanks for contacting us. We've received your message:</p>"+
				"<pre style=\"white-space:pre-wrap\">%s</pre><p>— Your Gym Team</p>",
			html.EscapeString(name), html.EscapeString(body)),
		Attachments: parsed.list,
	}
	if err := s.publisher.Publish(ctx, ackMsg); err != nil {
		return nil, fmt.Errorf("failed to publish acknowledgement: %w", err)
	}

	s.log.Info("Feedback accepted",
		"email", email,
		"attachments", len(parsed.list),
		"total_bytes", parsed.totalBytes,
	)
	return result, nil
}
