package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"gymbook/internal/feedback/repository"
	"gymbook/internal/notify"
	"gymbook/pkg/config"
	"gymbook/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryFeedback struct {
	records []*repository.FeedbackRecord
	fail    error
}

func (m *memoryFeedback) Create(_ context.Context, record *repository.FeedbackRecord) error {
	if m.fail != nil {
		return m.fail
	}
	m.records = append(m.records, record)
	return nil
}

type capturingPublisher struct {
	published []notify.EmailMessage
	fail      error
}

func (p *capturingPublisher) Publish(_ context.Context, msg notify.EmailMessage) error {
	if p.fail != nil {
		return p.fail
	}
	p.published = append(p.published, msg)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func testFeedbackConfig(adminInbox string) *config.Config {
	return &config.Config{
		SendFrom:   "gym@example.com",
		AdminInbox: adminInbox,
		Log:        logger.New(logger.Config{Level: logger.ERROR}),
	}
}

func newFeedbackService(repo *memoryFeedback, pub notify.Publisher, adminInbox string) FeedbackService {
	cfg := testFeedbackConfig(adminInbox)
	return NewFeedbackService(repo, pub, cfg, cfg.Log)
}

func TestSubmit_SendsAdminAndAck(t *testing.T) {
	repo := &memoryFeedback{}
	pub := &capturingPublisher{}
	svc := newFeedbackService(repo, pub, "admin@example.com")

	result, err := svc.Submit(context.Background(), &FeedbackRequest{
		Name:    "  Alex  ",
		Email:   "alex@example.com",
		Message: "Great classes!",
	})
	require.NoError(t, err)

	require.Len(t, pub.published, 2)
	adminMsg, ackMsg := pub.published[0], pub.published[1]

	assert.Equal(t, notify.KindFeedbackAdmin, adminMsg.Kind)
	assert.Equal(t, []string{"admin@example.com"}, adminMsg.To)
	assert.Equal(t, "[Gym] New feedback from Alex", adminMsg.Subject)
	assert.Contains(t, adminMsg.Text, "From: Alex <alex@example.com>")
	assert.Contains(t, adminMsg.Text, "Great classes!")

	assert.Equal(t, notify.KindFeedbackAck, ackMsg.Kind)
	assert.Equal(t, []string{"alex@example.com"}, ackMsg.To)
	assert.Equal(t, "Thanks! We received your feedback", ackMsg.Subject)
	assert.Contains(t, ackMsg.HTML, "Great classes!")

	assert.Equal(t, "alex@example.com", result.ToUser)
	require.NotNil(t, result.ToAdmin)
	assert.Equal(t, "admin@example.com", *result.ToAdmin)
}

func TestSubmit_NoAdminInbox(t *testing.T) {
	repo := &memoryFeedback{}
	pub := &capturingPublisher{}
	svc := newFeedbackService(repo, pub, "")

	result, err := svc.Submit(context.Background(), &FeedbackRequest{
		Name:  "Alex",
		Email: "alex@example.com",
	})
	require.NoError(t, err)

	require.Len(t, pub.published, 1, "only the acknowledgement goes out")
	assert.Equal(t, notify.KindFeedbackAck, pub.published[0].Kind)
	assert.Nil(t, result.ToAdmin)
}

func TestSubmit_EmptyMessagePlaceholder(t *testing.T) {
	pub := &capturingPublisher{}
	svc := newFeedbackService(&memoryFeedback{}, pub, "")

	_, err := svc.Submit(context.Background(), &FeedbackRequest{
		Name:    "Alex",
		Email:   "alex@example.com",
		Message: "   ",
	})
	require.NoError(t, err)
	assert.Contains(t, pub.published[0].Text, "(no message)")
}

func TestSubmit_PersistsRecordBeforeSending(t *testing.T) {
	repo := &memoryFeedback{}
	pub := &capturingPublisher{}
	svc := newFeedbackService(repo, pub, "admin@example.com")

	content := base64.StdEncoding.EncodeToString([]byte("hello"))
	_, err := svc.Submit(context.Background(), &FeedbackRequest{
		Name:      "Alex",
		Email:     "alex@example.com",
		Message:   "hi",
		UserAgent: "test-agent",
		ClientIP:  "203.0.113.9",
		Attachments: []AttachmentInput{
			{Filename: "note.txt", MimeType: "text/plain", ContentBase64: content},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.records, 1)
	record := repo.records[0]
	assert.Equal(t, "Alex", record.Name)
	assert.Equal(t, "test-agent", record.UserAgent)
	assert.Equal(t, "203.0.113.9", record.IP)
	assert.True(t, record.HasAttachments)

	meta := record.AttachmentsMeta.([]AttachmentMeta)
	require.Len(t, meta, 1)
	assert.Equal(t, "note.txt", meta[0].Filename)
	assert.Equal(t, "text/plain", meta[0].Type)
}

func TestSubmit_StoreFailureSendsNothing(t *testing.T) {
	repo := &memoryFeedback{fail: errors.New("mongo down")}
	pub := &capturingPublisher{}
	svc := newFeedbackService(repo, pub, "admin@example.com")

	_, err := svc.Submit(context.Background(), &FeedbackRequest{
		Name:  "Alex",
		Email: "alex@example.com",
	})
	require.Error(t, err)
	assert.Empty(t, pub.published)
}

func TestSubmit_NoPublisher(t *testing.T) {
	svc := newFeedbackService(&memoryFeedback{}, nil, "")

	_, err := svc.Submit(context.Background(), &FeedbackRequest{
		Name:  "Alex",
		Email: "alex@example.com",
	})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSubmit_AttachmentsCarriedOnBothEmails(t *testing.T) {
	pub := &capturingPublisher{}
	svc := newFeedbackService(&memoryFeedback{}, pub, "admin@example.com")

	content := base64.StdEncoding.EncodeToString([]byte("attachment body"))
	result, err := svc.Submit(context.Background(), &FeedbackRequest{
		Name:  "Alex",
		Email: "alex@example.com",
		Attachments: []AttachmentInput{
			{Filename: "a.txt", MimeType: "text/plain", ContentBase64: content},
		},
	})
	require.NoError(t, err)

	require.Len(t, pub.published, 2)
	for _, msg := range pub.published {
		require.Len(t, msg.Attachments, 1)
		assert.Equal(t, "a.txt", msg.Attachments[0].Filename)
	}
	assert.Equal(t, len("attachment body"), result.TotalBytes)
}
