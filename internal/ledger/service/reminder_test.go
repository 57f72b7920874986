package service

import (
	"context"
	"testing"

	"gymbook/internal/identity"
	ledgererrors "gymbook/internal/ledger/errors"
	"gymbook/internal/notify"
	"gymbook/pkg/config"
	"gymbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	published []notify.EmailMessage
	err       error
}

func (p *capturingPublisher) Publish(_ context.Context, msg notify.EmailMessage) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func reminderFixture(t *testing.T) (*memoryLedger, *capturingPublisher, *config.Config) {
	t.Helper()
	repo := newMemoryLedger()
	repo.classes["yoga1"] = &model.ClassSession{ID: "yoga1", Name: "Yoga", Time: "09:00"}
	repo.bookings["yoga1_u1"] = &model.Booking{ID: "yoga1_u1", UserID: "u1", ClassID: "yoga1"}
	repo.bookings["yoga1_u2"] = &model.Booking{ID: "yoga1_u2", UserID: "u2", ClassID: "yoga1"}
	repo.bookings["yoga1_u3"] = &model.Booking{ID: "yoga1_u3", UserID: "u3", ClassID: "yoga1"}

	cfg := testConfig(t)
	cfg.AdminInbox = "admin@example.com"
	return repo, &capturingPublisher{}, cfg
}

func TestRemind_PublishesReminderWithDefaults(t *testing.T) {
	repo, publisher, cfg := reminderFixture(t)
	profiles := &staticDirectory{emails: map[string]string{
		"u1": "one@example.com",
		"u2": "two@example.com",
		"u3": "one@example.com", // duplicate email, must be deduped
	}}
	svc := NewLedgerService(repo, nil, []identity.Directory{profiles}, publisher, cfg)

	result, err := svc.Remind(context.Background(), &ReminderRequest{ClassID: "yoga1"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Sent)
	assert.Len(t, result.Recipients, 2)
	assert.Equal(t, "admin@example.com", result.Bcc)
	assert.Equal(t, "yoga1", result.Class.ID)

	require.Len(t, publisher.published, 1)
	msg := publisher.published[0]
	assert.Equal(t, notify.KindReminder, msg.Kind)
	assert.Equal(t, "Reminder: Yoga at 09:00", msg.Subject)
	assert.Contains(t, msg.Text, "Class: Yoga")
	assert.Equal(t, "admin@example.com", msg.Bcc)
}

func TestRemind_CustomTemplatePassedThrough(t *testing.T) {
	repo, publisher, cfg := reminderFixture(t)
	profiles := &staticDirectory{emails: map[string]string{"u1": "one@example.com"}}
	svc := NewLedgerService(repo, nil, []identity.Directory{profiles}, publisher, cfg)

	_, err := svc.Remind(context.Background(), &ReminderRequest{
		ClassID: "yoga1",
		Subject: "Bring a towel",
		Text:    "It will be hot.",
	})
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "Bring a towel", publisher.published[0].Subject)
	assert.Equal(t, "It will be hot.", publisher.published[0].Text)
}

func TestRemind_DryRunDoesNotPublish(t *testing.T) {
	repo, publisher, cfg := reminderFixture(t)
	profiles := &staticDirectory{emails: map[string]string{"u1": "one@example.com"}}
	svc := NewLedgerService(repo, nil, []identity.Directory{profiles}, publisher, cfg)

	result, err := svc.Remind(context.Background(), &ReminderRequest{ClassID: "yoga1", DryRun: true})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, []string{"one@example.com"}, result.Recipients)
	assert.Empty(t, publisher.published)
}

func TestRemind_CapsRecipients(t *testing.T) {
	repo, publisher, cfg := reminderFixture(t)
	profiles := &staticDirectory{emails: map[string]string{
		"u1": "one@example.com",
		"u2": "two@example.com",
		"u3": "three@example.com",
	}}
	svc := NewLedgerService(repo, nil, []identity.Directory{profiles}, publisher, cfg)

	result, err := svc.Remind(context.Background(), &ReminderRequest{ClassID: "yoga1", Max: 2})
	require.NoError(t, err)
	assert.Len(t, result.Recipients, 2)
	assert.Equal(t, 2, result.Sent)
}

func TestRemind_UnresolvableUsersSkipped(t *testing.T) {
	repo, publisher, cfg := reminderFixture(t)
	svc := NewLedgerService(repo, nil, nil, publisher, cfg)

	result, err := svc.Remind(context.Background(), &ReminderRequest{ClassID: "yoga1"})
	require.NoError(t, err)
	assert.Empty(t, result.Recipients)
	assert.Zero(t, result.Sent)
	assert.Empty(t, publisher.published, "no recipients means nothing to publish")
}

func TestRemind_NoBookings(t *testing.T) {
	repo := newMemoryLedger()
	repo.classes["empty1"] = &model.ClassSession{ID: "empty1", Name: "Stretch", Time: "06:00"}
	svc := NewLedgerService(repo, nil, nil, &capturingPublisher{}, testConfig(t))

	result, err := svc.Remind(context.Background(), &ReminderRequest{ClassID: "empty1"})
	require.NoError(t, err)
	assert.Zero(t, result.Sent)
	assert.NotNil(t, result.Recipients)
	assert.Empty(t, result.Recipients)
}

func TestRemind_ClassNotFound(t *testing.T) {
	svc := NewLedgerService(newMemoryLedger(), nil, nil, nil, testConfig(t))
	_, err := svc.Remind(context.Background(), &ReminderRequest{ClassID: "nope"})
	assert.ErrorIs(t, err, ledgererrors.ErrClassNotFound)
}

func TestRemind_PublisherNotConfigured(t *testing.T) {
	repo, _, cfg := reminderFixture(t)
	profiles := &staticDirectory{emails: map[string]string{"u1": "one@example.com"}}
	svc := NewLedgerService(repo, nil, []identity.Directory{profiles}, nil, cfg)

	_, err := svc.Remind(context.Background(), &ReminderRequest{ClassID: "yoga1"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
