package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "gymbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultNotificationsTopic = "gymbook.notifications"

	DefaultAllowedOrigin = "*"

	// Reminder fan-out: default batch size and the hard ceiling a caller
	// can raise it to.
	DefaultReminderMaxRecipients = 200
	ReminderRecipientCeiling     = 2000

	// Feedback attachments, matching the limits enforced on intake.
	MaxFeedbackAttachments  = 2
	MaxAttachmentBytes      = 5 * 1024 * 1024
	MaxTotalAttachmentBytes = 10 * 1024 * 1024

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	// Large enough for two 5MB attachments plus base64 overhead.
	DefaultMaxRequestSize = 16 * 1024 * 1024

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
