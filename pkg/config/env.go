package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvTokenSigningKey = "TOKEN_SIGNING_KEY"

	EnvKafkaBrokers       = "KAFKA_BROKERS"
	EnvNotificationsTopic = "NOTIFICATIONS_TOPIC"

	EnvSendFrom      = "SEND_FROM"
	EnvAdminInbox    = "ADMIN_INBOX"
	EnvAllowedOrigin = "ALLOWED_ORIGIN"

	EnvReminderMaxRecipients = "REMINDER_MAX_RECIPIENTS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
