// Package notify is the boundary to the outbound email provider. Services
// compose email jobs here and hand them to a Kafka topic; the provider's
// delivery worker consumes that topic outside this repository.
package notify

import "context"

type Attachment struct {
	Filename      string `json:"filename"`
	ContentType   string `json:"content_type"`
	ContentBase64 string `json:"content_base64"`
}

type EmailMessage struct {
	Kind        string       `json:"kind"`
	To          []string     `json:"to"`
	From        string       `json:"from"`
	Bcc         string       `json:"bcc,omitempty"`
	Subject     string       `json:"subject"`
	Text        string       `json:"text"`
	HTML        string       `json:"html,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Kinds stamped on the event-type header and used as metric labels.
const (
	KindFeedbackAdmin = "feedback_admin"
	KindFeedbackAck   = "feedback_ack"
	KindReminder      = "reminder"
)

type Publisher interface {
	Publish(ctx context.Context, msg EmailMessage) error
	Close() error
}
