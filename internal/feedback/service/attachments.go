package service

import (
	"fmt"

	feedbackerrors "gymbook/internal/feedback/errors"
	"gymbook/internal/notify"
	"gymbook/pkg/config"
	"gymbook/pkg/sanitizer"
)

// Attachment intake limits. Oversize payloads are rejected before anything
// is stored or sent.
const (
	MaxAttachmentCount = config.MaxFeedbackAttachments
	MaxAttachmentBytes = config.MaxAttachmentBytes
	MaxTotalBytes      = config.MaxTotalAttachmentBytes
)

// AttachmentInput is the wire shape of one uploaded attachment.
type AttachmentInput struct {
	Filename      string `json:"filename"`
	MimeType      string `json:"mimeType"`
	ContentBase64 string `json:"contentBase64"`
}

// AttachmentMeta is what gets persisted and echoed back: never the content.
type AttachmentMeta struct {
	Filename string `json:"filename" bson:"filename"`
	Type     string `json:"type" bson:"type"`
}

type parsedAttachments struct {
	list       []notify.Attachment
	totalBytes int
}

// parseAttachments normalizes and bounds the uploaded attachments: at most
// MaxAttachmentCount are considered, data-URI prefixes and embedded
// whitespace are stripped, empty entries are skipped, and decoded sizes are
// checked per attachment and in total.
func parseAttachments(input []AttachmentInput) (*parsedAttachments, error) {
	if len(input) > MaxAttachmentCount {
		input = input[:MaxAttachmentCount]
	}

	parsed := &parsedAttachments{}
	for _, a := range input {
		content := sanitizer.NormalizeBase64(a.ContentBase64)
		if content == "" {
			continue
		}

		size := sanitizer.DecodedBase64Bytes(content)
		if size > MaxAttachmentBytes {
			return nil, fmt.Errorf("%w: %s > %dMB",
				feedbackerrors.ErrAttachmentTooBig, displayName(a.Filename), MaxAttachmentBytes/(1024*1024))
		}
		if parsed.totalBytes+size > MaxTotalBytes {
			return nil, fmt.Errorf("%w (> %dMB)",
				feedbackerrors.ErrTotalTooBig, MaxTotalBytes/(1024*1024))
		}

		parsed.totalBytes += size
		parsed.list = append(parsed.list, notify.Attachment{
			Filename:      sanitizer.Filename(a.Filename),
			ContentType:   contentType(a.MimeType),
			ContentBase64: content,
		})
	}
	return parsed, nil
}

func displayName(name string) string {
	if name == "" {
		return "file"
	}
	return name
}

func contentType(mime string) string {
	if mime == "" {
		return "application/octet-stream"
	}
	return mime
}
