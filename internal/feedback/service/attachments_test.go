package service

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	feedbackerrors "gymbook/internal/feedback/errors"
)

func b64(n int) string {
	return base64.StdEncoding.EncodeToString(make([]byte, n))
}

func TestParseAttachments_StripsDataURIAndWhitespace(t *testing.T) {
	content := b64(30)
	wrapped := "data:image/png;base64," + content[:10] + "\n " + content[10:]

	parsed, err := parseAttachments([]AttachmentInput{
		{Filename: "pic.png", MimeType: "image/png", ContentBase64: wrapped},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.list) != 1 {
		t.Fatalf("list = %v", parsed.list)
	}
	if parsed.list[0].ContentBase64 != content {
		t.Errorf("content not normalized: %q", parsed.list[0].ContentBase64)
	}
	if parsed.totalBytes != 30 {
		t.Errorf("totalBytes = %d", parsed.totalBytes)
	}
}

func TestParseAttachments_SkipsEmptyAndCapsCount(t *testing.T) {
	parsed, err := parseAttachments([]AttachmentInput{
		{Filename: "empty.txt"},
		{Filename: "a.txt", ContentBase64: b64(4)},
		{Filename: "dropped-by-cap.txt", ContentBase64: b64(4)},
	})
	if err != nil {
		t.Fatal(err)
	}
	// Only the first two entries are considered; the empty one is skipped.
	if len(parsed.list) != 1 || parsed.list[0].Filename != "a.txt" {
		t.Errorf("list = %v", parsed.list)
	}
}

func TestParseAttachments_DefaultsContentType(t *testing.T) {
	parsed, err := parseAttachments([]AttachmentInput{{Filename: "blob", ContentBase64: b64(4)}})
	if err != nil {
		t.Fatal(err)
	}
	if parsed.list[0].ContentType != "application/octet-stream" {
		t.Errorf("type = %q", parsed.list[0].ContentType)
	}
}

func TestParseAttachments_RejectsOversizeSingle(t *testing.T) {
	_, err := parseAttachments([]AttachmentInput{
		{Filename: "huge.bin", ContentBase64: b64(MaxAttachmentBytes + 1)},
	})
	if !errors.Is(err, feedbackerrors.ErrAttachmentTooBig) {
		t.Errorf("err = %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "huge.bin") {
		t.Errorf("error should name the file: %v", err)
	}
}
