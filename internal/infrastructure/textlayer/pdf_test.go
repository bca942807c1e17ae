package textlayer

import (
	"context"
	"strings"
	"testing"
)

func TestExtractTextNonPDFIsSilentlySkipped(t *testing.T) {
	probe := NewProbe()

	for _, content := range []string{"", "plain text scan notes", "\x89PNG\r\n fake image"} {
		text, err := probe.ExtractText(context.Background(), strings.NewReader(content))
		if err != nil {
			t.Fatalf("ExtractText(%q) error = %v, non-PDF input must not fail", content, err)
		}
		if text != "" {
			t.Fatalf("ExtractText(%q) = %q, want empty", content, text)
		}
	}
}

func TestExtractTextMalformedPDFDoesNotPanic(t *testing.T) {
	probe := NewProbe()

	text, err := probe.ExtractText(context.Background(), strings.NewReader("%PDF-1.7 truncated garbage"))
	if err == nil && text != "" {
		t.Fatalf("expected empty text or error for malformed pdf, got %q", text)
	}
}

func TestExtractTextCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProbe().ExtractText(ctx, strings.NewReader("%PDF-1.7 data"))
	if err == nil {
		t.Fatalf("expected context error")
	}
}
