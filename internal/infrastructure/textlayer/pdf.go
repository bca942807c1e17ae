package textlayer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// Probe pulls the embedded text layer out of PDF uploads. Scanned image
// PDFs and non-PDF files yield an empty string so the caller falls back to
// OCR; only genuine parse failures surface as errors.
type Probe struct{}

func NewProbe() *Probe {
	return &Probe{}
}

func (p *Probe) ExtractText(ctx context.Context, r io.Reader) (text string, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// The parser panics on some malformed files.
	defer func() {
		if recovered := recover(); recovered != nil {
			text = ""
			err = fmt.Errorf("pdf parse panic: %v", recovered)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	extracted, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return string(extracted), nil
}
