package render

import (
	"bytes"
	"testing"

	errs "github.com/matzehuels/stemloop/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><circle cx="5" cy="5" r="4"/></svg>`

func TestToPDF(t *testing.T) {
	pdf, err := ToPDF([]byte(tinySVG))
	if !Available() {
		if !errs.Is(err, errs.ErrCodeUnsupported) {
			t.Errorf("without rsvg-convert: error = %v, want %s", err, errs.ErrCodeUnsupported)
		}
		return
	}
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", pdf[:min(8, len(pdf))])
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG([]byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output does not look like a PNG")
	}
}
