// Package tesseract provides OCR adapters backed by the poppler and
// tesseract command line tools.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/fwojciec/crawldoc"
)

// Ensure implementations satisfy the interfaces at compile time.
var (
	_ crawldoc.PDFRasterizer  = (*Rasterizer)(nil)
	_ crawldoc.TextRecognizer = (*Recognizer)(nil)
)

// DefaultDPI is the rasterization resolution for OCR input.
const DefaultDPI = 150

// Rasterizer renders PDF pages to PNG images using pdftoppm.
type Rasterizer struct {
	// Binary is the pdftoppm executable. Empty means "pdftoppm" on PATH.
	Binary string

	// DPI is the render resolution. Zero means DefaultDPI.
	DPI int
}

// Rasterize writes the PDF to a temporary directory, renders one PNG
// per page and returns the page images in order.
func (r *Rasterizer) Rasterize(ctx context.Context, pdf []byte) ([][]byte, error) {
	binary := r.Binary
	if binary == "" {
		binary = "pdftoppm"
	}
	dpi := r.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	tmpDir, err := os.MkdirTemp("", "crawldoc-pdf-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, binary,
		"-png",
		"-r", fmt.Sprintf("%d", dpi),
		pdfPath,
		filepath.Join(tmpDir, "page"),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, out)
	}

	// pdftoppm numbers output files with zero padding, so a
	// lexicographic sort preserves page order.
	matches, err := filepath.Glob(filepath.Join(tmpDir, "page-*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	pages := make([][]byte, 0, len(matches))
	for _, path := range matches {
		img, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		pages = append(pages, img)
	}
	return pages, nil
}

// Recognizer extracts text from images using the tesseract binary.
type Recognizer struct {
	// Binary is the tesseract executable. Empty means "tesseract" on PATH.
	Binary string

	// Language is the tesseract language code. Empty uses the
	// tesseract default.
	Language string
}

// Recognize runs OCR on a single page image and returns the
// recognized text.
func (r *Recognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = "tesseract"
	}

	args := []string{"stdin", "stdout"}
	if r.Language != "" {
		args = append(args, "-l", r.Language)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = bytes.NewReader(image)

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}
