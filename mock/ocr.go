package mock

import (
	"context"

	"github.com/fwojciec/crawldoc"
)

var (
	_ crawldoc.PDFRasterizer  = (*PDFRasterizer)(nil)
	_ crawldoc.TextRecognizer = (*TextRecognizer)(nil)
)

// PDFRasterizer is a mock implementation of crawldoc.PDFRasterizer.
type PDFRasterizer struct {
	RasterizeFn func(ctx context.Context, pdf []byte) ([][]byte, error)
}

func (r *PDFRasterizer) Rasterize(ctx context.Context, pdf []byte) ([][]byte, error) {
	return r.RasterizeFn(ctx, pdf)
}

// TextRecognizer is a mock implementation of crawldoc.TextRecognizer.
type TextRecognizer struct {
	RecognizeFn func(ctx context.Context, image []byte) (string, error)
}

func (r *TextRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	return r.RecognizeFn(ctx, image)
}
