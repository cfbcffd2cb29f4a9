package crawldoc

import "context"

// PDFRasterizer renders PDF bytes into one image per page.
type PDFRasterizer interface {
	// Rasterize returns the pages of the PDF as encoded images, in order.
	Rasterize(ctx context.Context, pdf []byte) ([][]byte, error)
}

// TextRecognizer performs optical character recognition on a single image.
type TextRecognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}
