package crawldoc

import "context"

// Metadata carries provenance for an extracted document.
type Metadata struct {
	URL string `json:"url"`
}

// Document is the terminal output unit of the scrape pipeline: one per
// successfully processed URL, immutable once constructed.
type Document struct {
	PageContent string   `json:"page_content"`
	Metadata    Metadata `json:"metadata"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Metadata.URL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	return nil
}

// DocumentWriter persists extracted documents.
type DocumentWriter interface {
	WriteDocuments(ctx context.Context, docs []*Document) error
}
