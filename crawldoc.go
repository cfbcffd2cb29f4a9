// Package crawldoc crawls a bounded set of web domains, builds the link
// graph of the pages it visits, and extracts the main content of each page
// as clean, deduplicated markdown suitable for indexing or LLM ingestion.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, tesseract/).
package crawldoc
