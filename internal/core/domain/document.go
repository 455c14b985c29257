package domain

import (
	"strings"
	"unicode/utf8"
)

// Descriptor identifies one remote document and where it lives locally.
// Descriptors are derived from the index and never mutated afterwards.
type Descriptor struct {
	// Title is the human-readable name from the index entry.
	Title string

	// URL is the remote document URL as listed in the index.
	URL string

	// Section is the index section slug this entry appeared under.
	// Empty when the entry appeared before any section header.
	Section string

	// LocalPath is the derived mirror-relative path, forward-slashed.
	LocalPath string
}

// NewDescriptor builds a descriptor, deriving the local path from the
// URL and section hint.
func NewDescriptor(title, rawURL, section string) Descriptor {
	return Descriptor{
		Title:     title,
		URL:       rawURL,
		Section:   section,
		LocalPath: MapPath(rawURL, section),
	}
}

// DownloadURL returns the URL to fetch content from. The remote serves
// markdown renditions at "<page>.md", so the suffix is appended when
// the index entry lacks it.
func (d Descriptor) DownloadURL() string {
	if strings.HasSuffix(d.URL, ".md") {
		return d.URL
	}
	return d.URL + ".md"
}

// ContentKind classifies fetched bytes. The kind is resolved lazily
// from the payload, not declared by the index.
type ContentKind int

// Content kinds.
const (
	// KindText is valid UTF-8 content.
	KindText ContentKind = iota

	// KindBinary is anything that fails UTF-8 validation (PDFs,
	// images and other non-text assets listed in the index).
	KindBinary
)

// String returns the string representation.
func (k ContentKind) String() string {
	if k == KindBinary {
		return "binary"
	}
	return "text"
}

// DetectKind classifies payload bytes. Invalid UTF-8 falls back to
// binary rather than failing the write.
func DetectKind(data []byte) ContentKind {
	if utf8.Valid(data) {
		return KindText
	}
	return KindBinary
}
