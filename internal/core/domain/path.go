package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"strings"
)

// localePrefix is the leading path segment stripped during mapping.
// The remote serves language-prefixed paths (/en/docs/...) but the
// mirror keeps a single language tree.
const localePrefix = "en"

// indexFilename is used when a URL path has no explicit leaf.
const indexFilename = "index.md"

// MapPath converts a remote document URL into a local relative path.
//
// The URL's path segments become nested directories with the final
// segment as the filename, normalised as follows:
//
//   - a leading locale prefix segment ("en") is stripped
//   - a non-empty section hint (other than "docs") becomes the top directory
//   - the filename gains a ".md" extension when missing
//   - a path reduced to nothing after stripping maps to index.md
//
// MapPath is total: a URL that cannot be parsed, or that carries no
// path component at all, maps to a top-level filename derived from a
// digest of the raw string rather than failing. The returned path
// always uses forward slashes.
func MapPath(rawURL, section string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return slugFilename(rawURL)
	}

	trimmed := strings.Trim(u.Path, "/")
	if trimmed == "" {
		return slugFilename(rawURL)
	}

	parts := strings.Split(trimmed, "/")
	if parts[0] == localePrefix {
		parts = parts[1:]
	}

	filename := indexFilename
	if len(parts) > 0 {
		filename = parts[len(parts)-1]
		if !strings.HasSuffix(filename, ".md") {
			filename += ".md"
		}
		parts = parts[:len(parts)-1]
	}

	var dirs []string
	if section != "" && section != "docs" {
		dirs = append(dirs, section)
	}
	dirs = append(dirs, parts...)

	return path.Join(append(dirs, filename)...)
}

// SectionSlug normalises an index section header into a directory name.
func SectionSlug(header string) string {
	slug := strings.ToLower(strings.TrimSpace(header))
	return strings.ReplaceAll(slug, " ", "-")
}

// slugFilename derives a stable top-level filename for URLs that
// cannot be mapped structurally.
func slugFilename(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:6]) + ".md"
}
