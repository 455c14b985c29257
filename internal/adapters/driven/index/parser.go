package index

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/lieblius/docmirror/internal/core/domain"
)

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// Parse extracts document descriptors from raw index content.
//
// The format is a simple markdown listing: "## Section" lines set the
// current section, "- [Title](https://...)" lines yield one entry
// each. Anything else is ignored. Entry order is preserved.
func Parse(data []byte) []domain.Descriptor {
	var entries []domain.Descriptor
	section := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "##"):
			section = domain.SectionSlug(strings.TrimPrefix(line, "##"))
		case strings.HasPrefix(line, "- [") && strings.Contains(line, "](http"):
			if m := linkPattern.FindStringSubmatch(line); m != nil {
				entries = append(entries, domain.NewDescriptor(m[1], m[2], section))
			}
		}
	}

	return entries
}
