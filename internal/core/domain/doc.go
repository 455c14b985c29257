// Package domain defines the core entities for docmirror.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Descriptor: A remote document and its derived local path
//   - FreshnessPolicy: The staleness window decision for cached files
//   - Result: The per-document outcome of one fetch
//   - Report: The aggregate summary of one mirror run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
