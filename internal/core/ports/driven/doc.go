// Package driven defines the outbound interfaces the mirror engine
// depends on: the index source, the document fetcher, the mirror
// store, the archiver and the admission gate.
//
// Adapters under internal/adapters/driven implement these interfaces.
// The core services depend only on the interfaces, never on the
// adapters.
package driven
