// Package index implements the index source port.
//
// The index is a single well-known resource (llms.txt) listing every
// document URL. It is treated as opaque bytes for change detection —
// compared byte-for-byte against the persisted snapshot — and parsed
// for enumeration.
package index
