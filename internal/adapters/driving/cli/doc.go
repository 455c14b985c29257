// Package cli implements the command-line driving adapter. It wires
// configuration, transport, storage and the mirror engine together
// and exposes init, update and version commands.
package cli
