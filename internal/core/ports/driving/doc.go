// Package driving defines the inbound interfaces through which
// external callers (the CLI) drive the mirror engine.
package driving
