// Package services contains the mirror engine's orchestration logic.
//
// MirrorOrchestrator composes the driven ports (index source, fetcher,
// store, archiver) into the two run modes and owns the concurrency:
// descriptors fan out to a bounded worker pool whose outbound requests
// all pass through one shared admission gate inside the fetcher.
package services
