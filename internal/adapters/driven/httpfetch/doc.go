// Package httpfetch implements the document fetcher port over HTTP.
//
// Client performs one document download with bounded retries and
// exponential backoff, classifying failures as transient (retried) or
// permanent (failed immediately). Gate is the shared token-bucket
// admission control; every attempt, including retries, acquires an
// admission before the network call is issued.
package httpfetch
