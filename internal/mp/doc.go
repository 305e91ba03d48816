// Package mp provides structure providers: a client for the Materials
// Project summary API and a local-file provider for offline use.
//
// The API key is always passed in by the caller. It is sent in the
// X-API-KEY header and never logged.
package mp
