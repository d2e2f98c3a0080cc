// Package httputil provides the HTTP plumbing shared by remote timetable
// sources.
//
//   - [Client]: JSON GET with default headers, status mapping and retry
//   - [Retry]: exponential backoff for transient failures
//
// Transient failures (transport errors and 5xx responses) are wrapped in
// [RetryableError] and retried; a 404 maps to [ErrNotFound] and is
// returned immediately.
package httputil
