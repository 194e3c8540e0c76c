// Package http provides the HTTP handlers of the report cleaner: report
// upload and cleaning (JSON statistics or CSV download), health checks and
// prometheus metrics. Handlers use chi for routing and go-chi/render for
// response encoding; errors render as structured JSON via internal/errors.
package http
