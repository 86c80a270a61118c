// Package http contains the chi HTTP handlers for the heat-reuse API.
//
// Handlers translate service results into JSON envelopes and route
// failures through the RFC 7807 error handler. They hold no business
// logic of their own.
package http
