// Package api exposes the account, API key and task operations over HTTP.
// Handlers decode and validate JSON requests, call the services with the
// caller identity resolved by middleware, and map service errors to status
// codes without leaking internal detail.
package api
