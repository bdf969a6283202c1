// Package cache provides a Redis-backed cache of API key owners, used to
// resolve caller identity without a database round trip on every request.
package cache
