// Package service provides the application-level operations of the API:
// credential checks and API key issuance, identity resolution for incoming
// requests, and owner-scoped task management.
//
// Services depend only on the store interfaces and the auth primitives, so
// they can be exercised with the mocks in internal/mocks.
package service
