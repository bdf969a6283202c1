// Package domain contains the core business entities of the service:
// accounts, the API keys issued to them, and the tasks they own.
// It is independent of any storage or transport concern.
package domain
