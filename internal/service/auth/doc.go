// Package auth holds the credential primitives used by the service layer:
// password comparison, API key value generation, and signed bearer tokens.
package auth
