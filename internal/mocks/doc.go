// Package mocks provides centralized mock implementations for testing.
//
// Store and service mocks are built on testify/mock and are configured with
// On(...).Return(...). The auth primitives (password verifier, JWT service,
// key generator) use function fields with sensible defaults instead, since
// most tests only need them to succeed or fail.
//
// Usage:
//
//	import "github.com/phrazzld/todo-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    accounts := new(mocks.AccountStore)
//	    accounts.On("GetByUsername", mock.Anything, "alice").Return(account, nil)
//
//	    verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
//
//	    // Use the mocks in your test...
//	}
package mocks
