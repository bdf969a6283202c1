package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIdentityResolver_ResolveAPIKey(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	active := &domain.APIKey{ID: uuid.New(), AccountID: accountID, Key: "tk_active", IsActive: true}
	inactive := &domain.APIKey{ID: uuid.New(), AccountID: accountID, Key: "tk_inactive", IsActive: false}

	t.Run("active key resolves and is cached", func(t *testing.T) {
		keys := new(mocks.APIKeyStore)
		cache := &mocks.MockKeyCache{}
		r, err := service.NewIdentityResolver(keys, new(mocks.AccountStore), &mocks.MockJWTService{}, cache, quietLogger())
		require.NoError(t, err)

		keys.On("GetByValue", mock.Anything, "tk_active").Return(active, nil).Once()

		got, err := r.ResolveAPIKey(ctx, "tk_active")
		require.NoError(t, err)
		assert.Equal(t, accountID, got)

		// Second lookup is served from the cache.
		got, err = r.ResolveAPIKey(ctx, "tk_active")
		require.NoError(t, err)
		assert.Equal(t, accountID, got)
		keys.AssertNumberOfCalls(t, "GetByValue", 1)
	})

	t.Run("inactive key is rejected", func(t *testing.T) {
		keys := new(mocks.APIKeyStore)
		r, err := service.NewIdentityResolver(keys, new(mocks.AccountStore), &mocks.MockJWTService{}, nil, quietLogger())
		require.NoError(t, err)

		keys.On("GetByValue", mock.Anything, "tk_inactive").Return(inactive, nil)

		_, err = r.ResolveAPIKey(ctx, "tk_inactive")
		assert.ErrorIs(t, err, service.ErrUnidentified)
	})

	t.Run("unknown and empty keys", func(t *testing.T) {
		keys := new(mocks.APIKeyStore)
		r, err := service.NewIdentityResolver(keys, new(mocks.AccountStore), &mocks.MockJWTService{}, nil, quietLogger())
		require.NoError(t, err)

		keys.On("GetByValue", mock.Anything, "tk_unknown").Return(nil, store.ErrAPIKeyNotFound)

		_, err = r.ResolveAPIKey(ctx, "tk_unknown")
		assert.ErrorIs(t, err, service.ErrUnidentified)

		_, err = r.ResolveAPIKey(ctx, "")
		assert.ErrorIs(t, err, service.ErrUnidentified)
	})

	t.Run("cache failure falls back to the store", func(t *testing.T) {
		keys := new(mocks.APIKeyStore)
		cache := &mocks.MockKeyCache{Err: errors.New("redis down")}
		r, err := service.NewIdentityResolver(keys, new(mocks.AccountStore), &mocks.MockJWTService{}, cache, quietLogger())
		require.NoError(t, err)

		keys.On("GetByValue", mock.Anything, "tk_active").Return(active, nil)

		got, err := r.ResolveAPIKey(ctx, "tk_active")
		require.NoError(t, err)
		assert.Equal(t, accountID, got)
	})

	t.Run("store failure is not an identity failure", func(t *testing.T) {
		keys := new(mocks.APIKeyStore)
		r, err := service.NewIdentityResolver(keys, new(mocks.AccountStore), &mocks.MockJWTService{}, nil, quietLogger())
		require.NoError(t, err)

		keys.On("GetByValue", mock.Anything, "tk_active").Return(nil, errors.New("timeout"))

		_, err = r.ResolveAPIKey(ctx, "tk_active")
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrUnidentified)
	})
}

// TestIdentityResolver_DeactivationDuringLookup deactivates a key after the
// resolver has read it as active but before it writes the cache entry.
func TestIdentityResolver_DeactivationDuringLookup(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	keyID := uuid.New()
	const value = "tk_racing"

	keys := new(mocks.APIKeyStore)
	cache := &mocks.MockKeyCache{}
	creds, err := service.NewCredentialService(
		new(mocks.AccountStore), keys, &mocks.MockPasswordVerifier{}, &mocks.MockKeyGenerator{},
		&mutableLimit{value: 3}, cache, quietLogger(),
	)
	require.NoError(t, err)
	r, err := service.NewIdentityResolver(keys, new(mocks.AccountStore), &mocks.MockJWTService{}, cache, quietLogger())
	require.NoError(t, err)

	stored := &domain.APIKey{ID: keyID, AccountID: accountID, Key: value, IsActive: true}
	keys.On("GetByID", mock.Anything, keyID).Return(stored, nil)
	keys.On("SetActive", mock.Anything, keyID, false).Return(nil)

	// The resolver gets its own copy, read while the key was still active.
	readBeforeUpdate := *stored
	keys.On("GetByValue", mock.Anything, value).
		Run(func(mock.Arguments) {
			_, err := creds.SetKeyActive(ctx, keyID, false)
			require.NoError(t, err)
		}).
		Return(&readBeforeUpdate, nil).Once()

	got, err := r.ResolveAPIKey(ctx, value)
	require.NoError(t, err)
	assert.Equal(t, accountID, got, "the in-flight request saw an active key")

	_, err = r.ResolveAPIKey(ctx, value)
	assert.ErrorIs(t, err, service.ErrUnidentified)
	assert.False(t, stored.IsActive)
	keys.AssertNumberOfCalls(t, "GetByValue", 1)
}

func TestIdentityResolver_ResolveToken(t *testing.T) {
	ctx := context.Background()
	account := aliceAccount()

	t.Run("valid token for existing account", func(t *testing.T) {
		accounts := new(mocks.AccountStore)
		tokens := &mocks.MockJWTService{Claims: &auth.Claims{AccountID: account.ID, TokenType: "access"}}
		r, err := service.NewIdentityResolver(new(mocks.APIKeyStore), accounts, tokens, nil, quietLogger())
		require.NoError(t, err)

		accounts.On("GetByID", mock.Anything, account.ID).Return(account, nil)

		got, err := r.ResolveToken(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, account.ID, got)
	})

	t.Run("invalid token", func(t *testing.T) {
		tokens := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}
		r, err := service.NewIdentityResolver(new(mocks.APIKeyStore), new(mocks.AccountStore), tokens, nil, quietLogger())
		require.NoError(t, err)

		_, err = r.ResolveToken(ctx, "token")
		assert.ErrorIs(t, err, service.ErrUnidentified)
	})

	t.Run("account no longer exists", func(t *testing.T) {
		accounts := new(mocks.AccountStore)
		tokens := &mocks.MockJWTService{Claims: &auth.Claims{AccountID: account.ID}}
		r, err := service.NewIdentityResolver(new(mocks.APIKeyStore), accounts, tokens, nil, quietLogger())
		require.NoError(t, err)

		accounts.On("GetByID", mock.Anything, account.ID).Return(nil, store.ErrAccountNotFound)

		_, err = r.ResolveToken(ctx, "token")
		assert.ErrorIs(t, err, service.ErrUnidentified)
	})
}
