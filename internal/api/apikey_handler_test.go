package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleKey(accountID uuid.UUID, active bool) *domain.APIKey {
	return &domain.APIKey{
		ID:        uuid.New(),
		AccountID: accountID,
		Key:       "tk_abcdefghijklmnopqrstuvwxyz0123456789ABCDEFG",
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
	}
}

func credentialErr(sentinel error) error {
	return service.NewServiceError("credential service", "issue_key", "failed", sentinel)
}

func TestAPIKeyHandler_IssueKey(t *testing.T) {
	t.Parallel()

	accountID := uuid.New()
	key := sampleKey(accountID, true)

	tests := []struct {
		name           string
		body           interface{}
		serviceErr     error
		callsService   bool
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "issued",
			body:           CredentialsRequest{Username: "alice", Password: "pw"},
			callsService:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown username",
			body:           CredentialsRequest{Username: "alice", Password: "pw"},
			serviceErr:     credentialErr(service.ErrAccountNotFound),
			callsService:   true,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Account not found",
		},
		{
			name:           "wrong password",
			body:           CredentialsRequest{Username: "alice", Password: "pw"},
			serviceErr:     credentialErr(service.ErrInvalidCredential),
			callsService:   true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Wrong password",
		},
		{
			name:           "limit reached",
			body:           CredentialsRequest{Username: "alice", Password: "pw"},
			serviceErr:     credentialErr(service.ErrIssuanceLimitReached),
			callsService:   true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "API key limit reached",
		},
		{
			name:           "missing password",
			body:           CredentialsRequest{Username: "alice"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid password: required field",
		},
		{
			name:           "empty body",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Request body is required",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			creds := &mocks.CredentialService{}
			if tc.callsService {
				if tc.serviceErr != nil {
					creds.On("IssueKey", mock.Anything, "alice", "pw").Return(nil, tc.serviceErr)
				} else {
					creds.On("IssueKey", mock.Anything, "alice", "pw").Return(key, nil)
				}
			}

			rr := doJSON(t, newKeyRouter(NewAPIKeyHandler(creds, quietLogger())), http.MethodPost, "/api/keys", tc.body)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, decodeError(t, rr).Error)
			} else {
				var resp APIKeyResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, key.Key, resp.APIKey)
				assert.True(t, resp.IsActive)
			}
			creds.AssertExpectations(t)
		})
	}
}

func TestAPIKeyHandler_ListKeys(t *testing.T) {
	t.Parallel()

	accountID := uuid.New()
	keys := []*domain.APIKey{sampleKey(accountID, true), sampleKey(accountID, false)}

	creds := &mocks.CredentialService{}
	creds.On("ListKeys", mock.Anything, "alice", "pw").Return(keys, nil)
	creds.On("ListKeys", mock.Anything, "alice", "bad").Return(nil, credentialErr(service.ErrInvalidCredential))
	router := newKeyRouter(NewAPIKeyHandler(creds, quietLogger()))

	list := func(username, password string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/keys", nil)
		if username != "" {
			req.Header.Set(UsernameHeader, username)
		}
		if password != "" {
			req.Header.Set(PasswordHeader, password)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	rr := list("alice", "pw")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp []APIKeyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.True(t, resp[0].IsActive)
	assert.False(t, resp[1].IsActive)

	assert.Equal(t, http.StatusBadRequest, list("alice", "bad").Code)

	rr = list("alice", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Username and password headers are required", decodeError(t, rr).Error)

	creds.AssertExpectations(t)
}

func TestAPIKeyHandler_SetKeyState(t *testing.T) {
	t.Parallel()

	accountID := uuid.New()
	key := sampleKey(accountID, false)
	missing := uuid.New()

	creds := &mocks.CredentialService{}
	creds.On("SetKeyActive", mock.Anything, key.ID, false).Return(key, nil)
	creds.On("SetKeyActive", mock.Anything, missing, true).
		Return(nil, service.NewServiceError("credential service", "set_key_active", "unknown key", service.ErrKeyNotFound))
	router := newKeyRouter(NewAPIKeyHandler(creds, quietLogger()))

	rr := doJSON(t, router, http.MethodPut, "/api/keys/"+key.ID.String()+"/state", `{"is_active":false}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp APIKeyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.IsActive)

	rr = doJSON(t, router, http.MethodPut, "/api/keys/"+missing.String()+"/state", `{"is_active":true}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "API key not found", decodeError(t, rr).Error)

	rr = doJSON(t, router, http.MethodPut, "/api/keys/"+key.ID.String()+"/state", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "omitted flag must not deactivate")

	rr = doJSON(t, router, http.MethodPut, "/api/keys/nope/state", `{"is_active":true}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	creds.AssertExpectations(t)
}
