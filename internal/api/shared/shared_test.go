package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	a := GetTraceID(SetTraceID(context.Background()))
	b := GetTraceID(SetTraceID(context.Background()))
	assert.Len(t, a, TraceIDLength*2)
	assert.NotEqual(t, a, b)
	assert.Len(t, generateFallbackTraceID(), TraceIDLength*2)
}

func TestAccountIDFromContext(t *testing.T) {
	t.Parallel()

	_, ok := AccountIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = AccountIDFromContext(WithAccountID(context.Background(), uuid.Nil))
	assert.False(t, ok)

	id := uuid.New()
	got, ok := AccountIDFromContext(WithAccountID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	var dst struct {
		Title string `json:"title"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"buy milk"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "buy milk", dst.Title)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.True(t, errors.Is(DecodeJSON(req, &dst), ErrEmptyBody))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","extra":1}`))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rr := httptest.NewRecorder()

	RespondWithErrorAndLog(rr, req, http.StatusInternalServerError, "Something went wrong",
		errors.New("dial tcp postgres://app:secret@db:5432 refused"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.NotContains(t, rr.Body.String(), "secret")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Something went wrong", resp.Error)
	assert.Equal(t, GetTraceID(req.Context()), resp.TraceID)
	assert.Zero(t, resp.Code)
}

func TestRespondWithErrorAndLog_LogsRedactedError(t *testing.T) {
	logBuf, _ := logger.SetupTestLogger(t)

	req := httptest.NewRequest(http.MethodGet, "/api/keys", nil)
	rr := httptest.NewRecorder()

	RespondWithErrorAndLog(rr, req, http.StatusBadRequest, "Wrong password",
		errors.New("compare failed for X-Password: hunter22"), WithElevatedLogLevel())

	entries, err := logBuf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, float64(http.StatusBadRequest), entries[0]["status_code"])
	assert.NotContains(t, logBuf.String(), "hunter22")
}
