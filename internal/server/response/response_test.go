package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccessAndFail(t *testing.T) {
	ok := Success(map[string]string{"message": "ok"})
	assert.NotNil(t, ok.Data)
	assert.Nil(t, ok.Error)

	bad := Fail("TEST_ERROR", "Test error message", "Additional details")
	assert.Nil(t, bad.Data)
	require.NotNil(t, bad.Error)
	assert.Equal(t, "TEST_ERROR", bad.Error.Code)
	assert.Equal(t, "Test error message", bad.Error.Message)
	assert.Equal(t, "Additional details", bad.Error.Details)
}

func TestJSONWritesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"abc"},"error":null}`, rec.Body.String())
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "validation",
			err:    errors.NewValidationError("titulo", "", "Preencha todos os campos obrigatórios."),
			status: http.StatusBadRequest,
			code:   "BAD_REQUEST",
		},
		{
			name:   "not found",
			err:    errors.NewNotFoundError("item", "abc"),
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "wrapped not found",
			err:    fmt.Errorf("lookup: %w", errors.NewNotFoundError("item", "abc")),
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "load failure",
			err:    errors.NewLoadError("items", errors.New("boom")),
			status: http.StatusServiceUnavailable,
			code:   "SERVICE_UNAVAILABLE",
		},
		{
			name:   "store unreachable",
			err:    errors.NewAPIError("rtdb", 503, "down"),
			status: http.StatusServiceUnavailable,
			code:   "SERVICE_UNAVAILABLE",
		},
		{
			name:   "rate limited",
			err:    errors.NewAPIError("rtdb", 429, "slow down"),
			status: http.StatusTooManyRequests,
			code:   "RATE_LIMITED",
		},
		{
			name: "failed mutation",
			err: &errors.ResourceError{
				Operation: "create",
				Resource:  "item",
				Message:   "Erro ao salvar: permission denied",
				Err:       errors.NewAPIError("rtdb", 401, "permission denied"),
			},
			status: http.StatusInternalServerError,
			code:   "MUTATION_FAILED",
		},
		{
			name:   "unknown",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ErrorFromType(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestValidationMessageIsUserFacing(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorFromType(rec, errors.NewValidationError("ano", "abc", "Informe um ano numérico."))

	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Informe um ano numérico.", resp.Error.Message)
	assert.Equal(t, "ano", resp.Error.Details)
}

func TestInternalErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	InternalError(rec, errors.New("secret detail"))

	assert.NotContains(t, rec.Body.String(), "secret detail")
}
