package errors

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleAndDecode(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	h := NewErrorHandler(slog.Default(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/data/tables/X", nil)

	h.HandleError(rec, req, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleAppErrorNotFound(t *testing.T) {
	code, body := handleAndDecode(t, NewNotFoundError("table X"))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, TypeNotFound, body["type"])
	assert.Equal(t, "table X not found", body["detail"])
	assert.Equal(t, string(ErrTypeNotFound), body["error_type"])
}

func TestHandleAppErrorCalcRejected(t *testing.T) {
	code, body := handleAndDecode(t, NewCalcError("flow_rate out of range", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, TypeCalcRejected, body["type"])
}

func TestHandleAPIErrorWithDetails(t *testing.T) {
	err := NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "bad input",
		map[string]string{"field": "values"})
	code, body := handleAndDecode(t, err)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, TypeValidation, body["type"])
	assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
	assert.NotNil(t, body["details"])
}

func TestHandleContextDeadline(t *testing.T) {
	code, body := handleAndDecode(t, context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, code)
	assert.Equal(t, TypeTimeout, body["type"])
}

func TestHandleUnknownError(t *testing.T) {
	code, body := handleAndDecode(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, TypeInternal, body["type"])
}
