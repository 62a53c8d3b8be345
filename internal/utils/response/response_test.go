package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteJSON(rec, http.StatusTeapot, map[string]int{"id": 1})
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestEnvelopes(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusBadRequest, GeneralError(errors.New("bad input"))))
	assert.JSONEq(t, `{"status":"error","error":"bad input"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusOK, Status(StatusDeleted)))
	assert.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())
}
